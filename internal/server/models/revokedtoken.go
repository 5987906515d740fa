package models

import "time"

// RevokedToken records a refresh token invalidated by logout. Entries are
// keyed by the token's JTI and become irrelevant once ExpiresAt passes,
// since an expired token fails validation anyway.
type RevokedToken struct {
	JTI       string
	ExpiresAt time.Time
	CreatedAt time.Time
}
