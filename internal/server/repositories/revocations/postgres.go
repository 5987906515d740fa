// Package revocations provides the refresh-token revocation registry in two
// flavors: PostgreSQL-backed and Redis-backed. Both satisfy
// auth.RevocationRegistry.
package revocations

import (
	"context"
	"fmt"
	"time"

	"github.com/booktracker-app/server/internal/dbx"
)

// PostgresRegistry stores revoked JTIs in the revoked_tokens table.
// ON CONFLICT DO NOTHING makes Revoke idempotent under concurrent logouts.
type PostgresRegistry struct {
	db dbx.DBTX
}

// NewPostgresRegistry constructs a registry bound to the given DBTX.
func NewPostgresRegistry(db dbx.DBTX) *PostgresRegistry {
	return &PostgresRegistry{db: db}
}

// Revoke records the JTI together with its natural expiry. Re-revoking the
// same JTI is a no-op. Expired rows are pruned opportunistically on the way,
// they can never affect validation.
func (r *PostgresRegistry) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	prune := `DELETE FROM revoked_tokens WHERE expires_at <= now()`
	if _, err := r.db.ExecContext(ctx, prune); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	query := `
		INSERT INTO revoked_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, jti, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// IsRevoked reports whether the JTI is present and not yet past its natural
// expiry. Stale rows count as absent.
func (r *PostgresRegistry) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM revoked_tokens
			WHERE jti = $1 AND expires_at > now()
		)
	`
	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return revoked, nil
}
