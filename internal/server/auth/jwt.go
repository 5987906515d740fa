// Package auth implements issuing and validating the JWT pair used by the
// session lifecycle: a short-lived stateless access token and a long-lived
// refresh token whose JTI can be revoked through a RevocationRegistry.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType discriminates access tokens from refresh tokens inside claims.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Validation failures, checked in this order: signature/structure, expiry,
// type discriminator, revocation. Match with errors.Is.
var (
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenWrongType = errors.New("unexpected token type")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

// Claims are the signed assertions carried by both token types. UserID
// duplicates the subject claim for explicitness at call sites.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	TokenType TokenType `json:"type"`
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RevocationRegistry tracks refresh-token JTIs invalidated by logout.
// Revoke must be idempotent; IsRevoked must treat entries past their natural
// expiry as absent.
type RevocationRegistry interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Manager signs and validates tokens with a process-wide HS256 secret
// injected at construction time.
type Manager struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	registry   RevocationRegistry
}

func NewManager(secretKey []byte, accessTTL, refreshTTL time.Duration, registry RevocationRegistry) *Manager {
	return &Manager{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		registry:   registry,
	}
}

func (m *Manager) issue(userID string, tokenType TokenType, validity time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID:    userID,
		TokenType: tokenType,
	})

	return token.SignedString(m.secretKey)
}

// IssueAccess mints a single access token for the given user.
func (m *Manager) IssueAccess(userID string) (string, error) {
	return m.issue(userID, TokenTypeAccess, m.accessTTL)
}

// IssuePair mints an access/refresh token pair for the given user. Each
// token carries its own JTI; only the refresh token's JTI is ever consulted
// for revocation.
func (m *Manager) IssuePair(userID string) (*TokenPair, error) {
	access, err := m.issue(userID, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := m.issue(userID, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Validate parses tokenString, verifies its signature and expiry, checks the
// type discriminator against expected, and for refresh tokens consults the
// revocation registry. On success it returns the embedded claims.
func (m *Manager) Validate(ctx context.Context, tokenString string, expected TokenType) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.TokenType != expected {
		return nil, ErrTokenWrongType
	}

	if claims.TokenType == TokenTypeRefresh {
		revoked, err := m.registry.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("revocation check: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}
