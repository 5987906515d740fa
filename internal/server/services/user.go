// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, the JWT
// session lifecycle (login/refresh/verify/logout), and profile operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/booktracker-app/server/internal/common"
	"github.com/booktracker-app/server/internal/cryptox"
	"github.com/booktracker-app/server/internal/dbx"
	"github.com/booktracker-app/server/internal/server/auth"
	"github.com/booktracker-app/server/internal/server/models"
	"github.com/booktracker-app/server/internal/server/repositories/repomanager"
)

// UserService provides account and session operations:
//   - Register: create accounts with hashed passwords
//   - Login: verify credentials and mint a token pair
//   - Refresh: mint a new access token from a live refresh token
//   - Verify / Authorize: validate presented tokens
//   - Logout: revoke a refresh token
//   - GetProfile / UpdateProfile: read and mutate the caller's account
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.Manager
	registry    auth.RevocationRegistry
}

// NewUserService constructs a UserService using repositories, the token
// manager, and the revocation registry chosen at startup.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Manager, registry auth.RevocationRegistry) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		registry:    registry,
	}
}

// RegisterParams carries validated registration input. Password equality
// with its confirmation has already been checked at the transport boundary.
type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	ReadingGoal *int64
}

// Register hashes the password and creates the account. Username/email
// collisions surface as common.ErrUsernameTaken / common.ErrEmailTaken.
// No session is started.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
	}
	if p.ReadingGoal != nil {
		user.ReadingGoal = sql.NullInt64{Int64: *p.ReadingGoal, Valid: true}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		user, txErr = s.repomanager.Users(tx).Create(ctx, user)
		return txErr
	})
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) || errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the username/password pair and mints a token pair. Unknown
// usernames and wrong passwords both come back as common.ErrorUnauthorized,
// the caller cannot tell which one failed.
func (s *UserService) Login(ctx context.Context, username, password string) (*auth.TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := cryptox.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return pair, nil
}

// Refresh validates a refresh token and mints a new access token. The
// refresh token itself is not rotated. Failures are the token sentinels
// from the auth package.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Validate(ctx, refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	return s.tokens.IssueAccess(claims.UserID)
}

// Verify reports whether the presented token is valid. Either token type is
// accepted; refresh tokens additionally pass the revocation check.
func (s *UserService) Verify(ctx context.Context, token string) error {
	_, err := s.tokens.Validate(ctx, token, auth.TokenTypeAccess)
	if errors.Is(err, auth.ErrTokenWrongType) {
		_, err = s.tokens.Validate(ctx, token, auth.TokenTypeRefresh)
	}
	return err
}

// Authorize validates an access token and returns the subject's user id.
// Used by the HTTP middleware to gate profile operations.
func (s *UserService) Authorize(ctx context.Context, accessToken string) (string, error) {
	claims, err := s.tokens.Validate(ctx, accessToken, auth.TokenTypeAccess)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Logout revokes the given refresh token. Tokens that are already expired
// or revoked are a successful no-op, there is nothing left to revoke.
// Malformed or wrong-type tokens fail.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return common.ErrMissingToken
	}

	claims, err := s.tokens.Validate(ctx, refreshToken, auth.TokenTypeRefresh)
	switch {
	case err == nil:
		return s.registry.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	case errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrTokenRevoked):
		return nil
	default:
		return err
	}
}

// GetProfile returns the caller's account record.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's own account. Field
// constraints have been validated at the transport boundary.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch *models.UserPatch) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.Update(ctx, userID, patch)
}
