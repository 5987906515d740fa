// Package users provides a PostgreSQL-backed repository for account records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/booktracker-app/server/internal/common"
	"github.com/booktracker-app/server/internal/dbx"
	"github.com/booktracker-app/server/internal/server/models"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, bio, avatar_key, reading_goal, is_private, created_at, updated_at`

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// mapUniqueViolation translates a unique-constraint failure into the
// field-specific sentinel. Unrecognized constraints (and anything that is
// not a unique violation) return nil so the caller surfaces the wrapped
// driver error instead of a mislabeled sentinel.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return common.ErrUsernameTaken
	case "users_email_key":
		return common.ErrEmailTaken
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Bio, &user.AvatarKey,
		&user.ReadingGoal, &user.IsPrivate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// Create inserts a new account. Username/email collisions surface as
// common.ErrUsernameTaken / common.ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name, bio, reading_goal, is_private)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Bio,
		user.ReadingGoal, user.IsPrivate,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByUsername returns the account with the given username, or
// common.ErrorNotFound.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

// GetByID returns the account with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// Update applies a partial profile update. Nil patch fields keep the stored
// value (COALESCE on the SQL side).
func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error) {
	query := `
		UPDATE users SET
			first_name   = COALESCE($2, first_name),
			last_name    = COALESCE($3, last_name),
			bio          = COALESCE($4, bio),
			avatar_key   = COALESCE($5, avatar_key),
			reading_goal = COALESCE($6, reading_goal),
			is_private   = COALESCE($7, is_private),
			updated_at   = now()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRowContext(ctx, query, id,
		patch.FirstName, patch.LastName, patch.Bio,
		patch.AvatarKey, patch.ReadingGoal, patch.IsPrivate,
	))
}
