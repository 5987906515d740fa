package users

import (
	"context"

	"github.com/booktracker-app/server/internal/server/models"
)

// Repository is the account store contract. Uniqueness of username and
// email is enforced by the backing store, atomically under concurrent
// creates.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error)
}
