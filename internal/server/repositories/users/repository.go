package users

import (
	"context"

	"socialnet/internal/server/models"
)

// Repository is the read/write surface of the user collection. Absent records
// are reported as common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	Search(ctx context.Context, keyword string) ([]*models.User, error)
}
