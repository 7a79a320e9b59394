package follows

import (
	"context"

	"socialnet/internal/server/models"
)

// Repository is the read/write surface of the directed follow-edge
// collection. List results are ordered by creation time; duplicates are
// returned as stored.
type Repository interface {
	Create(ctx context.Context, follow *models.Follow) (*models.Follow, error)
	Delete(ctx context.Context, followerID, followingID string) error
	ListByFollower(ctx context.Context, followerID string) ([]*models.Follow, error)
	ListByFollowing(ctx context.Context, followingID string) ([]*models.Follow, error)
}
