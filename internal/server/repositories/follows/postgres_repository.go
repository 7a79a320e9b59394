package follows

import (
	"context"
	"database/sql"
	"fmt"

	"socialnet/internal/dbx"
	"socialnet/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, follow *models.Follow) (*models.Follow, error) {

	query :=
		`INSERT INTO follows (id, follower_id, following_id)
         VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		follow.ID, follow.FollowerID, follow.FollowingID).Scan(&follow.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return follow, nil
}

// Delete removes every edge from followerID to followingID, duplicates
// included. Deleting a non-existent edge is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, followerID, followingID string) error {
	query :=
		`DELETE FROM follows
		 WHERE follower_id = $1 AND following_id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByFollower(ctx context.Context, followerID string) ([]*models.Follow, error) {
	query :=
		`SELECT id, follower_id, following_id, created_at FROM follows
		 WHERE follower_id = $1
		 ORDER BY created_at, id
		 `
	return r.list(ctx, query, followerID)
}

func (r *PostgresRepository) ListByFollowing(ctx context.Context, followingID string) ([]*models.Follow, error) {
	query :=
		`SELECT id, follower_id, following_id, created_at FROM follows
		 WHERE following_id = $1
		 ORDER BY created_at, id
		 `
	return r.list(ctx, query, followingID)
}

func (r *PostgresRepository) list(ctx context.Context, query, arg string) ([]*models.Follow, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanFollows(rows)
}

func scanFollows(rows *sql.Rows) ([]*models.Follow, error) {
	result := []*models.Follow{}
	for rows.Next() {
		follow := &models.Follow{}
		if err := rows.Scan(&follow.ID, &follow.FollowerID, &follow.FollowingID, &follow.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, follow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
