package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"socialnet/internal/common"
	"socialnet/internal/logging"
	"socialnet/internal/server/models"
	"socialnet/internal/server/repositories/repomanager"
)

// ProfileCache is the subset of the cache used by ProfileService. The cache
// is best-effort: implementations report misses, never errors.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*models.Profile, bool)
	Set(ctx context.Context, profile *models.Profile)
	Invalidate(ctx context.Context, userIDs ...string)
}

// ProfileService resolves user profiles with their follow graph, searches
// users, and applies follow/unfollow mutations.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       ProfileCache
	logger      logging.Logger
}

// NewProfileService constructs a ProfileService. cache may be nil, in which
// case every lookup goes to the store.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, cache ProfileCache, logger logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		cache:       cache,
		logger:      logger.With("module", "profile_service"),
	}
}

// GetUserByID materializes the target user's profile: the user record plus
// its Followings and Followers sets, resolved through the edge store and
// redacted. An absent target yields (nil, nil), not an error. The two graph
// directions resolve independently and concurrently. Edges are reflected as
// stored: duplicates and self-follows appear in the output exactly as many
// times as they occur in the edge collection.
func (s *ProfileService) GetUserByID(ctx context.Context, userID string) (*models.Profile, error) {
	if s.cache != nil {
		if profile, ok := s.cache.Get(ctx, userID); ok {
			return profile, nil
		}
	}

	userRepo := s.repomanager.Users(s.db)
	followRepo := s.repomanager.Follows(s.db)

	target, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, mapStoreError(err)
	}

	var followings, followers []models.UserSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		edges, err := followRepo.ListByFollower(gctx, userID)
		if err != nil {
			return err
		}
		followings, err = s.resolveEdgeUsers(gctx, edges, func(f *models.Follow) string { return f.FollowingID })
		return err
	})
	g.Go(func() error {
		edges, err := followRepo.ListByFollowing(gctx, userID)
		if err != nil {
			return err
		}
		followers, err = s.resolveEdgeUsers(gctx, edges, func(f *models.Follow) string { return f.FollowerID })
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, mapStoreError(err)
	}

	profile := &models.Profile{
		UserSummary: target.Summary(),
		Followings:  followings,
		Followers:   followers,
	}

	if s.cache != nil {
		s.cache.Set(ctx, profile)
	}

	return profile, nil
}

// resolveEdgeUsers materializes one direction of the graph: edge list to
// redacted user summaries, in edge order. Edges whose endpoint no longer
// resolves to a user drop out, matching join semantics.
func (s *ProfileService) resolveEdgeUsers(ctx context.Context, edges []*models.Follow, endpoint func(*models.Follow) string) ([]models.UserSummary, error) {
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, endpoint(e))
	}
	if len(ids) == 0 {
		return []models.UserSummary{}, nil
	}

	users, err := s.repomanager.Users(s.db).ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	result := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			result = append(result, u.Summary())
		}
	}
	return result, nil
}

// Search returns every user whose name or username contains keyword as a
// case-insensitive substring. The keyword is required. Results are always
// redacted, public caller or not.
func (s *ProfileService) Search(ctx context.Context, keyword string) ([]models.UserSummary, error) {
	if keyword == "" {
		return nil, common.ErrEmptyKeyword
	}

	found, err := s.repomanager.Users(s.db).Search(ctx, keyword)
	if err != nil {
		return nil, mapStoreError(err)
	}

	result := make([]models.UserSummary, 0, len(found))
	for _, u := range found {
		result = append(result, u.Summary())
	}
	return result, nil
}

// Follow records a directed edge from follower to following. The target must
// exist; the edge itself is not checked for duplicates. Both endpoints'
// cached profiles are invalidated.
func (s *ProfileService) Follow(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, followingID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, mapStoreError(err)
	}

	follow := &models.Follow{
		ID:          uuid.NewString(),
		FollowerID:  followerID,
		FollowingID: followingID,
	}

	created, err := s.repomanager.Follows(s.db).Create(ctx, follow)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, followerID, followingID)
	}

	return created, nil
}

// Unfollow removes every edge from follower to following and invalidates
// both endpoints' cached profiles. Unfollowing a user never followed is a
// no-op, not an error.
func (s *ProfileService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if err := s.repomanager.Follows(s.db).Delete(ctx, followerID, followingID); err != nil {
		return mapStoreError(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, followerID, followingID)
	}

	return nil
}
