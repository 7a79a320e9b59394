package services

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"socialnet/internal/common"
	"socialnet/internal/dbx"
	"socialnet/internal/server/models"
	"socialnet/internal/server/repositories/follows"
	"socialnet/internal/server/repositories/users"
)

// ---- in-memory fakes ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*models.User

	createErr error
	getErr    error
	listErr   error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.find(func(u *models.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.find(func(u *models.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) ListByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	result := []*models.User{}
	for _, u := range f.users {
		if _, ok := want[u.ID]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) Search(ctx context.Context, keyword string) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kw := strings.ToLower(keyword)
	result := []*models.User{}
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Name), kw) || strings.Contains(strings.ToLower(u.Username), kw) {
			result = append(result, u)
		}
	}
	return result, nil
}

type fakeFollowRepo struct {
	mu    sync.Mutex
	edges []*models.Follow

	createErr error
	listErr   error
	deleteErr error
}

func (f *fakeFollowRepo) Create(ctx context.Context, follow *models.Follow) (*models.Follow, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edges = append(f.edges, follow)
	return follow, nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.edges[:0]
	for _, e := range f.edges {
		if !(e.FollowerID == followerID && e.FollowingID == followingID) {
			kept = append(kept, e)
		}
	}
	f.edges = kept
	return nil
}

func (f *fakeFollowRepo) ListByFollower(ctx context.Context, followerID string) ([]*models.Follow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Follow{}
	for _, e := range f.edges {
		if e.FollowerID == followerID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeFollowRepo) ListByFollowing(ctx context.Context, followingID string) ([]*models.Follow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Follow{}
	for _, e := range f.edges {
		if e.FollowingID == followingID {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeManager struct {
	userRepo   *fakeUserRepo
	followRepo *fakeFollowRepo
}

func newFakeManager() *fakeManager {
	return &fakeManager{userRepo: &fakeUserRepo{}, followRepo: &fakeFollowRepo{}}
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeManager) Users(db dbx.DBTX) users.Repository     { return m.userRepo }
func (m *fakeManager) Follows(db dbx.DBTX) follows.Repository { return m.followRepo }

type recordingCache struct {
	mu          sync.Mutex
	entries     map[string]*models.Profile
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string]*models.Profile{}}
}

func (c *recordingCache) Get(ctx context.Context, userID string) (*models.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[userID]
	return p, ok
}

func (c *recordingCache) Set(ctx context.Context, profile *models.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[profile.ID] = profile
}

func (c *recordingCache) Invalidate(ctx context.Context, userIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range userIDs {
		delete(c.entries, id)
		c.invalidated = append(c.invalidated, id)
	}
}
