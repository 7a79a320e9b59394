package follows

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"socialnet/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var followColumns = []string{"id", "follower_id", "following_id", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+follows\s*\(id,\s*follower_id,\s*following_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+created_at\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("f-1", "u-a", "u-b").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	f := &models.Follow{ID: "f-1", FollowerID: "u-a", FollowingID: "u-b"}
	got, err := repo.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+follows`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Follow{ID: "f-1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDelete_RemovesAllMatchingEdges(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+follows\s+WHERE\s+follower_id\s*=\s*\$1\s+AND\s+following_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs("u-a", "u-b").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.Delete(context.Background(), "u-a", "u-b"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoMatchingEdgeIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+follows`).
		WithArgs("u-a", "u-b").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "u-a", "u-b"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestListByFollower_PreservesDuplicates(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT .* FROM\s+follows\s+WHERE\s+follower_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id`

	now := time.Now()
	rows := sqlmock.NewRows(followColumns).
		AddRow("f-1", "u-a", "u-b", now).
		AddRow("f-2", "u-a", "u-b", now.Add(time.Second))
	mock.ExpectQuery(q).WithArgs("u-a").WillReturnRows(rows)

	got, err := repo.ListByFollower(context.Background(), "u-a")
	if err != nil {
		t.Fatalf("ListByFollower error: %v", err)
	}
	if len(got) != 2 || got[0].FollowingID != "u-b" || got[1].FollowingID != "u-b" {
		t.Fatalf("expected duplicate edges preserved, got %+v", got)
	}
}

func TestListByFollowing_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM\s+follows\s+WHERE\s+following_id`).
		WithArgs("u-z").
		WillReturnRows(sqlmock.NewRows(followColumns))

	got, err := repo.ListByFollowing(context.Background(), "u-z")
	if err != nil {
		t.Fatalf("ListByFollowing error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no edges, got %d", len(got))
	}
}

func TestListByFollower_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM\s+follows\s+WHERE\s+follower_id`).
		WithArgs("u-a").
		WillReturnError(errors.New("db err"))

	_, err := repo.ListByFollower(context.Background(), "u-a")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
