// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/angelamos/storeratings/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCreateReturnsTimestamps(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(
			"user-1",
			"Alexandria Commons Grocer",
			"grocer@example.com",
			"hash",
			"12 Harbor Street",
			"normal_user",
		).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)

	user := &User{
		ID:           "user-1",
		Name:         "Alexandria Commons Grocer",
		Email:        "grocer@example.com",
		PasswordHash: "hash",
		Address:      "12 Harbor Street",
		Role:         RoleNormalUser,
	}

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be populated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{ID: "user-1"})
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListBuildsFiltersAndSort(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(
		`SELECT .+ FROM users u\s+` +
			`WHERE u\.name ILIKE \$1 AND u\.role = \$2\s+` +
			`ORDER BY u\.name desc`,
	).
		WithArgs("%harbor%", "store_owner").
		WillReturnRows(
			sqlmock.NewRows([]string{
				"id", "name", "email", "address", "role",
				"created_at", "updated_at", "rating",
			}).AddRow(
				"user-1", "Harborview Fresh Market", "h@example.com",
				"1 Pier Road", "store_owner", now, now, 4.5,
			),
		)

	users, err := repo.List(context.Background(), ListUsersParams{
		Name:    "harbor",
		Role:    "store_owner",
		SortBy:  "name",
		SortDir: "desc",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len = %d, want 1", len(users))
	}
	if users[0].Rating == nil || *users[0].Rating != 4.5 {
		t.Fatalf("rating = %v, want 4.5", users[0].Rating)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListSortWhitelistFallsBack(t *testing.T) {
	params := ListUsersParams{SortBy: "password_hash; DROP TABLE users", SortDir: "sideways"}
	params.Normalize()

	if params.SortBy != "id" {
		t.Fatalf("sortBy = %q, want id", params.SortBy)
	}
	if params.SortDir != "asc" {
		t.Fatalf("sortDir = %q, want asc", params.SortDir)
	}
	if got := params.OrderBy(); got != "u.id asc" {
		t.Fatalf("order by = %q", got)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike("50%_off\\"); got != `50\%\_off\\` {
		t.Fatalf("escaped = %q", got)
	}
}
