// AngelaMos | 2026
// repository_test.go

package rating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestUpsertIsSingleStatement(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(
		`INSERT INTO ratings .+ ON CONFLICT \(user_id, store_id\)`,
	).
		WithArgs("rating-1", "user-1", "store-1", 4).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("rating-existing", now, now),
		)

	rating := &Rating{
		ID:      "rating-1",
		UserID:  "user-1",
		StoreID: "store-1",
		Rating:  4,
	}

	if err := repo.Upsert(context.Background(), rating); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A conflicting resubmission keeps the original row identity.
	if rating.ID != "rating-existing" {
		t.Fatalf("id = %q, want rating-existing", rating.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByUserAndStoreNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM ratings`).
		WithArgs("user-1", "store-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUserAndStore(context.Background(), "user-1", "store-1")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRatingsForStoresEmptyInput(t *testing.T) {
	repo, _ := newMockRepo(t)

	ratings, err := repo.UserRatingsForStores(
		context.Background(),
		"user-1",
		nil,
	)
	if err != nil {
		t.Fatalf("user ratings: %v", err)
	}
	if len(ratings) != 0 {
		t.Fatalf("len = %d, want 0", len(ratings))
	}
}

func TestUserRatingsForStoresBatchesOneQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT store_id, rating\s+FROM ratings`).
		WithArgs("user-1", "store-1", "store-2").
		WillReturnRows(
			sqlmock.NewRows([]string{"store_id", "rating"}).
				AddRow("store-1", 5).
				AddRow("store-2", 2),
		)

	ratings, err := repo.UserRatingsForStores(
		context.Background(),
		"user-1",
		[]string{"store-1", "store-2"},
	)
	if err != nil {
		t.Fatalf("user ratings: %v", err)
	}
	if ratings["store-1"] != 5 || ratings["store-2"] != 2 {
		t.Fatalf("unexpected map %v", ratings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAverageForStoreCoalescesToZero(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\)::float, 0\)`).
		WithArgs("store-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.0))

	avg, err := repo.AverageForStore(context.Background(), "store-1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 0 {
		t.Fatalf("avg = %v, want 0", avg)
	}
}

func TestListByUserJoinsStoreName(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM ratings r\s+JOIN stores s`).
		WithArgs("user-1").
		WillReturnRows(
			sqlmock.NewRows([]string{
				"id", "store_id", "store_name", "rating",
				"created_at", "updated_at",
			}).AddRow("rating-1", "store-1", "Harborview Fresh Market", 4, now, now),
		)

	ratings, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("len = %d, want 1", len(ratings))
	}
	if ratings[0].StoreName != "Harborview Fresh Market" {
		t.Fatalf("store name = %q", ratings[0].StoreName)
	}
}
