// AngelaMos | 2026
// repository_test.go

package store

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

func TestCreateWithOwnerPromotion(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	ownerID := "owner-1"

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO stores`).
		WithArgs(
			"store-1",
			"Harborview Fresh Market",
			"market@example.com",
			"1 Pier Road",
			ownerID,
		).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)
	mock.ExpectExec(`UPDATE users\s+SET role = 'store_owner'`).
		WithArgs(ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := &Store{
		ID:      "store-1",
		Name:    "Harborview Fresh Market",
		Email:   "market@example.com",
		Address: "1 Pier Road",
		OwnerID: &ownerID,
	}

	if err := repo.Create(context.Background(), store, true); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateWithoutPromotionSkipsUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO stores`).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)
	mock.ExpectCommit()

	store := &Store{
		ID:      "store-1",
		Name:    "Harborview Fresh Market",
		Email:   "market@example.com",
		Address: "1 Pier Road",
	}

	if err := repo.Create(context.Background(), store, false); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateRollsBackWhenPromotionFails(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	ownerID := "owner-1"

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO stores`).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)
	mock.ExpectExec(`UPDATE users`).
		WithArgs(ownerID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	store := &Store{
		ID:      "store-1",
		Name:    "Harborview Fresh Market",
		Email:   "market@example.com",
		Address: "1 Pier Road",
		OwnerID: &ownerID,
	}

	err := repo.Create(context.Background(), store, true)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListIncludesAverageRating(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(
		`SELECT .+ FROM stores s\s+ORDER BY average_rating desc`,
	).WillReturnRows(
		sqlmock.NewRows([]string{
			"id", "name", "email", "address", "owner_id",
			"created_at", "updated_at", "average_rating",
		}).
			AddRow("store-1", "A", "a@example.com", "addr", nil, now, now, 4.2).
			AddRow("store-2", "B", "b@example.com", "addr", nil, now, now, nil),
	)

	stores, err := repo.List(context.Background(), ListStoresParams{
		SortBy:  "average_rating",
		SortDir: "desc",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("len = %d, want 2", len(stores))
	}
	if stores[0].AverageRating == nil || *stores[0].AverageRating != 4.2 {
		t.Fatalf("average = %v, want 4.2", stores[0].AverageRating)
	}
	if stores[1].AverageRating != nil {
		t.Fatal("unrated store must have nil average")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM stores s`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
