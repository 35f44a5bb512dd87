// AngelaMos | 2026
// repository.go

package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/angelamos/storeratings/internal/core"
)

type Repository interface {
	Upsert(ctx context.Context, rating *Rating) error
	GetByUserAndStore(
		ctx context.Context,
		userID, storeID string,
	) (*Rating, error)
	ListByUser(ctx context.Context, userID string) ([]UserRating, error)
	ListByStore(ctx context.Context, storeID string) ([]storeRater, error)
	UserRatingsForStores(
		ctx context.Context,
		userID string,
		storeIDs []string,
	) (map[string]int, error)
	AverageForStore(ctx context.Context, storeID string) (float64, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Upsert writes the caller's rating for a store as one conditional
// insert, so a resubmission updates in place without a read-check-write
// race. On conflict the original row id and created_at survive.
func (r *repository) Upsert(ctx context.Context, rating *Rating) error {
	query := `
		INSERT INTO ratings (id, user_id, store_id, rating)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, store_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, rating, query,
		rating.ID,
		rating.UserID,
		rating.StoreID,
		rating.Rating,
	)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}

	return nil
}

func (r *repository) GetByUserAndStore(
	ctx context.Context,
	userID, storeID string,
) (*Rating, error) {
	query := `
		SELECT id, user_id, store_id, rating, created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND store_id = $2`

	var rating Rating
	err := r.db.GetContext(ctx, &rating, query, userID, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rating, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]UserRating, error) {
	query := `
		SELECT r.id, r.store_id, s.name AS store_name, r.rating,
		       r.created_at, r.updated_at
		FROM ratings r
		JOIN stores s ON r.store_id = s.id
		WHERE r.user_id = $1
		ORDER BY r.updated_at DESC`

	var ratings []UserRating
	if err := r.db.SelectContext(ctx, &ratings, query, userID); err != nil {
		return nil, fmt.Errorf("list ratings by user: %w", err)
	}

	return ratings, nil
}

func (r *repository) ListByStore(
	ctx context.Context,
	storeID string,
) ([]storeRater, error) {
	query := `
		SELECT r.id, r.user_id, r.rating, u.name, u.email, r.created_at
		FROM ratings r
		JOIN users u ON r.user_id = u.id
		WHERE r.store_id = $1
		ORDER BY r.created_at DESC`

	var raters []storeRater
	if err := r.db.SelectContext(ctx, &raters, query, storeID); err != nil {
		return nil, fmt.Errorf("list ratings by store: %w", err)
	}

	return raters, nil
}

// UserRatingsForStores fetches the caller's ratings for a batch of
// stores in one query, keyed by store id.
func (r *repository) UserRatingsForStores(
	ctx context.Context,
	userID string,
	storeIDs []string,
) (map[string]int, error) {
	if len(storeIDs) == 0 {
		return map[string]int{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT store_id, rating
		FROM ratings
		WHERE user_id = ? AND store_id IN (?)`,
		userID, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("build user ratings query: %w", err)
	}

	query = r.db.Rebind(query)

	rows := []struct {
		StoreID string `db:"store_id"`
		Rating  int    `db:"rating"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("user ratings for stores: %w", err)
	}

	ratings := make(map[string]int, len(rows))
	for _, row := range rows {
		ratings[row.StoreID] = row.Rating
	}

	return ratings, nil
}

func (r *repository) AverageForStore(
	ctx context.Context,
	storeID string,
) (float64, error) {
	query := `
		SELECT COALESCE(AVG(rating)::float, 0)
		FROM ratings
		WHERE store_id = $1`

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, storeID); err != nil {
		return 0, fmt.Errorf("average for store: %w", err)
	}

	return avg, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM ratings`)
	if err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}

	return count, nil
}
