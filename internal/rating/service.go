// AngelaMos | 2026
// service.go

package rating

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/storeratings/internal/core"
	"github.com/angelamos/storeratings/internal/store"
)

// StoreDirectory confirms a store exists before a rating is accepted.
type StoreDirectory interface {
	Exists(ctx context.Context, storeID string) (bool, error)
}

type Service struct {
	repo   Repository
	stores StoreDirectory
}

func NewService(repo Repository, stores StoreDirectory) *Service {
	return &Service{
		repo:   repo,
		stores: stores,
	}
}

// SubmitRating creates or replaces the caller's rating for a store.
func (s *Service) SubmitRating(
	ctx context.Context,
	userID string,
	req SubmitRatingRequest,
) (*Rating, error) {
	exists, err := s.stores.Exists(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("check store: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("store: %w", core.ErrNotFound)
	}

	rating := &Rating{
		ID:      uuid.New().String(),
		UserID:  userID,
		StoreID: req.StoreID,
		Rating:  req.Rating,
	}

	if err := s.repo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *Service) GetUserRating(
	ctx context.Context,
	userID, storeID string,
) (*Rating, error) {
	return s.repo.GetByUserAndStore(ctx, userID, storeID)
}

func (s *Service) ListUserRatings(
	ctx context.Context,
	userID string,
) ([]UserRating, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) AverageForStore(
	ctx context.Context,
	storeID string,
) (float64, error) {
	return s.repo.AverageForStore(ctx, storeID)
}

func (s *Service) CountRatings(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// UserRatings implements the store listing enrichment lookup.
func (s *Service) UserRatings(
	ctx context.Context,
	userID string,
	storeIDs []string,
) (map[string]int, error) {
	return s.repo.UserRatingsForStores(ctx, userID, storeIDs)
}

// RatersForStore returns a store's ratings joined with rater identity.
func (s *Service) RatersForStore(
	ctx context.Context,
	storeID string,
) ([]store.RaterEntry, error) {
	raters, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	entries := make([]store.RaterEntry, 0, len(raters))
	for _, r := range raters {
		entries = append(entries, store.RaterEntry{
			ID:        r.ID,
			UserID:    r.UserID,
			Rating:    r.Rating,
			Name:      r.Name,
			Email:     r.Email,
			CreatedAt: r.CreatedAt,
		})
	}

	return entries, nil
}

var _ store.RatingSource = (*Service)(nil)
