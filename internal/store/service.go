// AngelaMos | 2026
// service.go

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/storeratings/internal/core"
)

var ErrOwnerNotFound = errors.New("owner not found")

// OwnerDirectory resolves a prospective owner's current role.
type OwnerDirectory interface {
	GetRole(ctx context.Context, userID string) (string, error)
}

// RaterEntry is one user's rating of a store, joined with who left it.
type RaterEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingSource supplies the rating data store listings are enriched
// with.
type RatingSource interface {
	UserRatings(
		ctx context.Context,
		userID string,
		storeIDs []string,
	) (map[string]int, error)
	RatersForStore(ctx context.Context, storeID string) ([]RaterEntry, error)
}

type Service struct {
	repo   Repository
	owners OwnerDirectory
}

func NewService(repo Repository, owners OwnerDirectory) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
	}
}

// CreateStore validates the owner reference and promotes the owner to
// store_owner when they hold any other role.
func (s *Service) CreateStore(
	ctx context.Context,
	req CreateStoreRequest,
) (*Store, error) {
	promoteOwner := false

	if req.OwnerID != nil {
		role, err := s.owners.GetRole(ctx, *req.OwnerID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, ErrOwnerNotFound
			}
			return nil, fmt.Errorf("resolve owner: %w", err)
		}

		promoteOwner = role != "store_owner"
	}

	store := &Store{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}

	if err := s.repo.Create(ctx, store, promoteOwner); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Service) GetStore(ctx context.Context, id string) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListStores(
	ctx context.Context,
	params ListStoresParams,
) ([]Store, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]Store, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Exists reports whether a store id refers to a real store.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *Service) CountStores(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
