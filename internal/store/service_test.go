// AngelaMos | 2026
// service_test.go

package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelamos/storeratings/internal/core"
)

type fakeRepo struct {
	Repository
	created      *Store
	promoteOwner bool
	createCalls  int
}

func (f *fakeRepo) Create(
	_ context.Context,
	store *Store,
	promoteOwner bool,
) error {
	f.created = store
	f.promoteOwner = promoteOwner
	f.createCalls++
	return nil
}

type fakeOwners struct {
	roles map[string]string
}

func (f *fakeOwners) GetRole(_ context.Context, userID string) (string, error) {
	role, ok := f.roles[userID]
	if !ok {
		return "", fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return role, nil
}

func TestCreateStorePromotesNormalUserOwner(t *testing.T) {
	repo := &fakeRepo{}
	owners := &fakeOwners{roles: map[string]string{"owner-1": "normal_user"}}
	svc := NewService(repo, owners)

	ownerID := "owner-1"
	created, err := svc.CreateStore(context.Background(), CreateStoreRequest{
		Name:    "Harborview Fresh Market",
		Email:   "market@example.com",
		Address: "1 Pier Road",
		OwnerID: &ownerID,
	})
	require.NoError(t, err)
	require.True(t, repo.promoteOwner, "normal_user owner must be promoted")
	require.NotEmpty(t, created.ID)
	require.Equal(t, &ownerID, created.OwnerID)
}

func TestCreateStoreExistingOwnerIsNoOp(t *testing.T) {
	repo := &fakeRepo{}
	owners := &fakeOwners{roles: map[string]string{"owner-1": "store_owner"}}
	svc := NewService(repo, owners)

	ownerID := "owner-1"
	_, err := svc.CreateStore(context.Background(), CreateStoreRequest{
		Name:    "Harborview Fresh Market",
		Email:   "market@example.com",
		Address: "1 Pier Road",
		OwnerID: &ownerID,
	})
	require.NoError(t, err)
	require.False(t, repo.promoteOwner, "store_owner must not be re-promoted")
}

func TestCreateStoreUnknownOwner(t *testing.T) {
	repo := &fakeRepo{}
	owners := &fakeOwners{roles: map[string]string{}}
	svc := NewService(repo, owners)

	ownerID := "ghost"
	_, err := svc.CreateStore(context.Background(), CreateStoreRequest{
		Name:    "Harborview Fresh Market",
		Email:   "market@example.com",
		Address: "1 Pier Road",
		OwnerID: &ownerID,
	})
	require.ErrorIs(t, err, ErrOwnerNotFound)
	require.Zero(t, repo.createCalls, "no store row on unknown owner")
}

func TestCreateStoreWithoutOwner(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeOwners{})

	created, err := svc.CreateStore(context.Background(), CreateStoreRequest{
		Name:    "Harborview Fresh Market",
		Email:   "market@example.com",
		Address: "1 Pier Road",
	})
	require.NoError(t, err)
	require.Nil(t, created.OwnerID)
	require.False(t, repo.promoteOwner)
}
