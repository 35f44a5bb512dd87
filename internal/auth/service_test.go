// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/angelamos/storeratings/internal/core"
)

type fakeUserProvider struct {
	users          map[string]*UserInfo
	byEmail        map[string]*UserInfo
	createErr      error
	passwordWrites map[string]string
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{
		users:          map[string]*UserInfo{},
		byEmail:        map[string]*UserInfo{},
		passwordWrites: map[string]string{},
	}
}

func (f *fakeUserProvider) add(u *UserInfo) {
	f.users[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserProvider) Create(
	_ context.Context,
	name, email, passwordHash, address string,
) (*UserInfo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u := &UserInfo{
		ID:           "user-" + email,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Address:      address,
		Role:         "normal_user",
		CreatedAt:    time.Now(),
	}
	f.add(u)
	return u, nil
}

func (f *fakeUserProvider) UpdatePassword(
	_ context.Context,
	userID, passwordHash string,
) error {
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	f.passwordWrites[userID] = passwordHash
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserProvider) {
	t.Helper()
	users := newFakeUserProvider()
	return NewService(newTestJWTManager(t, time.Hour), users), users
}

func TestRegisterCreatesNormalUser(t *testing.T) {
	svc, users := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alexandria Commons Grocer",
		Email:    "owner@example.com",
		Password: "Secret@123",
		Address:  "12 Harbor Street",
	})
	require.NoError(t, err)
	require.Equal(t, "normal_user", resp.User.Role)
	require.NotEmpty(t, resp.Token)

	stored := users.byEmail["owner@example.com"]
	require.NotNil(t, stored)
	require.NotEqual(t, "Secret@123", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users := newTestService(t)
	users.createErr = fmt.Errorf("create user: %w", core.ErrDuplicateKey)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alexandria Commons Grocer",
		Email:    "owner@example.com",
		Password: "Secret@123",
		Address:  "12 Harbor Street",
	})
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginGenericErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, users := newTestService(t)

	hash, err := core.HashPassword("Secret@123")
	require.NoError(t, err)
	users.add(&UserInfo{
		ID:           "user-1",
		Email:        "known@example.com",
		PasswordHash: hash,
		Role:         "normal_user",
	})

	_, unknownErr := svc.Login(context.Background(), LoginRequest{
		Email:    "unknown@example.com",
		Password: "Secret@123",
	})
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)

	_, wrongErr := svc.Login(context.Background(), LoginRequest{
		Email:    "known@example.com",
		Password: "Wrong@1234",
	})
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)

	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	svc, users := newTestService(t)

	hash, err := core.HashPassword("Secret@123")
	require.NoError(t, err)
	users.add(&UserInfo{
		ID:           "user-1",
		Email:        "known@example.com",
		PasswordHash: hash,
		Role:         "store_owner",
	})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "known@example.com",
		Password: "Secret@123",
	})
	require.NoError(t, err)
	require.Equal(t, "user-1", resp.User.ID)
	require.NotEmpty(t, resp.Token)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, users := newTestService(t)

	hash, err := core.HashPassword("Secret@123")
	require.NoError(t, err)
	users.add(&UserInfo{
		ID:           "user-1",
		Email:        "known@example.com",
		PasswordHash: hash,
	})

	err = svc.ChangePassword(
		context.Background(),
		"user-1",
		"Wrong@1234",
		"Updated@456",
	)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Empty(t, users.passwordWrites)

	err = svc.ChangePassword(
		context.Background(),
		"user-1",
		"Secret@123",
		"Updated@456",
	)
	require.NoError(t, err)
	require.NotEmpty(t, users.passwordWrites["user-1"])
}

func TestVerifyAccessTokenUsesDatabaseRole(t *testing.T) {
	svc, users := newTestService(t)

	users.add(&UserInfo{
		ID:    "user-1",
		Email: "known@example.com",
		Role:  "normal_user",
	})

	token, err := svc.jwt.CreateAccessToken("user-1", "normal_user")
	require.NoError(t, err)

	// Promotion after issuance shows up on the next request, not at
	// the next token refresh.
	users.users["user-1"].Role = "store_owner"

	claims, err := svc.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "store_owner", claims.Role)
}

func TestVerifyAccessTokenRejectsMissingUser(t *testing.T) {
	svc, _ := newTestService(t)

	token, err := svc.jwt.CreateAccessToken("ghost", "normal_user")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrNotFound)
}
