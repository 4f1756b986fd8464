package service

import (
	"context"
	"database/sql"
	"testing"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"
	"hostel-data/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthEnv(t *testing.T) (AuthService, *repository.MemoryStore) {
	t.Helper()
	mem := repository.NewMemoryStore()
	auth := NewAuthService(mem, store.NewMemoryKV(), zap.NewNop())

	_, err := mem.UpsertUser(context.Background(), &domain.User{
		HostelID:     sql.NullString{String: "h1", Valid: true},
		UserAccount:  "warden1",
		PasswordHash: HashPassword("secret123"),
		Role:         domain.RoleWarden,
		Status:       "active",
	})
	require.NoError(t, err)
	return auth, mem
}

func TestLoginAndValidateToken(t *testing.T) {
	auth, _ := newAuthEnv(t)
	ctx := context.Background()

	resp, err := auth.Login(ctx, LoginRequest{UserAccount: "warden1", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, domain.RoleWarden, resp.Role)
	require.Equal(t, "h1", resp.HostelID)

	session, err := auth.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.UserID, session.UserID)
	require.Equal(t, "h1", session.HostelID)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthEnv(t)

	_, err := auth.Login(context.Background(), LoginRequest{UserAccount: "warden1", Password: "wrong"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginUnknownAccount(t *testing.T) {
	auth, _ := newAuthEnv(t)

	_, err := auth.Login(context.Background(), LoginRequest{UserAccount: "nobody", Password: "x"})
	require.Error(t, err)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	auth, _ := newAuthEnv(t)
	ctx := context.Background()

	resp, err := auth.Login(ctx, LoginRequest{UserAccount: "warden1", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, resp.AccessToken))

	_, err = auth.ValidateToken(ctx, resp.AccessToken)
	require.Error(t, err)
}
