package repository

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/sira-labs/sira-api/internal/models"
)

func newTestCredentialRepo(t *testing.T) CredentialRepository {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCredentialRepository(client)
}

func TestCredentialRepositoryRoundTrip(t *testing.T) {
	repo := newTestCredentialRepo(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	credential := models.Credential{
		Username:     "registrar",
		PasswordHash: "$2a$10$fakehash",
		Role:         models.RoleAdmin,
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.Save(ctx, credential))

	stored, err := repo.GetByUsername(ctx, "registrar")
	require.NoError(t, err)
	require.Equal(t, credential.PasswordHash, stored.PasswordHash)
	require.Equal(t, models.RoleAdmin, stored.Role)
	require.True(t, createdAt.Equal(stored.CreatedAt))
}

func TestCredentialRepositoryMissing(t *testing.T) {
	repo := newTestCredentialRepo(t)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrCredentialNotFound)

	exists, err := repo.Exists(context.Background(), "nobody")
	require.NoError(t, err)
	require.False(t, exists)
}
