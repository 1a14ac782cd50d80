package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sira-labs/sira-api/internal/models"
)

const credentialKeyPrefix = "user:"

// ErrCredentialNotFound indicates no account exists for the username.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository exposes persistence for account credentials.
// Credentials are created once and never updated or deleted.
type CredentialRepository interface {
	Save(ctx context.Context, credential models.Credential) error
	GetByUsername(ctx context.Context, username string) (models.Credential, error)
	Exists(ctx context.Context, username string) (bool, error)
}

type credentialRepository struct {
	client *redis.Client
}

// NewCredentialRepository constructs the Redis-backed credential repository.
func NewCredentialRepository(client *redis.Client) CredentialRepository {
	return &credentialRepository{client: client}
}

func credentialKey(username string) string {
	return credentialKeyPrefix + username
}

func (r *credentialRepository) Save(ctx context.Context, credential models.Credential) error {
	if err := r.client.HSet(ctx, credentialKey(credential.Username), credential.HashFields()).Err(); err != nil {
		return fmt.Errorf("failed to save credential for %s: %w", credential.Username, err)
	}
	return nil
}

func (r *credentialRepository) GetByUsername(ctx context.Context, username string) (models.Credential, error) {
	fields, err := r.client.HGetAll(ctx, credentialKey(username)).Result()
	if err != nil {
		return models.Credential{}, fmt.Errorf("failed to fetch credential for %s: %w", username, err)
	}
	if len(fields) == 0 {
		return models.Credential{}, ErrCredentialNotFound
	}

	return models.CredentialFromHash(username, fields), nil
}

func (r *credentialRepository) Exists(ctx context.Context, username string) (bool, error) {
	count, err := r.client.Exists(ctx, credentialKey(username)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check credential for %s: %w", username, err)
	}
	return count > 0, nil
}
