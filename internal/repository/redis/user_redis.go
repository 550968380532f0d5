package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
)

var _ repository.CredentialStore = (*RedisCredentialStore)(nil)

// RedisCredentialStore implements CredentialStore using Redis.
// One string key per username holds the JSON encoded record.
type RedisCredentialStore struct {
	client *redis.Client
}

// Helper to construct credential key
func makeCredentialKey(username string) string {
	return fmt.Sprintf("credential:%s", username)
}

func NewRedisCredentialStore(client *redis.Client) *RedisCredentialStore {
	return &RedisCredentialStore{
		client: client,
	}
}

// Insert writes the record with SETNX, so the uniqueness check and the write are one command.
// Records never expire.
func (r *RedisCredentialStore) Insert(ctx context.Context, username, salt, passwordHash string) error {
	if username == "" {
		return errors.New("invalid credential data: username must be set")
	}

	jsonData, err := json.Marshal(models.CredentialRecord{
		Username: username,
		Salt:     salt,
		Password: passwordHash,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	stored, err := r.client.SetNX(ctx, makeCredentialKey(username), jsonData, 0).Result()
	if err != nil {
		return fmt.Errorf("redis SETNX failed: %w", err)
	}
	if !stored {
		return repository.ErrUserExists
	}
	return nil
}

// FindByUsername returns ErrUserNotFound if no record exists for username.
func (r *RedisCredentialStore) FindByUsername(ctx context.Context, username string) (*models.CredentialRecord, error) {
	jsonData, err := r.client.Get(ctx, makeCredentialKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET failed: %w", err)
	}

	var record models.CredentialRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	return &record, nil
}
