package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCredentialStore(t *testing.T) (*RedisCredentialStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCredentialStore(client), mr
}

func TestRedisCredentialStore_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mr := newTestRedisCredentialStore(t)
		defer mr.Close()

		err := repo.Insert(ctx, "alice", "c2FsdA", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA")
		require.NoError(t, err)

		storedData, err := mr.Get(makeCredentialKey("alice"))
		require.NoError(t, err)
		var stored models.CredentialRecord
		require.NoError(t, json.Unmarshal([]byte(storedData), &stored))
		assert.Equal(t, "alice", stored.Username)
		assert.Equal(t, "c2FsdA", stored.Salt)
		assert.Equal(t, "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA", stored.Password)

		assert.Zero(t, mr.TTL(makeCredentialKey("alice")), "credential records must not expire")
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		repo, mr := newTestRedisCredentialStore(t)
		defer mr.Close()

		require.NoError(t, repo.Insert(ctx, "alice", "salt1", "hash1"))
		err := repo.Insert(ctx, "alice", "salt2", "hash2")
		assert.ErrorIs(t, err, repository.ErrUserExists)

		record, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "salt1", record.Salt)
		assert.Equal(t, "hash1", record.Password)
	})

	t.Run("EmptyUsername", func(t *testing.T) {
		repo, mr := newTestRedisCredentialStore(t)
		defer mr.Close()

		err := repo.Insert(ctx, "", "salt", "hash")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credential data")
	})

	t.Run("RedisError", func(t *testing.T) {
		repo, mr := newTestRedisCredentialStore(t)
		mr.Close()

		err := repo.Insert(ctx, "alice", "salt", "hash")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis SETNX failed")
	})

	t.Run("ConcurrentSameUsername", func(t *testing.T) {
		repo, mr := newTestRedisCredentialStore(t)
		defer mr.Close()

		const attempts = 10
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Insert(ctx, "alice", fmt.Sprintf("salt%d", i), fmt.Sprintf("hash%d", i))
			}(i)
		}
		wg.Wait()

		winner := -1
		for i, err := range errs {
			if err == nil {
				require.Equal(t, -1, winner, "more than one insert succeeded")
				winner = i
				continue
			}
			assert.ErrorIs(t, err, repository.ErrUserExists)
		}
		require.NotEqual(t, -1, winner)

		record, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("salt%d", winner), record.Salt)
	})
}

func TestRedisCredentialStore_FindByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		repo, mr := newTestRedisCredentialStore(t)
		defer mr.Close()

		_, err := repo.FindByUsername(ctx, "bob")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("UnmarshalError", func(t *testing.T) {
		repo, mr := newTestRedisCredentialStore(t)
		defer mr.Close()

		require.NoError(t, mr.Set(makeCredentialKey("bob"), "this is not json"))

		_, err := repo.FindByUsername(ctx, "bob")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "json unmarshal failed")
	})

	t.Run("RedisGetError", func(t *testing.T) {
		repo, mr := newTestRedisCredentialStore(t)
		mr.Close()

		_, err := repo.FindByUsername(ctx, "bob")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis GET failed")
	})
}
