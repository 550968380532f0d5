package memory

import (
	"context"
	"sync"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
)

var _ repository.CredentialStore = (*MemoryCredentialStore)(nil)

// MemoryCredentialStore implements CredentialStore in memory (NOT FOR PRODUCTION)
type MemoryCredentialStore struct {
	records map[string]models.CredentialRecord
	mutex   sync.RWMutex
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		records: make(map[string]models.CredentialRecord),
	}
}

// Insert checks and writes under the same lock, so concurrent signups for one username cannot both succeed.
func (r *MemoryCredentialStore) Insert(_ context.Context, username, salt, passwordHash string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.records[username]; exists {
		return repository.ErrUserExists
	}
	r.records[username] = models.CredentialRecord{
		Username: username,
		Salt:     salt,
		Password: passwordHash,
	}
	return nil
}

func (r *MemoryCredentialStore) FindByUsername(_ context.Context, username string) (*models.CredentialRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	record, exists := r.records[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return &record, nil
}
