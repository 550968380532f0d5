package mocks

import (
	"context"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Insert(ctx context.Context, username, salt, passwordHash string) error {
	args := m.Called(ctx, username, salt, passwordHash)
	return args.Error(0)
}

func (m *MockCredentialStore) FindByUsername(ctx context.Context, username string) (*models.CredentialRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CredentialRecord), args.Error(1)
}
