package mocks

import (
	"context"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req models.CredentialsRequest) (*models.AuthResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req models.CredentialsRequest) (*models.AuthResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResult), args.Error(1)
}

func (m *MockAuthService) Authorize(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
