package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(ctx context.Context, password []byte) (string, string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockPasswordHasher) Verify(ctx context.Context, password []byte, encodedHash string) (bool, error) {
	args := m.Called(ctx, password, encodedHash)
	return args.Bool(0), args.Error(1)
}
