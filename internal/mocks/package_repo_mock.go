package mocks

import (
	"context"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) ListPackages(ctx context.Context, limit, offset int64) ([]models.Package, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Package), args.Error(1)
}

func (m *MockPackageRepository) CreatePackage(ctx context.Context, pkg models.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}
