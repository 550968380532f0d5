package mocks

import (
	"context"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockPackageService struct {
	mock.Mock
}

func (m *MockPackageService) ListPackages(ctx context.Context, limit, page int64) ([]models.Package, error) {
	args := m.Called(limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Package), args.Error(1)
}

func (m *MockPackageService) CreatePackage(ctx context.Context, author string, input models.PackageInput) error {
	args := m.Called(author, input)
	return args.Error(0)
}
