package repository

import (
	"context"
	"errors"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
)

var ErrPackageExists = errors.New("package already exists")

// PackageRepository persists registry packages.
type PackageRepository interface {
	// ListPackages returns at most limit packages starting at offset, ordered by insertion.
	ListPackages(ctx context.Context, limit, offset int64) ([]models.Package, error)
	// CreatePackage stores pkg. It returns ErrPackageExists if the name is taken.
	CreatePackage(ctx context.Context, pkg models.Package) error
}
