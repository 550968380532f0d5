package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
)

const (
	DefaultPageLimit int64 = 10
	DefaultPage      int64 = 1
	// MaxPageLimit caps a single page; larger limits are clamped.
	MaxPageLimit int64 = 100
)

var _ PackageGenerator = (*PackageService)(nil)

// PackageService lists registry packages and creates new ones attributed to an author.
type PackageService struct {
	packageRepo repository.PackageRepository
}

func NewPackageService(packageRepo repository.PackageRepository) *PackageService {
	return &PackageService{packageRepo: packageRepo}
}

// ListPackages returns the given 1-based page. Zero or negative values fail with ErrValidation.
func (s *PackageService) ListPackages(ctx context.Context, limit, page int64) ([]models.Package, error) {
	if limit <= 0 || page <= 0 {
		return nil, fmt.Errorf("%w: page and limit must be greater than 0", ErrValidation)
	}
	limit = min(limit, MaxPageLimit)

	packages, err := s.packageRepo.ListPackages(ctx, limit, (page-1)*limit)
	if err != nil {
		log.Error().Err(err).Int64("limit", limit).Int64("page", page).Msg("[PackageService.ListPackages] Failed to load packages")
		return nil, fmt.Errorf("%w: failed to list packages: %w", ErrStorage, err)
	}
	return packages, nil
}

// CreatePackage stores input with author as its owner. author must come from an authorized token.
func (s *PackageService) CreatePackage(ctx context.Context, author string, input models.PackageInput) error {
	if author == "" {
		return ErrUnauthorized
	}
	if input.Name == "" || input.Version == "" {
		return fmt.Errorf("%w: package name and version cannot be empty", ErrValidation)
	}

	err := s.packageRepo.CreatePackage(ctx, models.Package{
		Name:        input.Name,
		Version:     input.Version,
		Description: input.Description,
		Author:      author,
	})
	if errors.Is(err, repository.ErrPackageExists) {
		return err
	}
	if err != nil {
		log.Error().Err(err).Str("package", input.Name).Str("author", author).Msg("[PackageService.CreatePackage] Failed to store package")
		return fmt.Errorf("%w: failed to create package: %w", ErrStorage, err)
	}

	log.Info().Str("package", input.Name).Str("author", author).Msg("[PackageService.CreatePackage] Package created")
	return nil
}
