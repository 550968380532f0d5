package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
)

var _ repository.PackageRepository = (*SQLitePackageRepository)(nil)

type SQLitePackageRepository struct {
	db *sql.DB
}

func NewSQLitePackageRepository(db *sql.DB) *SQLitePackageRepository {
	return &SQLitePackageRepository{db: db}
}

func (r *SQLitePackageRepository) ListPackages(ctx context.Context, limit, offset int64) ([]models.Package, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, version, description, author FROM packages ORDER BY id LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	packages := []models.Package{}
	for rows.Next() {
		var pkg models.Package
		var author sql.NullString
		if err := rows.Scan(&pkg.Name, &pkg.Version, &pkg.Description, &author); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		pkg.Author = author.String
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packages: %w", err)
	}
	return packages, nil
}

func (r *SQLitePackageRepository) CreatePackage(ctx context.Context, pkg models.Package) error {
	var author sql.NullString
	if pkg.Author != "" {
		author = sql.NullString{String: pkg.Author, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO packages (name, version, description, author) VALUES (?, ?, ?, ?)",
		pkg.Name, pkg.Version, pkg.Description, author,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrPackageExists
		}
		return fmt.Errorf("failed to insert package: %w", err)
	}
	return nil
}
