package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
)

var _ repository.CredentialStore = (*SQLiteCredentialStore)(nil)

// SQLiteCredentialStore implements CredentialStore on the users table.
type SQLiteCredentialStore struct {
	db *sql.DB
}

func NewSQLiteCredentialStore(db *sql.DB) *SQLiteCredentialStore {
	return &SQLiteCredentialStore{db: db}
}

// Insert relies on the primary key constraint for uniqueness.
func (r *SQLiteCredentialStore) Insert(ctx context.Context, username, salt, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, salt, password) VALUES (?, ?, ?)",
		username, salt, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *SQLiteCredentialStore) FindByUsername(ctx context.Context, username string) (*models.CredentialRecord, error) {
	var record models.CredentialRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT username, salt, password FROM users WHERE username = ?",
		username,
	).Scan(&record.Username, &record.Salt, &record.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database query failed for user: %w", err)
	}
	return &record, nil
}
