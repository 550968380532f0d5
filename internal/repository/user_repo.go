package repository

import (
	"context"
	"errors"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
)

// CredentialStore defines operations for storing/retrieving user credentials
type CredentialStore interface {
	// Insert stores a new credential record.
	// It must return ErrUserExists if the username is already taken. The check
	// has to be atomic with the write (a uniqueness constraint or equivalent),
	// never a separate lookup followed by an insert.
	Insert(ctx context.Context, username, salt, passwordHash string) error

	// FindByUsername retrieves a credential record.
	// It should return ErrUserNotFound if the user does not exist.
	FindByUsername(ctx context.Context, username string) (*models.CredentialRecord, error)
}

// Common errors
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
