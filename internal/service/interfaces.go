package service

import (
	"context"
	"time"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
)

// PasswordHasher derives and checks memory-hard password hashes.
type PasswordHasher interface {
	// Hash returns the encoded salt and a self-describing encoded hash.
	Hash(ctx context.Context, password []byte) (salt string, encodedHash string, err error)
	// Verify reports whether password matches encodedHash. A malformed hash is a mismatch,
	// not an error; the error is reserved for failing to obtain a worker.
	Verify(ctx context.Context, password []byte, encodedHash string) (bool, error)
}

// TokenGenerator mints and checks bearer tokens
type TokenGenerator interface {
	Issue(subject string, ttl time.Duration) (token string, expiresAt time.Time, err error)
	Verify(token string) (subject string, err error)
}

type AuthGenerator interface {
	// Signup registers a new identity and returns a token for it
	Signup(ctx context.Context, req models.CredentialsRequest) (*models.AuthResult, error)
	// Login checks credentials and returns a fresh token
	Login(ctx context.Context, req models.CredentialsRequest) (*models.AuthResult, error)
	// Authorize validates a token and returns the subject it was issued to
	Authorize(token string) (string, error)
}

type PackageGenerator interface {
	ListPackages(ctx context.Context, limit, page int64) ([]models.Package, error)
	CreatePackage(ctx context.Context, author string, input models.PackageInput) error
}
