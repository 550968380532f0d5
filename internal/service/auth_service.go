package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
)

// MaxUsernameLength bounds the username accepted at signup.
const MaxUsernameLength = 255

var _ AuthGenerator = (*AuthService)(nil)

// AuthService handles signup, login and token authorization
type AuthService struct {
	store    repository.CredentialStore
	hasher   PasswordHasher
	tokenSvc TokenGenerator
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService. tokenTTL is the lifetime of every token it issues.
func NewAuthService(
	store repository.CredentialStore,
	hasher PasswordHasher,
	tokenSvc TokenGenerator,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		store:    store,
		hasher:   hasher,
		tokenSvc: tokenSvc,
		tokenTTL: tokenTTL,
	}
}

func validateCredentials(req models.CredentialsRequest) error {
	if req.Username == "" || req.Password == "" {
		return fmt.Errorf("%w: username and password cannot be empty", ErrValidation)
	}
	if len(req.Username) > MaxUsernameLength {
		return fmt.Errorf("%w: username longer than %d bytes", ErrValidation, MaxUsernameLength)
	}
	return nil
}

// Signup hashes the password, stores the record and returns a token for the new user.
// A taken username fails with ErrUsernameTaken and leaves the existing record untouched.
func (s *AuthService) Signup(ctx context.Context, req models.CredentialsRequest) (*models.AuthResult, error) {
	if err := validateCredentials(req); err != nil {
		return nil, err
	}

	salt, passwordHash, err := s.hasher.Hash(ctx, []byte(req.Password))
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("[AuthService.Signup] Failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password: %w", ErrInternal, err)
	}

	err = s.store.Insert(ctx, req.Username, salt, passwordHash)
	if errors.Is(err, repository.ErrUserExists) {
		log.Info().Str("username", req.Username).Msg("[AuthService.Signup] Username already taken")
		return nil, fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	}
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("[AuthService.Signup] Failed to store credentials")
		return nil, fmt.Errorf("%w: failed to register user: %w", ErrStorage, err)
	}

	token, err := s.issue(req.Username)
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", req.Username).Msg("[AuthService.Signup] User registered")
	return &models.AuthResult{Username: req.Username, Token: token}, nil
}

// Login checks the password against the stored hash. Unknown users and wrong
// passwords both fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req models.CredentialsRequest) (*models.AuthResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	record, err := s.store.FindByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Info().Str("username", req.Username).Msg("[AuthService.Login] Login failed")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("[AuthService.Login] Failed to get credentials")
		return nil, fmt.Errorf("%w: failed to get user credentials: %w", ErrStorage, err)
	}

	ok, err := s.hasher.Verify(ctx, []byte(req.Password), record.Password)
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("[AuthService.Login] Password verification could not run")
		return nil, fmt.Errorf("%w: failed to verify password: %w", ErrInternal, err)
	}
	if !ok {
		log.Info().Str("username", req.Username).Msg("[AuthService.Login] Login failed")
		return nil, ErrInvalidCredentials
	}

	token, err := s.issue(record.Username)
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", record.Username).Msg("[AuthService.Login] User logged in")
	return &models.AuthResult{Username: record.Username, Token: token}, nil
}

// Authorize returns the subject of a valid token. Every failure wraps ErrUnauthorized.
func (s *AuthService) Authorize(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", ErrUnauthorized)
	}
	subject, err := s.tokenSvc.Verify(token)
	if err != nil {
		log.Debug().Err(err).Msg("[AuthService.Authorize] Token rejected")
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return subject, nil
}

func (s *AuthService) issue(username string) (string, error) {
	token, _, err := s.tokenSvc.Issue(username, s.tokenTTL)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("[AuthService] Failed to issue token")
		return "", fmt.Errorf("%w: failed to issue token: %w", ErrInternal, err)
	}
	return token, nil
}
