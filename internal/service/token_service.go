package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var _ TokenGenerator = (*TokenService)(nil)

// TokenService issues and verifies HS384 signed JWTs.
// The secret is read-only after construction, so one instance is shared by all requests.
type TokenService struct {
	jwtSecret []byte
	now       func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces the wall clock, for tests that need to move time.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService
func NewTokenService(secret string, opts ...TokenOption) *TokenService {
	s := &TokenService{jwtSecret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a token for subject expiring ttl from now.
// Claims are kept as an open map; exp is written as a decimal string of Unix seconds.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("%w: token subject cannot be empty", ErrInternal)
	}
	if ttl < time.Second {
		return "", time.Time{}, fmt.Errorf("%w: token ttl must be at least one second, got %s", ErrInternal, ttl)
	}

	exp := time.Unix(s.now().Add(ttl).Unix(), 0)
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": strconv.FormatInt(exp.Unix(), 10),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: failed to sign token: %w", ErrInternal, err)
	}

	return tokenString, exp, nil
}

// Verify checks the signature and expiry of tokenString and returns its subject.
// A bad signature or unparsable token yields ErrInvalidToken; a missing,
// malformed or past expiry yields ErrExpiredOrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Check the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS384.Alg()}),
		// exp is a string on the wire, which the library validator rejects; checked below
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	exp, err := expiryFromClaims(claims)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExpiredOrInvalidToken, err)
	}
	if exp <= s.now().Unix() {
		return "", fmt.Errorf("%w: token expired at %d", ErrExpiredOrInvalidToken, exp)
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return subject, nil
}

func expiryFromClaims(claims jwt.MapClaims) (int64, error) {
	raw, ok := claims["exp"]
	if !ok {
		return 0, errors.New("missing exp claim")
	}
	switch v := raw.(type) {
	case string:
		exp, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed exp claim: %w", err)
		}
		return exp, nil
	case float64:
		// tolerate numeric exp from other issuers sharing the key
		return int64(v), nil
	default:
		return 0, fmt.Errorf("malformed exp claim of type %T", raw)
	}
}
