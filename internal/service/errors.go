package service

import "errors"

var (
	// ErrValidation reports a malformed or missing request field.
	ErrValidation = errors.New("validation failed")
	// ErrUsernameTaken is returned by Signup when the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken means the token could not be parsed or its signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredOrInvalidToken means the signature verified but exp is missing, malformed or passed.
	ErrExpiredOrInvalidToken = errors.New("expired or invalid token")
	// ErrUnauthorized wraps any token failure seen by Authorize.
	ErrUnauthorized = errors.New("unauthorized")

	ErrStorage       = errors.New("storage failure")
	ErrInternal      = errors.New("internal error")
	ErrEmptyPassword = errors.New("password cannot be empty")
)
