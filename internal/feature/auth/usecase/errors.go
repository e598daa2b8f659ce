// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found by username, email or ID.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateUsername is returned when registering a username that is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateEmail is returned when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials is returned when username and password do not match.
	// It never says which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
