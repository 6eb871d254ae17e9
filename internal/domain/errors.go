package domain

import "errors"

// Domain errors
var (
	// Credential errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrSelfDeletionForbidden = errors.New("cannot delete your own account")

	// Validation errors
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidCategory = errors.New("invalid category")
	ErrWeakPassword    = errors.New("password must have at least 6 characters")
	ErrMissingFields   = errors.New("required fields are missing")

	// Announcement errors
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAnnouncementNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrWeakPassword) ||
		errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrSelfDeletionForbidden)
}
