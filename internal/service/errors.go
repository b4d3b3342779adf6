package service

import "errors"

// Errors returned by the services. Handlers map each of them to a status code
// and anything not listed here becomes a 500.
var (
	// Validation failures, 400.
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrTitleRequired    = errors.New("title is required")

	// ErrUsernameTaken is a registration conflict, 400.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, 400.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFoundOrForbidden covers both a missing question and one owned by
	// someone else, 404.
	ErrNotFoundOrForbidden = errors.New("question not found or not authorized")
)

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUsernameRequired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordTooLong) ||
		errors.Is(err, ErrTitleRequired)
}
