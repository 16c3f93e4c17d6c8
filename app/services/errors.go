package services

import "errors"

var (
	// ErrForbidden signals that the authorization policy denied the action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials signals a failed login. It deliberately does not
	// distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrWeakPassword rejects passwords below the minimum length.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)
