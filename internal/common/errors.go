package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Credential errors.
	ErrNoCredential = errors.New("no stored credential")
	ErrInvalidToken = errors.New("invalid token")
)
