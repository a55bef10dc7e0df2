package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchFailed indicates a provider could not complete a search
	ErrSearchFailed = errors.New("search failed")

	// ErrNoSelection indicates a command needs a focused result but none exists
	ErrNoSelection = errors.New("no result selected")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrClosed indicates the component has been shut down
	ErrClosed = errors.New("closed")
)
