package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("no matching result")
	ErrTimeout         = errors.New("upstream deadline exceeded")
	ErrHTTPFailure     = errors.New("upstream http failure")
	ErrMalformed       = errors.New("malformed upstream response")
	ErrInvalidArgument = errors.New("invalid argument")
)
