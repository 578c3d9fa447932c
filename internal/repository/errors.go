package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrForbidden is returned when a caller does not own the record it mutates.
	ErrForbidden = errors.New("forbidden")
)
