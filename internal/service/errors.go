package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an identifier does not match any record.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned on any login failure. It is
	// deliberately identical for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when registering with a taken email or username.
	ErrUserExists = errors.New("user with this email or username already exists")
)

// ValidationError describes a single rejected input field. Shape violations
// caught by request binding are accumulated by the validator before a request
// reaches a service; this type covers the checks only services can make.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
