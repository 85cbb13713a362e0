package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt; empty when loaded through a projection
	CreatedAt    time.Time
}

// ValidationError reports the first request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
