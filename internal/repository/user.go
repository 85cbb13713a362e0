package repository

import (
	"context"

	"github.com/ErlanBelekov/authapi/internal/domain"
)

// UserRepository is the persistence contract for user accounts.
//
// Create must enforce email uniqueness atomically and report a duplicate as
// domain.ErrUserExists. FindByID returns the user without its password hash.
// Lookups that match nothing return domain.ErrUserNotFound.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
}
