package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ErlanBelekov/authapi/internal/domain"
	"github.com/google/uuid"
)

// UserRepository keeps users in process memory. Used for ENV=local without
// a database and in tests.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, username, email, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return nil, domain.ErrUserExists
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID

	cp := *u
	return &cp, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

// Ping satisfies health.Pinger; memory is always reachable.
func (r *UserRepository) Ping(_ context.Context) error {
	return nil
}
