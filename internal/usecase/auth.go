package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/authapi/internal/domain"
	"github.com/ErlanBelekov/authapi/internal/metrics"
	"github.com/ErlanBelekov/authapi/internal/repository"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// dummyPassword is hashed once so logins for unknown emails still pay for
// one bcrypt comparison.
const dummyPassword = "authapi-timing-equalizer"

// fallbackDummyHash is a well-formed cost-10 bcrypt hash used when hashing
// dummyPassword fails; comparing against it costs a full bcrypt round.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthUsecase struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	dummyHash string
}

func NewAuthUsecase(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthUsecase {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil || dummyHash == "" {
		dummyHash = fallbackDummyHash
	}
	return &AuthUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (in RegisterInput) validate() error {
	switch {
	case in.Username == "":
		return &domain.ValidationError{Field: "username", Message: "Username is required"}
	case in.Email == "":
		return &domain.ValidationError{Field: "email", Message: "Email is required"}
	case in.Password == "":
		return &domain.ValidationError{Field: "password", Message: "Password is required"}
	case in.Password != in.ConfirmPassword:
		return &domain.ValidationError{Field: "confirmPassword", Message: "Passwords do not match"}
	}
	return nil
}

// Register validates the input, hashes the password and creates the user.
// A duplicate email surfaces as domain.ErrUserExists from the repository.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := in.validate(); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	user, err := u.users.Create(ctx, in.Username, in.Email, hash)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return nil, domain.ErrUserExists
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login returns a signed bearer token for valid credentials. Unknown email
// and wrong password both yield domain.ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (string, error) {
	switch {
	case in.Email == "":
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return "", &domain.ValidationError{Field: "email", Message: "Email is required"}
	case in.Password == "":
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return "", &domain.ValidationError{Field: "password", Message: "Password is required"}
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.hasher.Verify(in.Password, u.dummyHash)
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(in.Password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return signed, nil
}

// DummyHash is the hash compared against when a login email is unknown.
func (u *AuthUsecase) DummyHash() string {
	return u.dummyHash
}

func (u *AuthUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
