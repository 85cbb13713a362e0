package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/authapi/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var ErrSecretMissing = errors.New("jwt secret is not configured")

// Service issues and verifies HS256 bearer tokens whose sub claim is the
// user ID. With a zero ttl no exp claim is written, so tokens stay valid
// until the secret is rotated.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl, now: time.Now}
}

func (s *Service) Issue(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSecretMissing
	}
	if userID == "" {
		return "", errors.New("issue token: empty user id")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Verify returns the user ID carried by raw. Every failure, including a
// missing secret, is reported as domain.ErrTokenInvalid.
func (s *Service) Verify(raw string) (string, error) {
	if len(s.secret) == 0 {
		return "", domain.ErrTokenInvalid
	}

	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return "", domain.ErrTokenInvalid
	}

	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
