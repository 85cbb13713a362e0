package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/ErlanBelekov/authapi/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = bcrypt.DefaultCost

// BcryptHasher derives salted bcrypt hashes. The salt is generated per call
// and embedded in the returned hash. Passwords are reduced to a fixed-size
// SHA-256 digest first, so bcrypt's 72-byte input limit never applies and
// no byte of a long password is ignored.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher falls back to DefaultCost when cost is outside bcrypt's range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword(prehash(plaintext), h.cost)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a mismatch.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(plaintext)) == nil
}

// prehash base64-encodes the digest so no NUL bytes reach bcrypt.
func prehash(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
