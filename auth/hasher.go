package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/user/inkwell-go/apperror"
)

// PasswordHasher performs one-way salted hashing and verification of
// plaintext passwords using bcrypt. The work factor is process-wide
// configuration fixed at construction.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to the library default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. bcrypt generates its own salt,
// so two hashes of the same password differ. A hashing failure surfaces as an
// InternalError and never silently succeeds.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison
// inside bcrypt is constant-time with respect to the result.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
