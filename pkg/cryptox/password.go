package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost bounds for bcrypt password hashing.
const (
	// DefaultCost matches the work factor the rest of the platform was
	// provisioned for. Raising it is a config change, not a code change.
	DefaultCost = 12

	// MinCost is the cheapest cost bcrypt accepts. Only sensible in tests.
	MinCost = bcrypt.MinCost
)

// ErrPasswordMismatch reports that a plaintext password does not match a
// stored digest. Malformed digests surface as this error too so callers
// can't tell the difference.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword produces a salted bcrypt digest of the plaintext. bcrypt
// embeds its own random salt, so hashing the same password twice yields two
// different digests.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword compares a plaintext password against a bcrypt digest in
// constant time. It never panics: a corrupted or non-bcrypt digest reports
// ErrPasswordMismatch just like a wrong password.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
