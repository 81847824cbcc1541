package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the smallest secret we accept for HS256. Anything
// shorter than the hash output weakens the MAC.
const MinSecretBytes = 32

// HS256Signer implements the Signer interface using HMAC-SHA256 with a
// shared process-wide secret.
type HS256Signer struct {
	key []byte
	alg string
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretBytes {
		return nil, errors.New("jwtx: HS256 secret must be at least 32 bytes")
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256Signer{
		key: key,
		alg: jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Validate does a quick sanity check to make sure we actually have a key.
func (s *HS256Signer) Validate() error {
	if len(s.key) < MinSecretBytes {
		return errors.New("jwtx: HS256 secret too short")
	}
	return nil
}
