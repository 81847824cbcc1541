package jwtx

import "errors"

// Verifier validates a session token and gives you back the claims if it's
// legit. All failure modes are sentinel errors so callers can distinguish
// "expired" from "forged" without string matching.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// NewVerifierHS256 creates a verifier sharing the signer's secret. An empty
// issuer disables the issuer check.
func NewVerifierHS256(secret []byte, issuer string) Verifier {
	return &HS256Verifier{key: append([]byte(nil), secret...), issuer: issuer}
}
