package jwtx

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// NewSignerHS256 creates an HS256 signer from a shared secret. The secret is
// process-wide configuration loaded once at startup; it is never embedded in
// the payload and there is no runtime mutation path.
func NewSignerHS256(secret []byte) (Signer, error) {
	return newHS256Signer(secret)
}
