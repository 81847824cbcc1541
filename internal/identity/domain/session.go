package domain

import "time"

// SessionState is the materializer's verdict on a presented token. There is
// no server-side session record: the state is derived from the token alone,
// so "logout" is client-side discard and a session can never be revoked
// before it expires.
type SessionState int

const (
	// SessionUnauthenticated covers missing, unsigned, forged and
	// malformed tokens. The materializer fails closed into this state.
	SessionUnauthenticated SessionState = iota

	// SessionAuthenticated means the token verified and the principal is
	// populated.
	SessionAuthenticated

	// SessionExpired means the token was well-formed and correctly signed
	// but its validity window has passed.
	SessionExpired
)

func (s SessionState) String() string {
	switch s {
	case SessionAuthenticated:
		return "authenticated"
	case SessionExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Session is the tagged result of materializing a token. Principal and
// ExpiresAt are only meaningful when State is SessionAuthenticated.
type Session struct {
	State     SessionState
	Principal Principal
	ExpiresAt time.Time
}
