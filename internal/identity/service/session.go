package service

import (
	"context"
	"errors"
	"time"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
	"github.com/pulseboard/pulseboard/pkg/jwtx"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

// SessionService mints and materializes stateless session tokens. The signed
// token is the sole source of truth for a session: no record is kept server
// side, so invalidation before expiry is not possible here.
//
// Neither tokens nor claim payloads are ever logged by this service; only
// account IDs and outcomes appear in logs.
type SessionService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
}

// IssuedToken is the result of minting a session token.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// Issue embeds the principal's claims into a signed token. The principal
// must come from a successful Authorize call; this is the only transition
// from Unauthenticated to Authenticated.
func (s *SessionService) Issue(ctx context.Context, p domain.Principal) (IssuedToken, error) {
	log := slogx.FromContext(ctx)

	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(
		p.ID, p.Email, p.Name, p.Role.String(),
		ttl, s.Issuer, now,
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", "account_id", p.ID, "err", err)
		return IssuedToken{}, err
	}

	log.Info("session issued", "account_id", p.ID, "expires_at", claims.ExpiresAt.Time)

	return IssuedToken{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Materialize decodes a token into the tagged session result. It fails
// closed: anything unsigned, corrupted or from another issuer comes back
// Unauthenticated, and a correctly signed but stale token comes back
// Expired. It never returns an error to the caller.
func (s *SessionService) Materialize(ctx context.Context, token string) domain.Session {
	if token == "" {
		return domain.Session{State: domain.SessionUnauthenticated}
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.Session{State: domain.SessionExpired}
		}
		return domain.Session{State: domain.SessionUnauthenticated}
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return domain.Session{State: domain.SessionUnauthenticated}
	}

	sess := domain.Session{
		State: domain.SessionAuthenticated,
		Principal: domain.Principal{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  role,
		},
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess
}
