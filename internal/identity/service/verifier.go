package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
	"github.com/pulseboard/pulseboard/internal/identity/store"
	"github.com/pulseboard/pulseboard/pkg/cryptox"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

// ErrInvalidCredentials is the single rejection for every bad-login cause:
// missing fields, unknown email, wrong password. Callers must not be able to
// tell which one occurred (account enumeration).
var ErrInvalidCredentials = errors.New("invalid_credentials")

// decoyHash is a real bcrypt digest (cost 12) of a throwaway string. When the
// account doesn't exist we still burn one comparison against it so the
// not-found path costs the same as a password mismatch.
const decoyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// CredentialService orchestrates login: look up the account by email, verify
// the password, hand back the principal. It fails closed: every rejection is
// ErrInvalidCredentials, and only infrastructure faults surface differently.
type CredentialService struct {
	Store store.Store
}

// Authorize verifies an email/password pair and returns the principal copied
// verbatim from the stored account at this moment. Role changes after the
// caller issues a token do not retroactively apply.
func (s *CredentialService) Authorize(
	ctx context.Context,
	email, password string,
) (domain.Principal, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return domain.Principal{}, ErrInvalidCredentials
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, decoyHash)
			return domain.Principal{}, ErrInvalidCredentials
		}
		log.Error("failed to look up account", slog.Any("error", err))
		return domain.Principal{}, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		return domain.Principal{}, ErrInvalidCredentials
	}

	return account.Principal(), nil
}
