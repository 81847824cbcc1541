package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
	"github.com/pulseboard/pulseboard/internal/identity/store"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

// BootstrapService seeds an operator-configured admin account at startup.
// This is the only path that creates an admin role; the public signup
// surface always registers plain users.
type BootstrapService struct {
	Registrar *RegistrarService
	Store     store.Store

	Email    string
	Password string
	Name     string
}

// EnsureAdmin creates the configured admin account if it doesn't exist yet.
// Idempotent: an existing account with that email wins, whatever its role.
// A no-op when no admin credentials are configured.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	if s.Email == "" || s.Password == "" {
		return nil
	}

	_, err := s.Store.Accounts().GetAccountByEmail(ctx, s.Email)
	if err == nil {
		log.Debug("bootstrap admin already exists", slog.String("email", s.Email))
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	_, err = s.Registrar.Register(ctx, s.Email, s.Password, s.Name, domain.RoleAdmin)
	if err != nil {
		// A concurrent replica may have won the insert. That's fine.
		if errors.Is(err, ErrEmailTaken) {
			return nil
		}
		return err
	}

	log.Info("bootstrap admin account created", slog.String("email", s.Email))
	return nil
}
