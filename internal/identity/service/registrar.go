package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
	"github.com/pulseboard/pulseboard/internal/identity/store"
	"github.com/pulseboard/pulseboard/pkg/cryptox"
	"github.com/pulseboard/pulseboard/pkg/idx"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrEmailTaken     = errors.New("email_taken")
)

// RegistrarService orchestrates signup: validate input, hash the password,
// persist the account. The duplicate-email check is not performed here: the
// store's atomic insert is the sole source of ErrEmailTaken, which closes
// the check-then-insert race under concurrent signups.
type RegistrarService struct {
	Store store.Store

	// Cost is the bcrypt work factor. Zero means cryptox.DefaultCost.
	Cost int
}

// Register creates a new account and returns it. The role defaults to user;
// admin creation is an operator-controlled path (bootstrap), never exposed
// through the public signup surface. On any failure no account row exists.
func (s *RegistrarService) Register(
	ctx context.Context,
	email, password, name string,
	role domain.Role,
) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input. Email is kept case-sensitive as given.
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Account{}, ErrInvalidRequest
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return domain.Account{}, ErrInvalidRequest
	}

	// 2. Hash the password. The plaintext goes no further than this call.
	hash, err := cryptox.HashPassword(password, s.Cost)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	// 3. Atomic insert. A unique-constraint conflict is the only signal
	// that the email is taken.
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrEmailTaken
		}
		log.Error("failed to create account", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("account created",
		slog.String("account_id", account.ID),
		slog.String("role", account.Role.String()),
	)

	return account, nil
}
