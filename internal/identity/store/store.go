package store

import (
	"context"
	"errors"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres if we outgrow it) implement this. Accounts are the only durable
// entity: sessions are stateless tokens and never touch the store.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during login. Email comparison is
	// case-sensitive, matching how emails are stored.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by the app via
	// ULID). The email uniqueness check and the insert are a single atomic
	// operation: the storage-level unique constraint is the sole source of
	// ErrAlreadyExists, never a preceding lookup.
	CreateAccount(ctx context.Context, a domain.Account) error

	// ListAccounts returns all accounts ordered by creation (newest
	// first). Admin surface only.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
