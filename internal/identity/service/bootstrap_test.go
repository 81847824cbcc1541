package service

import (
	"context"
	"testing"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	registrar := newRegistrar(st)

	boot := &BootstrapService{
		Registrar: registrar,
		Store:     st,
		Email:     "ops@x.com",
		Password:  "operator-secret",
		Name:      "Operator",
	}

	require.NoError(t, boot.EnsureAdmin(ctx))

	account, err := st.Accounts().GetAccountByEmail(ctx, "ops@x.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, account.Role)
	require.Equal(t, "Operator", account.Name)

	// Running it again must not create a second row or touch the first.
	require.NoError(t, boot.EnsureAdmin(ctx))

	accounts, err := st.Accounts().ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, account.ID, accounts[0].ID)
}

func TestEnsureAdminUnconfigured(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := &BootstrapService{Registrar: newRegistrar(st), Store: st}
	require.NoError(t, boot.EnsureAdmin(ctx))

	accounts, err := st.Accounts().ListAccounts(ctx)
	require.NoError(t, err)
	require.Empty(t, accounts)
}

func TestEnsureAdminExistingAccountWins(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	registrar := newRegistrar(st)

	// A plain user already holds the configured email.
	existing, err := registrar.Register(ctx, "ops@x.com", "their-own-password", "", domain.RoleUser)
	require.NoError(t, err)

	boot := &BootstrapService{
		Registrar: registrar,
		Store:     st,
		Email:     "ops@x.com",
		Password:  "operator-secret",
	}
	require.NoError(t, boot.EnsureAdmin(ctx))

	// Bootstrap must not escalate or replace the existing account.
	got, err := st.Accounts().GetAccountByEmail(ctx, "ops@x.com")
	require.NoError(t, err)
	require.Equal(t, existing.ID, got.ID)
	require.Equal(t, domain.RoleUser, got.Role)
}
