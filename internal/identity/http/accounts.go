package http

import (
	"net/http"
	"time"

	"github.com/pulseboard/pulseboard/internal/identity/store"
	"github.com/pulseboard/pulseboard/pkg/httpx"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

// AccountsHandler serves the admin account listing. Routed behind
// AuthnMiddleware + RequireRole("admin"): the role claim minted at login is
// what gates access here.
type AccountsHandler struct {
	Store store.Store
}

type accountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type accountListResponse struct {
	Accounts []accountResponse `json:"accounts"`
}

// ServeHTTP handles GET /v1/accounts. Returns public-safe projections only;
// password hashes stay behind the store boundary.
func (h *AccountsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accounts, err := h.Store.Accounts().ListAccounts(ctx)
	if err != nil {
		log.Error("failed to list accounts", "err", err)
		ErrServerError.Write(w)
		return
	}

	resp := accountListResponse{Accounts: make([]accountResponse, 0, len(accounts))}
	for _, a := range accounts {
		item := accountResponse{
			ID:        a.ID,
			Email:     a.Email,
			Role:      a.Role.String(),
			CreatedAt: a.CreatedAt,
		}
		if a.Name != "" {
			name := a.Name
			item.Name = &name
		}
		resp.Accounts = append(resp.Accounts, item)
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
