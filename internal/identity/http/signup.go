package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
	"github.com/pulseboard/pulseboard/internal/identity/service"
	"github.com/pulseboard/pulseboard/pkg/httpx"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

type SignupHandler struct {
	Registrar *service.RegistrarService
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// signupResponse is the public-safe projection of a freshly created account.
// The password hash never appears in any response.
type signupResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ServeHTTP handles POST /v1/signup. Success is 201 with {id, email};
// missing fields are 400, a duplicate email is 409, anything else is a
// generic 500.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrInvalidRequest.Write(w)
		return
	}

	if req.Email == "" || req.Password == "" {
		ErrInvalidRequest.Write(w)
		return
	}

	// Public signup always registers a plain user. Admin accounts only
	// come from operator bootstrap.
	account, err := h.Registrar.Register(ctx, req.Email, req.Password, req.Name, domain.RoleUser)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			ErrInvalidRequest.Write(w)
		case errors.Is(err, service.ErrEmailTaken):
			ErrEmailTaken.Write(w)
		default:
			log.Error("signup failed", "err", err)
			ErrServerError.Write(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, signupResponse{
		ID:    account.ID,
		Email: account.Email,
	})
}
