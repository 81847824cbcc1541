package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pulseboard/pulseboard/internal/identity/service"
	"github.com/pulseboard/pulseboard/pkg/httpx"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

// SessionCookieName is the cookie carrying the session token for browser
// clients. API clients use the bearer token from the login response instead.
const SessionCookieName = "pb_session"

type LoginHandler struct {
	Credentials *service.CredentialService
	Sessions    *service.SessionService

	// SecureCookies marks the session cookie Secure. Off only in dev.
	SecureCookies bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ServeHTTP handles POST /v1/login. On success it returns the signed session
// token and sets it as an HttpOnly cookie. Every failure except an
// infrastructure fault is the identical invalid_credentials response:
// missing fields, unknown email and wrong password are indistinguishable.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrInvalidCredentials.Write(w)
		return
	}

	principal, err := h.Credentials.Authorize(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ErrInvalidCredentials.Write(w)
			return
		}
		log.Error("login failed", "err", err)
		ErrServerError.Write(w)
		return
	}

	issued, err := h.Sessions.Issue(ctx, principal)
	if err != nil {
		log.Error("session issuance failed", "account_id", principal.ID, "err", err)
		ErrServerError.Write(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    issued.Token,
		Path:     "/",
		Expires:  issued.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(issued.ExpiresAt).Seconds()),
	})
}
