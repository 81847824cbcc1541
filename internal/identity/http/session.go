package http

import (
	"net/http"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
	"github.com/pulseboard/pulseboard/internal/identity/service"
	"github.com/pulseboard/pulseboard/pkg/httpx"
)

type SessionHandler struct {
	Sessions *service.SessionService
}

// principalResponse mirrors the claims a valid session carries. Name is a
// pointer so accounts registered without one serialize as null rather than
// an empty string.
type principalResponse struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  string  `json:"role"`
}

func newPrincipalResponse(p domain.Principal) principalResponse {
	resp := principalResponse{
		ID:    p.ID,
		Email: p.Email,
		Role:  p.Role.String(),
	}
	if p.Name != "" {
		name := p.Name
		resp.Name = &name
	}
	return resp
}

// ServeHTTP handles GET /v1/session: it materializes the presented token
// into a principal. Expired, tampered and absent tokens all fail closed
// into the same 401; a valid token returns the principal embedded at
// issuance time, role included.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := httpx.ExtractToken(r, SessionCookieName)

	sess := h.Sessions.Materialize(r.Context(), token)
	if sess.State != domain.SessionAuthenticated {
		ErrInvalidSession.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newPrincipalResponse(sess.Principal))
}
