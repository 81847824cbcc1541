package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/pulseboard/pulseboard/pkg/jwtx"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

// ExtractToken pulls the session token from the Authorization header or,
// failing that, from the named cookie. An explicit bearer header wins over
// the ambient cookie. Returns "" when neither is present.
func ExtractToken(r *http.Request, cookieName string) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return c.Value
		}
	}
	return ""
}

// AuthnMiddleware verifies the session token and injects the principal's
// claims into the request context. Missing, forged and expired tokens all
// fail closed with the same 401.
func AuthnMiddleware(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := ExtractToken(r, cookieName)
			if raw == "" {
				writeBearerError(w, "missing session token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("session verify failed", "err", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
