package httpx

import "net/http"

// RequireRole gates a handler on the caller's role claim. Runs after
// AuthnMiddleware; requests without a verified role are rejected.
func RequireRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, role := range required {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := roleFromCtx(r.Context())
			if _, ok := want[have]; !ok {
				writeBearerRoleError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-flavoured error for callers whose session lacks the role.
func writeBearerRoleError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient_role"))
}
