package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/pulseboard/pulseboard/internal/identity/domain"
	identityhttp "github.com/pulseboard/pulseboard/internal/identity/http"
	"github.com/pulseboard/pulseboard/internal/identity/service"
	"github.com/pulseboard/pulseboard/internal/identity/store/drivers/sqlite"
	"github.com/pulseboard/pulseboard/pkg/cryptox"
	"github.com/pulseboard/pulseboard/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "identity-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	server    *httptest.Server
	store     *sqlite.Store
	registrar *service.RegistrarService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "identity.db") +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(testSecret, testIssuer)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registrar := &service.RegistrarService{Store: st, Cost: cryptox.MinCost}

	router := identityhttp.NewRouter(signer, verifier, "test", st, logger)
	router.RegistrarService = registrar
	router.CredentialService = &service.CredentialService{Store: st}
	router.SessionService = &service.SessionService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   testIssuer,
		TTL:      time.Hour,
	}
	router.RequestTimeout = 10 * time.Second
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, store: st, registrar: registrar}
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func (e *testEnv) getWithBearer(t *testing.T, path, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return raw
}

// login returns the access token for the given credentials, failing the test
// if the login is rejected.
func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	resp := e.postJSON(t, "/v1/login", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	t.Run("creates account", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/signup", map[string]string{
			"email": "a@x.com", "password": "secret1",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		require.NotEmpty(t, body["id"])
		require.Equal(t, "a@x.com", body["email"])

		// Only id and email come back. No hash, no role, no secrets.
		require.Len(t, body, 2)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/signup", map[string]string{
			"email": "a@x.com", "password": "different",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, "email_taken", body["error"])
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/signup", map[string]string{"email": "b@x.com"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, "invalid_request", body["error"])
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postJSON(t, "/v1/signup", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPw := env.postJSON(t, "/v1/login", map[string]string{
			"email": "a@x.com", "password": "bad",
		})
		unknown := env.postJSON(t, "/v1/login", map[string]string{
			"email": "b@x.com", "password": "bad",
		})

		require.Equal(t, http.StatusUnauthorized, wrongPw.StatusCode)
		require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
		require.Equal(t, readBody(t, wrongPw), readBody(t, unknown),
			"rejection bodies must be byte-identical")
	})

	t.Run("correct password issues a session", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/login", map[string]string{
			"email": "a@x.com", "password": "secret1",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// The token rides both the JSON body and an HttpOnly cookie.
		var sessionCookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == identityhttp.SessionCookieName {
				sessionCookie = c
			}
		}
		require.NotNil(t, sessionCookie)
		require.True(t, sessionCookie.HttpOnly)
		require.NotEmpty(t, sessionCookie.Value)

		body := decodeBody(t, resp)
		require.Equal(t, "Bearer", body["token_type"])
		require.NotEmpty(t, body["access_token"])
		require.Greater(t, body["expires_in"].(float64), float64(0))
		require.Equal(t, sessionCookie.Value, body["access_token"])
	})
}

func TestSession(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postJSON(t, "/v1/signup", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	accountID := decodeBody(t, resp)["id"]

	token := env.login(t, "a@x.com", "secret1")

	t.Run("bearer token materializes the principal", func(t *testing.T) {
		resp := env.getWithBearer(t, "/v1/session", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, accountID, body["id"])
		require.Equal(t, "a@x.com", body["email"])
		require.Nil(t, body["name"], "accounts without a name serialize as null")
		require.Equal(t, "user", body["role"])
	})

	t.Run("cookie works too", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, env.server.URL+"/v1/session", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: identityhttp.SessionCookieName, Value: token})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		body := decodeBody(t, resp)
		require.Equal(t, "a@x.com", body["email"])
	})

	t.Run("missing token rejected", func(t *testing.T) {
		resp := env.getWithBearer(t, "/v1/session", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "invalid_session", decodeBody(t, resp)["error"])
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		tampered := token + "x"
		resp := env.getWithBearer(t, "/v1/session", tampered)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "invalid_session", decodeBody(t, resp)["error"])
	})
}

func TestAccountsAdminGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	// Admin accounts only come from the operator path, never signup.
	_, err := env.registrar.Register(ctx, "ops@x.com", "operator-secret", "Operator", domain.RoleAdmin)
	require.NoError(t, err)

	resp := env.postJSON(t, "/v1/signup", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	adminToken := env.login(t, "ops@x.com", "operator-secret")
	userToken := env.login(t, "a@x.com", "secret1")

	t.Run("admin lists accounts", func(t *testing.T) {
		resp := env.getWithBearer(t, "/v1/accounts", adminToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		accounts, ok := body["accounts"].([]any)
		require.True(t, ok)
		require.Len(t, accounts, 2)

		// Password hashes never leave the store boundary.
		for _, entry := range accounts {
			account, ok := entry.(map[string]any)
			require.True(t, ok)
			require.NotContains(t, account, "password_hash")
			require.NotContains(t, account, "password")
		}
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		resp := env.getWithBearer(t, "/v1/accounts", userToken)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		resp := env.getWithBearer(t, "/v1/accounts", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("livez", func(t *testing.T) {
		resp, err := http.Get(env.server.URL + "/livez")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "ok", decodeBody(t, resp)["status"])
	})

	t.Run("readyz", func(t *testing.T) {
		resp, err := http.Get(env.server.URL + "/readyz")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, "ok", body["status"])
	})
}
