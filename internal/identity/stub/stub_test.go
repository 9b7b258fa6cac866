package stub_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/identity"
	"github.com/magabrotheeeer/daily-paper/internal/identity/stub"
	"github.com/magabrotheeeer/daily-paper/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setupStub(t *testing.T) (*httptest.Server, jwt.Maker) {
	t.Helper()
	maker := jwt.NewMaker("stub_secret_key", time.Hour)
	srv := httptest.NewServer(stub.New(newNoopLogger(), maker).Router())
	t.Cleanup(srv.Close)
	return srv, maker
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func TestSignupThenSignInYieldsWorkingToken(t *testing.T) {
	srv, _ := setupStub(t)

	resp := postJSON(t, srv.URL+"/auth/v1/signup", map[string]any{
		"email":         "jane@example.com",
		"password":      "password123",
		"user_metadata": map[string]string{"name": "Jane Reader"},
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tokenResp := postJSON(t, srv.URL+"/auth/v1/token?grant_type=password", map[string]string{
		"email":    "jane@example.com",
		"password": "password123",
	})
	defer func() { _ = tokenResp.Body.Close() }()
	require.Equal(t, http.StatusOK, tokenResp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(tokenResp.Body).Decode(&token))
	require.NotEmpty(t, token.AccessToken)

	// Выданный токен проходит проверку в шлюзе через /auth/v1/user.
	gw := identity.New(config.IdentityProvider{BaseURL: srv.URL, Timeout: time.Second})
	acc, err := gw.VerifyToken(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, token.User.ID, acc.ID)
	assert.Equal(t, "jane@example.com", acc.Email)
	assert.Equal(t, "Jane Reader", acc.Name)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	srv, _ := setupStub(t)

	body := map[string]any{
		"email":    "dup@example.com",
		"password": "password123",
	}
	resp := postJSON(t, srv.URL+"/auth/v1/admin/users", body)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/auth/v1/admin/users", body)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var perr struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&perr))
	assert.Equal(t, "email already registered", perr.Msg)
}

func TestSignup_PasswordPolicy(t *testing.T) {
	srv, _ := setupStub(t)

	resp := postJSON(t, srv.URL+"/auth/v1/signup", map[string]any{
		"email":    "short@example.com",
		"password": "12345",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToken_BadCredentials(t *testing.T) {
	srv, _ := setupStub(t)

	resp := postJSON(t, srv.URL+"/auth/v1/signup", map[string]any{
		"email":    "jane@example.com",
		"password": "password123",
	})
	_ = resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/v1/token?grant_type=password", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong_password",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUser_RejectsForeignToken(t *testing.T) {
	srv, _ := setupStub(t)

	foreign, err := jwt.NewMaker("other_secret", time.Hour).GenerateToken("uid", "a@b.c", "A")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/v1/user", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+foreign)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
