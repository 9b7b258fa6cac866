package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/lib/jwt"
)

func TestVerifyToken_LocalSecret(t *testing.T) {
	secret := "shared_provider_secret"
	maker := jwt.NewMaker(secret, time.Hour)

	gw := New(config.IdentityProvider{JWTSecret: secret, TokenTTL: time.Hour, Timeout: time.Second})

	token, err := maker.GenerateToken("uid-42", "jane@example.com", "Jane Reader")
	require.NoError(t, err)

	acc, err := gw.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-42", acc.ID)
	assert.Equal(t, "jane@example.com", acc.Email)
	assert.Equal(t, "Jane Reader", acc.Name)
}

func TestVerifyToken_LocalSecret_Invalid(t *testing.T) {
	gw := New(config.IdentityProvider{JWTSecret: "secret", TokenTTL: time.Hour, Timeout: time.Second})

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not.a.jwt"},
		{name: "foreign secret", token: mustToken(t, "other_secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := gw.VerifyToken(context.Background(), tt.token)
			assert.Nil(t, acc)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func mustToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := jwt.NewMaker(secret, time.Hour).GenerateToken("uid", "a@b.c", "A")
	require.NoError(t, err)
	return token
}

func TestVerifyToken_RemoteProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "invalid token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "uid-7",
			"email":         "reader@example.com",
			"user_metadata": map[string]string{"name": "Reader"},
		})
	}))
	defer srv.Close()

	gw := New(config.IdentityProvider{BaseURL: srv.URL, Timeout: time.Second})

	acc, err := gw.VerifyToken(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-7", acc.ID)
	assert.Equal(t, "Reader", acc.Name)

	acc, err = gw.VerifyToken(context.Background(), "bad-token")
	assert.Nil(t, acc)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var body struct {
			Email        string            `json:"email"`
			Password     string            `json:"password"`
			UserMetadata map[string]string `json:"user_metadata"`
			EmailConfirm bool              `json:"email_confirm"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.EmailConfirm)

		if body.Email == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "email already registered"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "uid-new",
			"email":         body.Email,
			"user_metadata": body.UserMetadata,
		})
	}))
	defer srv.Close()

	gw := New(config.IdentityProvider{BaseURL: srv.URL, ServiceKey: "service-key", Timeout: time.Second})

	acc, err := gw.CreateAccount(context.Background(), "new@example.com", "password123", "New Reader")
	require.NoError(t, err)
	assert.Equal(t, "uid-new", acc.ID)
	assert.Equal(t, "New Reader", acc.Name)

	acc, err = gw.CreateAccount(context.Background(), "taken@example.com", "password123", "Dup")
	assert.Nil(t, acc)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email already registered", verr.Message)
}
