package middlewarectx_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/daily-paper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-paper/internal/identity"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// GatewayMock реализует интерфейс middlewarectx.Gateway
type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) VerifyToken(ctx context.Context, token string) (*models.Account, error) {
	args := m.Called(ctx, token)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthMiddleware(t *testing.T) {
	handlerCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		account, ok := middlewarectx.AccountFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "uid-1", account.ID)
		assert.Equal(t, "jane@example.com", account.Email)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authHeader     string
		mockAccount    *models.Account
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token rejected by gateway",
			authHeader:     "Bearer expired",
			mockAccount:    nil,
			mockErr:        identity.ErrUnauthorized,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer validtoken",
			mockAccount:    &models.Account{ID: "uid-1", Email: "jane@example.com", Name: "Jane"},
			mockErr:        nil,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			gatewayMock := new(GatewayMock)
			if tt.mockAccount != nil || tt.mockErr != nil {
				gatewayMock.On("VerifyToken", mock.Anything, strings.TrimPrefix(tt.authHeader, "Bearer ")).
					Return(tt.mockAccount, tt.mockErr).Once()
			}

			mw := middlewarectx.AuthMiddleware(gatewayMock, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			gatewayMock.AssertExpectations(t)
		})
	}
}

func TestAccountFromContext_Missing(t *testing.T) {
	account, ok := middlewarectx.AccountFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, account)
}
