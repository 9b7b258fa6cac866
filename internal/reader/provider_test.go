package reader

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-paper/internal/identity/stub"
	"github.com/magabrotheeeer/daily-paper/internal/lib/jwt"
)

func newStubProvider(t *testing.T) *ProviderClient {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	provider := stub.New(logger, jwt.NewMaker("test-secret", time.Hour))
	srv := httptest.NewServer(provider.Router())
	t.Cleanup(srv.Close)
	return NewProviderClient(srv.URL)
}

func signUp(t *testing.T, client *ProviderClient) {
	t.Helper()
	body := `{"email":"reader@example.com","password":"secret1","user_metadata":{"name":"Reader"}}`
	resp, err := client.http.Post(client.baseURL+"/auth/v1/signup", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
}

func TestProviderClient_SignInAndCurrentUser(t *testing.T) {
	client := newStubProvider(t)
	ctx := context.Background()

	signUp(t, client)

	account, token, err := client.SignIn(ctx, "reader@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "reader@example.com", account.Email)
	assert.Equal(t, "Reader", account.Name)

	restored, err := client.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, restored.ID)
}

func TestProviderClient_SignIn_BadCredentials(t *testing.T) {
	client := newStubProvider(t)

	_, _, err := client.SignIn(context.Background(), "nobody@example.com", "wrong-pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid login credentials")
}

func TestProviderClient_CurrentUser_InvalidToken(t *testing.T) {
	client := newStubProvider(t)

	_, err := client.CurrentUser(context.Background(), "garbage")
	require.Error(t, err)
}
