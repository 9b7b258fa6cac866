package reader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// ProviderClient — клиент провайдера учётных записей: выдача токена
// по паролю и отдача аккаунта по bearer-токену.
type ProviderClient struct {
	baseURL string
	http    *http.Client
}

// NewProviderClient создает клиент провайдера.
func NewProviderClient(baseURL string) *ProviderClient {
	return &ProviderClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type providerUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

func (u providerUser) account() *models.Account {
	return &models.Account{ID: u.ID, Email: u.Email, Name: u.UserMetadata.Name}
}

type providerErrorBody struct {
	Msg          string `json:"msg"`
	ErrorMessage string `json:"error_description"`
}

func providerError(body []byte) error {
	var perr providerErrorBody
	if err := json.Unmarshal(body, &perr); err == nil {
		if perr.Msg != "" {
			return errors.New(perr.Msg)
		}
		if perr.ErrorMessage != "" {
			return errors.New(perr.ErrorMessage)
		}
	}
	return errors.New("identity provider request failed")
}

// SignIn обменивает email и пароль на токен доступа.
func (p *ProviderClient) SignIn(ctx context.Context, email, password string) (*models.Account, string, error) {
	const op = "reader.ProviderClient.SignIn"

	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	url := p.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var raw bytes.Buffer
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", providerError(raw.Bytes())
	}

	var result struct {
		AccessToken string       `json:"access_token"`
		User        providerUser `json:"user"`
	}
	if err := json.Unmarshal(raw.Bytes(), &result); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return result.User.account(), result.AccessToken, nil
}

// CurrentUser возвращает аккаунт по токену. Используется для
// восстановления сессии при запуске приложения.
func (p *ProviderClient) CurrentUser(ctx context.Context, token string) (*models.Account, error) {
	const op = "reader.ProviderClient.CurrentUser"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var raw bytes.Buffer
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, providerError(raw.Bytes())
	}

	var user providerUser
	if err := json.Unmarshal(raw.Bytes(), &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user.account(), nil
}
