// Package identity реализует шлюз к провайдеру учётных записей.
//
// Система не хранит учётные данные сама: проверка токена и создание аккаунта
// делегируются внешнему провайдеру. Шлюз поддерживает два пути проверки
// bearer-токена: локальную проверку подписи HS256 (если с провайдером
// разделён JWT-секрет) и сетевой вызов эндпоинта провайдера /auth/v1/user.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/lib/jwt"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// ErrUnauthorized возвращается, когда токен отсутствует, повреждён или истёк.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError — отказ провайдера создать аккаунт (занятый email,
// нарушение парольной политики). Сообщение провайдера доносится до клиента.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Gateway — клиент провайдера учётных записей.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	jwtMaker   jwt.Maker // nil, если общий секрет не настроен
}

// New создает Gateway из конфигурации. Если задан JWTSecret,
// токены проверяются локально без обращения к провайдеру.
func New(cfg config.IdentityProvider) *Gateway {
	var maker jwt.Maker
	if cfg.JWTSecret != "" {
		maker = jwt.NewMaker(cfg.JWTSecret, cfg.TokenTTL)
	}
	return &Gateway{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		jwtMaker:   maker,
	}
}

// providerUser — представление аккаунта в ответах провайдера.
type providerUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

func (u providerUser) toAccount() *models.Account {
	return &models.Account{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.UserMetadata.Name,
	}
}

// providerError — тело ошибки провайдера; разные версии используют разные ключи.
type providerError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e providerError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	default:
		return "identity provider rejected the request"
	}
}

// VerifyToken проверяет bearer-токен и возвращает аккаунт его владельца.
// Любой дефект токена сворачивается в ErrUnauthorized.
func (g *Gateway) VerifyToken(ctx context.Context, token string) (*models.Account, error) {
	const op = "identity.VerifyToken"
	if token == "" {
		return nil, ErrUnauthorized
	}

	if g.jwtMaker != nil {
		claims, err := g.jwtMaker.ParseToken(token)
		if err != nil || claims.Subject == "" {
			return nil, ErrUnauthorized
		}
		return &models.Account{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
		}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthorized
	}

	var user providerUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.ID == "" {
		return nil, ErrUnauthorized
	}
	return user.toAccount(), nil
}

// CreateAccount регистрирует новый аккаунт у провайдера.
// Email подтверждается сразу: почтовый сервер в системе не настроен.
func (g *Gateway) CreateAccount(ctx context.Context, email, password, name string) (*models.Account, error) {
	const op = "identity.CreateAccount"

	body, err := json.Marshal(map[string]any{
		"email":         email,
		"password":      password,
		"user_metadata": map[string]string{"name": name},
		"email_confirm": true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/auth/v1/admin/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.serviceKey)
	req.Header.Set("apikey", g.serviceKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
		var perr providerError
		_ = json.Unmarshal(raw, &perr)
		return nil, &ValidationError{Message: perr.text()}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var user providerUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user.toAccount(), nil
}
