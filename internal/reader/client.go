package reader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// ErrNotFound возвращается клиентом при ответе сервера 404.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized возвращается клиентом при ответе сервера 401.
var ErrUnauthorized = errors.New("unauthorized")

// Client — типизированный REST-клиент сервера газеты.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// NewClient создает клиент сервера. Токен берется из сессии на каждый запрос.
func NewClient(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// apiError разбирает конверт ошибки сервера и переводит статусы
// в ошибки клиента.
func apiError(status int, body []byte) error {
	var envelope errorResponse
	msg := http.StatusText(status)
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		msg = envelope.Error
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	default:
		return errors.New(msg)
	}
}

// do выполняет запрос к серверу и декодирует ответ в result.
func (c *Client) do(ctx context.Context, method, path string, payload, result any) error {
	const op = "reader.Client.do"

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var raw bytes.Buffer
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp.StatusCode, raw.Bytes())
	}
	if result != nil {
		if err := json.Unmarshal(raw.Bytes(), result); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Signup регистрирует нового читателя через сервер.
func (c *Client) Signup(ctx context.Context, email, password, name string) (*models.Account, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}
	var result struct {
		User models.Account `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/signup", payload, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// GetCustomerInfo запрашивает данные доставки текущего читателя.
func (c *Client) GetCustomerInfo(ctx context.Context) (*models.CustomerInfo, error) {
	var info models.CustomerInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/customer-info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveCustomerInfo сохраняет данные доставки.
func (c *Client) SaveCustomerInfo(ctx context.Context, form models.DummyCustomerInfo) (*models.CustomerInfo, error) {
	var result struct {
		Success bool                `json:"success"`
		Data    models.CustomerInfo `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/customer-info", form, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// GetSubscription запрашивает текущую подписку.
func (c *Client) GetSubscription(ctx context.Context) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.do(ctx, http.MethodGet, "/api/v1/subscription", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Subscribe оформляет подписку выбранного тарифа.
func (c *Client) Subscribe(ctx context.Context, req models.DummySubscription) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.do(ctx, http.MethodPost, "/api/v1/subscription", req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// FetchNews запрашивает новостную ленту по источнику.
func (c *Client) FetchNews(ctx context.Context, source string) ([]models.NewsArticle, error) {
	var result struct {
		Articles []models.NewsArticle `json:"articles"`
	}
	path := "/api/v1/news?source=" + url.QueryEscape(source)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Articles, nil
}
