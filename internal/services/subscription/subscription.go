// Package subscription содержит бизнес-логику оформления и чтения подписки на газеты.
package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/daily-paper/internal/kvstore"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// storeKind — тип сущности в ключах хранилища.
const storeKind = "subscription"

var (
	// ErrNotFound возвращается, когда у аккаунта ещё нет подписки.
	ErrNotFound = errors.New("no subscription found")
	// ErrUnknownPlan возвращается для плана вне каталога.
	ErrUnknownPlan = errors.New("invalid plan")
	// ErrNewspaperRequired возвращается для плана "daily" без выбранной газеты.
	ErrNewspaperRequired = errors.New("newspaper selection required for daily plan")
)

// Store описывает методы хранилища ключ-значение, нужные сервису.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Publisher описывает публикацию события об изменении подписки.
type Publisher interface {
	SubscriptionChanged(ctx context.Context, sub models.Subscription) error
}

// Service реализует оформление и чтение подписки.
// Publisher опционален: nil отключает события.
type Service struct {
	store     Store
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Get возвращает подписку аккаунта или ErrNotFound.
func (s *Service) Get(ctx context.Context, accountID string) (*models.Subscription, error) {
	var sub models.Subscription
	found, err := s.store.Get(ctx, kvstore.Key(storeKind, accountID), &sub)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &sub, nil
}

// Subscribe оформляет или заменяет подписку аккаунта.
//
// План обязан входить в каталог; для плана "daily" обязательна газета,
// для остальных планов газета игнорируется и хранится как null.
// Запись перезаписывается целиком со свежими StartDate и Active=true.
func (s *Service) Subscribe(ctx context.Context, accountID string, req models.DummySubscription) (*models.Subscription, error) {
	plan, ok := models.Plans[req.Plan]
	if !ok {
		return nil, ErrUnknownPlan
	}
	if req.Plan == "daily" && req.Newspaper == "" {
		return nil, ErrNewspaperRequired
	}

	var newspaper *string
	if req.Plan == "daily" {
		paper := req.Newspaper
		newspaper = &paper
	}

	sub := models.Subscription{
		UserID:    accountID,
		Plan:      req.Plan,
		PlanName:  plan.Name,
		PlanPrice: plan.Price,
		Newspaper: newspaper,
		StartDate: time.Now().UTC(),
		Active:    true,
	}

	if err := s.store.Set(ctx, kvstore.Key(storeKind, accountID), sub); err != nil {
		return nil, err
	}
	s.log.Info("subscription saved",
		slog.String("user_id", accountID),
		slog.String("plan", sub.Plan))

	if s.publisher != nil {
		if err := s.publisher.SubscriptionChanged(ctx, sub); err != nil {
			s.log.Warn("failed to publish subscription event", sl.Err(err))
		}
	}

	return &sub, nil
}
