// Package customer содержит бизнес-логику работы с данными доставки читателя.
package customer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/daily-paper/internal/kvstore"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// storeKind — тип сущности в ключах хранилища.
const storeKind = "customer_info"

// ErrNotFound возвращается, когда у аккаунта ещё нет данных доставки.
var ErrNotFound = errors.New("customer info not found")

// Store описывает методы хранилища ключ-значение, нужные сервису.
type Store interface {
	// Get читает значение по ключу; false — ключ отсутствует.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set перезаписывает значение по ключу целиком.
	Set(ctx context.Context, key string, value any) error
}

// Service реализует чтение и сохранение данных доставки.
type Service struct {
	store Store
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
	}
}

// Get возвращает данные доставки аккаунта или ErrNotFound.
func (s *Service) Get(ctx context.Context, accountID string) (*models.CustomerInfo, error) {
	var info models.CustomerInfo
	found, err := s.store.Get(ctx, kvstore.Key(storeKind, accountID), &info)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &info, nil
}

// Save перезаписывает данные доставки аккаунта целиком и
// проставляет текущее время в UpdatedAt.
func (s *Service) Save(ctx context.Context, accountID string, req models.DummyCustomerInfo) (*models.CustomerInfo, error) {
	info := models.CustomerInfo{
		FullName:     req.FullName,
		Telephone:    req.Telephone,
		Address:      req.Address,
		PlotNumber:   req.PlotNumber,
		StreetNumber: req.StreetNumber,
		UserID:       accountID,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.store.Set(ctx, kvstore.Key(storeKind, accountID), info); err != nil {
		return nil, err
	}
	s.log.Info("customer info saved", slog.String("user_id", accountID))

	return &info, nil
}
