// Package kvstore реализует хранилище ключ-значение поверх redis.
//
// Все сущности системы лежат в одном плоском пространстве имён с ключами
// вида <kind>:<accountID>. Значения сериализуются в JSON. Записи не имеют
// срока жизни: это хранилище данных, а не кеш.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/daily-paper/internal/config"
)

// Store обёртка над клиентом redis с get/set-семантикой поверх JSON.
type Store struct {
	Db *redis.Client
}

// Key собирает ключ хранилища вида <kind>:<accountID>.
func Key(kind, accountID string) string {
	return fmt.Sprintf("%s:%s", kind, accountID)
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Store, error) {
	const op = "kvstore.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db}, nil
}

// Get читает значение по ключу и десериализует его в result.
// Возвращает false без ошибки, если ключ отсутствует.
func (s *Store) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "kvstore.Get"
	val, err := s.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сериализует значение в JSON и перезаписывает его по ключу.
// Запись бессрочная: перезапись целиком, последняя запись побеждает.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	const op = "kvstore.Set"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.Db.Set(ctx, key, jsonData, 0).Err()
}
