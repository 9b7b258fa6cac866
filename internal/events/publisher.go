// Package events реализует публикацию и потребление событий об изменении
// подписок через RabbitMQ. Публикация необязательна: сервис подписок работает
// и без брокера, события в этом случае просто не отправляются.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// routingKeySubscriptionChanged — ключ маршрутизации событий о подписке.
const routingKeySubscriptionChanged = "subscription.changed"

// SubscriptionEvent — полезная нагрузка события об изменении подписки.
type SubscriptionEvent struct {
	UserID     string              `json:"userId"`
	Plan       string              `json:"plan"`
	Newspaper  *string             `json:"newspaper"`
	StartDate  time.Time           `json:"startDate"`
	OccurredAt time.Time           `json:"occurredAt"`
	Details    models.Subscription `json:"details"`
}

// Publisher публикует события в exchange RabbitMQ.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string
}

// NewPublisher подключается к брокеру и объявляет exchange и очередь.
func NewPublisher(cfg config.RabbitMQ) (*Publisher, error) {
	const op = "events.NewPublisher"

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := setupTopology(ch, cfg.Exchange, cfg.Queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: cfg.Exchange,
		queue:    cfg.Queue,
	}, nil
}

// setupTopology объявляет exchange, очередь и их связку.
func setupTopology(ch *amqp.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(queue, routingKeySubscriptionChanged, exchange, false, nil)
}

// SubscriptionChanged публикует событие об оформлении или смене подписки.
func (p *Publisher) SubscriptionChanged(_ context.Context, sub models.Subscription) error {
	const op = "events.SubscriptionChanged"

	event := SubscriptionEvent{
		UserID:     sub.UserID,
		Plan:       sub.Plan,
		Newspaper:  sub.Newspaper,
		StartDate:  sub.StartDate,
		OccurredAt: time.Now().UTC(),
		Details:    sub,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		routingKeySubscriptionChanged,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение с брокером.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
