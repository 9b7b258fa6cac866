package notifier

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/events"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
)

// App — потребитель событий о подписках.
//
// Пока подтверждения читателям не рассылаются, сервис журналирует
// каждое событие. Точка расширения для email и SMS уведомлений.
type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *slog.Logger
}

// New подключается к брокеру и объявляет топологию очереди событий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, ch, err := events.Connect(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}

	return &App{
		conn:   conn,
		ch:     ch,
		queue:  cfg.RabbitMQ.Queue,
		logger: logger,
	}, nil
}

// Run запускает потребителя и завершает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	err := events.ConsumeMessages(ctx, a.ch, a.queue, a.handleSubscriptionEvent)
	if err != nil {
		a.logger.Error("failed to start subscription events consumer", sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notifier service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}

func (a *App) handleSubscriptionEvent(body []byte) error {
	var event events.SubscriptionEvent
	if err := json.Unmarshal(body, &event); err != nil {
		a.logger.Error("failed to decode subscription event", sl.Err(err))
		return err
	}

	newspaper := "-"
	if event.Newspaper != nil {
		newspaper = *event.Newspaper
	}
	a.logger.Info("subscription changed",
		slog.String("user_id", event.UserID),
		slog.String("plan", event.Plan),
		slog.String("newspaper", newspaper),
		slog.Time("start_date", event.StartDate))
	return nil
}
