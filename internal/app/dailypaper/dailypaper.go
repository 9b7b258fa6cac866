package dailypaper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/events"
	"github.com/magabrotheeeer/daily-paper/internal/identity"
	"github.com/magabrotheeeer/daily-paper/internal/kvstore"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	customerservice "github.com/magabrotheeeer/daily-paper/internal/services/customer"
	newsservice "github.com/magabrotheeeer/daily-paper/internal/services/news"
	subservice "github.com/magabrotheeeer/daily-paper/internal/services/subscription"
)

// App — собранный HTTP-сервис с его зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	store     *kvstore.Store
	publisher *events.Publisher
}

// New инициализирует зависимости и возвращает готовое к запуску приложение.
//
// Брокер событий необязателен: при недоступном RabbitMQ сервис
// поднимается без публикации событий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := kvstore.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var appPublisher *events.Publisher
	var subPublisher subservice.Publisher
	if cfg.RabbitMQ.URL != "" {
		publisher, err := events.NewPublisher(cfg.RabbitMQ)
		if err != nil {
			logger.Warn("event broker unavailable, continuing without events", sl.Err(err))
		} else {
			appPublisher = publisher
			subPublisher = publisher
		}
	}

	gateway := identity.New(cfg.IdentityProvider)

	customerService := customerservice.New(store, logger)
	subscriptionService := subservice.New(store, subPublisher, logger)
	newsService := newsservice.New(logger, cfg.NewsAPI)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, gateway, customerService, subscriptionService, newsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		store:     store,
		publisher: appPublisher,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.publisher != nil {
			_ = a.publisher.Close()
		}
		_ = a.store.Db.Close()
		return err
	}
}
