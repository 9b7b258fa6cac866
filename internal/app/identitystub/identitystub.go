package identitystub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/identity/stub"
	"github.com/magabrotheeeer/daily-paper/internal/lib/jwt"
)

// App — локальный провайдер учётных записей для разработки.
type App struct {
	server *http.Server
	logger *slog.Logger
}

// New собирает сервер провайдера c хранением аккаунтов в памяти.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	jwtMaker := jwt.NewMaker(cfg.IdentityProvider.JWTSecret, cfg.IdentityProvider.TokenTTL)
	provider := stub.New(logger, jwtMaker)

	srv := &http.Server{
		Addr:         cfg.IdentityProvider.StubAddress,
		Handler:      provider.Router(),
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{server: srv, logger: logger}, nil
}

// Run запускает сервер провайдера и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("identity provider stub listening on", slog.String("address", a.server.Addr))
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
		a.logger.Info("shutting down identity provider stub gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
