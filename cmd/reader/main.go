package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/reader"
)

func main() {
	cfg := config.MustLoad()
	// Журнал клиента не должен перемешиваться с экранами на stdout.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg.Env == "local" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokens, err := reader.NewFileTokenStore(cfg.Reader.TokenPath)
	if err != nil {
		logger.Error("failed to initialize token store", slog.Any("err", err))
		os.Exit(1)
	}

	app := reader.New(logger, cfg.Reader, os.Stdin, os.Stdout, tokens)
	if err := app.Run(ctx); err != nil {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}
