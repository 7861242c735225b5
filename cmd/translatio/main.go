// Package main Translatio API
//
// @title           Translatio API
// @version         1.0
// @description     API для регистрации, профилей, подписок и AI-перевода

// @contact.name   API Support
// @contact.email  support@translatio.dev

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description JWT сессии в HttpOnly cookie "token".
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/magabrotheeeer/translatio/docs"
	"github.com/magabrotheeeer/translatio/internal/app/translatio"
	"github.com/magabrotheeeer/translatio/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting translatio", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := translatio.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("translatio stopped gracefully")
}
