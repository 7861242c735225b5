// Package translatio собирает основное HTTP-приложение: подключения,
// сервисы, маршруты и graceful shutdown.
package translatio

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/translatio/internal/cache"
	"github.com/magabrotheeeer/translatio/internal/config"
	"github.com/magabrotheeeer/translatio/internal/imagestore"
	"github.com/magabrotheeeer/translatio/internal/lib/jwt"
	"github.com/magabrotheeeer/translatio/internal/llm"
	"github.com/magabrotheeeer/translatio/internal/paymentprovider"
	"github.com/magabrotheeeer/translatio/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/translatio/internal/services/auth"
	subservice "github.com/magabrotheeeer/translatio/internal/services/subscription"
	translatorservice "github.com/magabrotheeeer/translatio/internal/services/translator"
	userservice "github.com/magabrotheeeer/translatio/internal/services/user"
	"github.com/magabrotheeeer/translatio/internal/storage"
	"github.com/magabrotheeeer/translatio/internal/storage/repository"
)

// App — основное HTTP-приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	amqp   *amqp.Connection
}

// New создает приложение: подключается к MongoDB, redis и RabbitMQ,
// собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.MongoConnection)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetSubscriptionQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	repo := repository.New(db)
	maker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.StripeSecretKey)
	images := imagestore.NewClient(cfg.CloudName, cfg.CloudinaryAPIKey, cfg.CloudinarySecret)
	llmClient := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	publisher := rabbitmq.NewPublisher(ch)

	authService := authservice.NewAuthService(repo, maker, logger)
	userService := userservice.NewUserService(repo, repo, images, logger)
	subscriptionService := subservice.NewSubscriptionService(
		repo, repo, providerClient, cacheRedis, publisher,
		logger, cfg.FrontendURL, cfg.PricePageSize,
	)
	translatorService := translatorservice.NewTranslatorService(llmClient, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, maker,
		authService, userService, subscriptionService, translatorService,
		cfg.FrontendURL, cfg.TokenTTL, cfg.IsProduction())

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
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
		if closeErr := a.db.Close(timeoutCtx); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		if closeErr := a.amqp.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		return err
	}
}
