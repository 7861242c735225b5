// Package provisioner собирает воркера событий подписок: повторную
// привязку подписок и отправку писем-подтверждений.
package provisioner

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/translatio/internal/config"
	"github.com/magabrotheeeer/translatio/internal/lib/smtp"
	"github.com/magabrotheeeer/translatio/internal/rabbitmq"
	provisionerservice "github.com/magabrotheeeer/translatio/internal/services/provisioner"
	"github.com/magabrotheeeer/translatio/internal/storage"
	"github.com/magabrotheeeer/translatio/internal/storage/repository"
)

// App — воркер событий подписок.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	service *provisionerservice.ProvisionerService
	db      *storage.Storage
	logger  *slog.Logger
}

// New создает воркера: подключается к MongoDB и RabbitMQ.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.MongoConnection)
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

	transport := smtp.NewTransport(cfg, logger)
	service := provisionerservice.NewProvisionerService(repository.New(db), transport, logger)

	return &App{
		conn:    conn,
		ch:      ch,
		service: service,
		db:      db,
		logger:  logger,
	}, nil
}

// Run подписывается на очереди и работает до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.QueueProvision, a.service.HandleProvision)
	if err != nil {
		a.logger.Error("failed to start provision consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.QueueActivated, a.service.HandleActivated)
	if err != nil {
		a.logger.Error("failed to start activated consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("provisioner shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	if err := a.db.Close(context.Background()); err != nil {
		a.logger.Error("failed to close storage", slog.Any("err", err))
	}
	return nil
}
