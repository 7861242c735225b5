// Package storage отвечает за подключение к MongoDB и даёт доступ
// к коллекциям пользователей и подписок.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/magabrotheeeer/translatio/internal/config"
)

// Имена коллекций в базе данных.
const (
	UsersCollection         = "users"
	SubscriptionsCollection = "subscriptions"
)

// Storage хранит клиента MongoDB и коллекции сервиса.
type Storage struct {
	Client        *mongo.Client
	Users         *mongo.Collection
	Subscriptions *mongo.Collection
}

// New подключается к MongoDB с повторными попытками и проверкой ping,
// после чего создаёт индексы. Уникальный индекс по email закрывает гонку
// двойной регистрации, уникальный индекс по checkout_session_id — гонку
// двойной верификации одной checkout-сессии.
func New(ctx context.Context, cfg config.MongoConnection) (*Storage, error) {
	const op = "storage.New"

	var client *mongo.Client
	var err error
	for i := 0; i < cfg.RetryAttempts; i++ {
		client, err = mongo.Connect(
			options.Client().
				ApplyURI(cfg.MongoURL).
				SetConnectTimeout(cfg.MongoTimeout),
		)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				break
			}
		}
		time.Sleep(cfg.RetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db := client.Database(cfg.Database)
	s := &Storage{
		Client:        client,
		Users:         db.Collection(UsersCollection),
		Subscriptions: db.Collection(SubscriptionsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.Subscriptions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "checkout_session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Close разрывает соединение с базой.
func (s *Storage) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
