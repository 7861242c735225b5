package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/magabrotheeeer/translatio/internal/models"
)

// CreateSubscription вставляет запись о подписке и возвращает её hex ObjectID.
// Повторная вставка той же checkout-сессии даёт ErrDuplicate
// (уникальный индекс по checkout_session_id).
func (r *Repository) CreateSubscription(ctx context.Context, plan models.SubscriptionPlan) (string, error) {
	const op = "repository.CreateSubscription"

	res, err := r.subscriptions.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected inserted id type", op)
	}
	return oid.Hex(), nil
}

// GetSubscriptionByID возвращает подписку по hex ObjectID.
func (r *Repository) GetSubscriptionByID(ctx context.Context, subscriptionID string) (*models.SubscriptionPlan, error) {
	const op = "repository.GetSubscriptionByID"

	oid, err := bson.ObjectIDFromHex(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	var plan models.SubscriptionPlan
	err = r.subscriptions.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, nil
}

// FindSubscriptionBySessionID ищет подписку по идентификатору
// checkout-сессии. Отсутствие записи — не ошибка: возвращается (nil, nil).
func (r *Repository) FindSubscriptionBySessionID(ctx context.Context, sessionID string) (*models.SubscriptionPlan, error) {
	const op = "repository.FindSubscriptionBySessionID"

	var plan models.SubscriptionPlan
	err := r.subscriptions.FindOne(ctx, bson.M{"checkout_session_id": sessionID}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, nil
}
