// Package repository реализует доступ к коллекциям MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/magabrotheeeer/translatio/internal/models"
	"github.com/magabrotheeeer/translatio/internal/storage"
)

// Ошибки уровня хранилища, на которые опирается бизнес-логика.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
	ErrInvalidID = errors.New("invalid object id")
)

// Repository выполняет операции над коллекциями users и subscriptions.
type Repository struct {
	users         *mongo.Collection
	subscriptions *mongo.Collection
}

// New создает Repository поверх подключённого Storage.
func New(s *storage.Storage) *Repository {
	return &Repository{
		users:         s.Users,
		subscriptions: s.Subscriptions,
	}
}

// CreateUser вставляет нового пользователя и возвращает его hex ObjectID.
// Дубликат email превращается в ErrDuplicate (уникальный индекс).
func (r *Repository) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "repository.CreateUser"

	res, err := r.users.InsertOne(ctx, user)
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

// GetUserByEmail возвращает пользователя по email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "repository.GetUserByEmail"

	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// GetUserByID возвращает пользователя по hex ObjectID.
func (r *Repository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	const op = "repository.GetUserByID"

	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	var user models.User
	err = r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// UpdateUserFields применяет частичное обновление ($set) к документу
// пользователя. Пустой набор полей — no-op.
func (r *Repository) UpdateUserFields(ctx context.Context, userID string, fields bson.M) error {
	const op = "repository.UpdateUserFields"

	if len(fields) == 0 {
		return nil
	}
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	fields["updated_at"] = time.Now().UTC()
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ApplySubscription привязывает подписку к пользователю и выставляет
// новую квоту: subscription_id, tries_used = 0, max_tries = quota.
// Операция идемпотентна, её можно безопасно применять повторно.
func (r *Repository) ApplySubscription(ctx context.Context, userID, subscriptionID string, maxTries int) error {
	const op = "repository.ApplySubscription"

	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	update := bson.M{"$set": bson.M{
		"subscription_id":  subscriptionID,
		"usage.tries_used": 0,
		"usage.max_tries":  maxTries,
		"updated_at":       time.Now().UTC(),
	}}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// PrependActivityLog добавляет запись журнала действий в начало списка.
func (r *Repository) PrependActivityLog(ctx context.Context, userID string, entry models.ActivityLog) error {
	const op = "repository.PrependActivityLog"

	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	update := bson.M{"$push": bson.M{
		"activity_log": bson.M{
			"$each":     []models.ActivityLog{entry},
			"$position": 0,
		},
	}}
	if _, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
