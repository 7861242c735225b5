// Package services содержит логику бизнес-уровня для работы с профилем пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/magabrotheeeer/translatio/internal/lib/password"
	"github.com/magabrotheeeer/translatio/internal/lib/sl"
	"github.com/magabrotheeeer/translatio/internal/models"
	"github.com/magabrotheeeer/translatio/internal/storage/repository"
)

// Ошибки бизнес-уровня профиля.
var (
	// ErrUserNotFound — пользователь отсутствует в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword — текущий пароль не подошёл при смене пароля.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrPasswordPair — для смены пароля нужны оба поля: текущий и новый пароль.
	ErrPasswordPair = errors.New("both current and new password are required")
	// ErrTriesExceedQuota — tries_used нельзя поднять выше max_tries.
	ErrTriesExceedQuota = errors.New("tries_used cannot exceed max_tries")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByID возвращает пользователя по hex ObjectID.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateUserFields применяет частичное обновление ($set) к документу.
	UpdateUserFields(ctx context.Context, userID string, fields bson.M) error

	// PrependActivityLog добавляет запись журнала действий в начало списка.
	PrependActivityLog(ctx context.Context, userID string, entry models.ActivityLog) error
}

// SubscriptionRepository описывает чтение подписок для join-а в userdata.
type SubscriptionRepository interface {
	// GetSubscriptionByID возвращает подписку по hex ObjectID.
	GetSubscriptionByID(ctx context.Context, subscriptionID string) (*models.SubscriptionPlan, error)
}

// ImageStore описывает хранилище изображений профиля.
type ImageStore interface {
	// Upload загружает изображение (data-URL) и возвращает его URL.
	Upload(ctx context.Context, dataURL string) (string, error)
	// Destroy удаляет изображение по его URL.
	Destroy(ctx context.Context, imageURL string) error
}

// UserData — документ пользователя вместе с привязанной подпиской.
type UserData struct {
	User             *models.User             `json:"user"`
	SubscriptionData *models.SubscriptionPlan `json:"subscription_data,omitempty"`
}

// UpdateParams — частичное обновление профиля. Нулевые значения означают
// «поле не менять».
type UpdateParams struct {
	Name            string
	Email           string
	Username        string
	CurrentPassword string
	NewPassword     string
	ProfileImg      string // data-URL нового изображения
	TriesUsed       *int
	ActivityLogNum  int // код события журнала, 0 — не писать
}

// UserService отвечает за выдачу и обновление данных профиля.
type UserService struct {
	users         UserRepository
	subscriptions SubscriptionRepository
	images        ImageStore
	log           *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, subscriptions SubscriptionRepository, images ImageStore, log *slog.Logger) *UserService {
	return &UserService{
		users:         users,
		subscriptions: subscriptions,
		images:        images,
		log:           log,
	}
}

// GetUserData возвращает документ пользователя вместе с данными его подписки.
// Если subscription_id ссылается на отсутствующую подписку, это ошибка
// целостности и наружу уходит NotFound.
func (s *UserService) GetUserData(ctx context.Context, userID string) (*UserData, error) {
	const op = "services.user.GetUserData"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data := &UserData{User: user}
	if user.SubscriptionID != nil {
		sub, err := s.subscriptions.GetSubscriptionByID(ctx, *user.SubscriptionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
				return nil, fmt.Errorf("%s: linked subscription missing: %w", op, repository.ErrNotFound)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		data.SubscriptionData = sub
	}
	return data, nil
}

// UpdateUser применяет частичное обновление профиля. Смена пароля требует
// корректного текущего пароля. Старое изображение профиля удаляется только
// после успешной загрузки нового.
func (s *UserService) UpdateUser(ctx context.Context, userID string, params UpdateParams) error {
	const op = "services.user.UpdateUser"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	fields := bson.M{}
	if params.Name != "" {
		fields["name"] = params.Name
	}
	if params.Email != "" {
		fields["email"] = params.Email
	}
	if params.Username != "" {
		// в отличие от регистрации username здесь сохраняется как прислан
		fields["username"] = params.Username
	}

	if params.CurrentPassword != "" || params.NewPassword != "" {
		if params.CurrentPassword == "" || params.NewPassword == "" {
			return ErrPasswordPair
		}
		if user.PasswordHash == nil {
			return ErrWrongPassword
		}
		if err := password.CompareHash(*user.PasswordHash, params.CurrentPassword); err != nil {
			return ErrWrongPassword
		}
		hashed, err := password.GetHash(params.NewPassword)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		fields["password"] = hashed
	}

	if params.TriesUsed != nil {
		if *params.TriesUsed > user.Usage.MaxTries {
			return ErrTriesExceedQuota
		}
		fields["usage.tries_used"] = *params.TriesUsed
	}

	if params.ProfileImg != "" {
		url, err := s.images.Upload(ctx, params.ProfileImg)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if user.ProfileImg != nil && *user.ProfileImg != "" {
			if err := s.images.Destroy(ctx, *user.ProfileImg); err != nil {
				s.log.Warn("failed to destroy old profile image",
					slog.String("user_id", userID), sl.Err(err))
			}
		}
		fields["profileImg"] = url
	}

	if err := s.users.UpdateUserFields(ctx, userID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if params.ActivityLogNum != 0 {
		entry := models.NewActivityLog(params.ActivityLogNum, time.Now())
		if err := s.users.PrependActivityLog(ctx, userID, entry); err != nil {
			s.log.Warn("failed to record activity", slog.String("user_id", userID), sl.Err(err))
		}
	}
	return nil
}
