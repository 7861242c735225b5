// Package services содержит логику бизнес-уровня для регистрации и аутентификации.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/translatio/internal/lib/jwt"
	"github.com/magabrotheeeer/translatio/internal/lib/password"
	"github.com/magabrotheeeer/translatio/internal/lib/sl"
	"github.com/magabrotheeeer/translatio/internal/models"
	"github.com/magabrotheeeer/translatio/internal/storage/repository"
)

// Ошибки бизнес-уровня аутентификации.
var (
	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials — email или пароль не подходят. Сообщение едино
	// для обоих случаев, чтобы не раскрывать существование аккаунта.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// PrependActivityLog добавляет запись журнала действий в начало списка.
	PrependActivityLog(ctx context.Context, userID string, entry models.ActivityLog) error
}

// AuthService отвечает за регистрацию, вход и выход пользователей.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и стартовой
// квотой и сразу выдаёт JWT сессии. Username — имя пользователя в верхнем
// регистре.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, string, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	now := time.Now().UTC()
	user := models.User{
		Name:         name,
		Email:        email,
		Username:     strings.ToUpper(name),
		PasswordHash: &hashed,
		LoginType:    models.LoginTypeEmail,
		Usage: models.Usage{
			TriesUsed: 0,
			MaxTries:  models.DefaultMaxTries,
		},
		ActivityLog:    []models.ActivityLog{},
		BillingHistory: []models.BillingHistory{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	userID, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", "", ErrEmailTaken
		}
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.jwtMaker.GenerateToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return userID, token, nil
}

// Login проверяет пароль пользователя, выдаёт JWT сессии и пишет
// запись "Logged In" в журнал действий.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.PasswordHash == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(*user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	userID := user.ID.Hex()
	token, err := s.jwtMaker.GenerateToken(userID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	entry := models.NewActivityLog(models.ActivityLoggedIn, time.Now())
	if err := s.users.PrependActivityLog(ctx, userID, entry); err != nil {
		s.log.Warn("failed to record login activity", slog.String("user_id", userID), sl.Err(err))
	}
	return token, user, nil
}

// Logout выдаёт просроченный токен для немедленного сброса cookie сессии
// и пишет запись "Logged Out" в журнал действий. Выход успешен даже при
// недоступном хранилище и при отсутствии активной сессии (пустой userID).
func (s *AuthService) Logout(ctx context.Context, userID string) (string, error) {
	const op = "services.auth.Logout"

	token, err := s.jwtMaker.GenerateExpiredToken(userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if userID != "" {
		entry := models.NewActivityLog(models.ActivityLoggedOut, time.Now())
		if err := s.users.PrependActivityLog(ctx, userID, entry); err != nil {
			s.log.Warn("failed to record logout activity", slog.String("user_id", userID), sl.Err(err))
		}
	}
	return token, nil
}
