package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/translatio/internal/lib/jwt"
	"github.com/magabrotheeeer/translatio/internal/lib/password"
	"github.com/magabrotheeeer/translatio/internal/models"
	services "github.com/magabrotheeeer/translatio/internal/services/auth"
	"github.com/magabrotheeeer/translatio/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) PrependActivityLog(ctx context.Context, userID string, entry models.ActivityLog) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		userName   string
		email      string
		password   string
		setupMocks func(r *UserRepoMock)
		wantID     string
		wantErr    error
	}{
		{
			name:     "successful registration",
			userName: "Test User",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Username == "TEST USER" &&
						user.LoginType == models.LoginTypeEmail &&
						user.Usage.TriesUsed == 0 &&
						user.Usage.MaxTries == models.DefaultMaxTries &&
						user.PasswordHash != nil &&
						password.CompareHash(*user.PasswordHash, "password123") == nil
				})).Return("6650f0a1b2c3d4e5f6a7b8c9", nil)
			},
			wantID: "6650f0a1b2c3d4e5f6a7b8c9",
		},
		{
			name:     "duplicate email",
			userName: "Test User",
			email:    "taken@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return("", repository.ErrDuplicate)
			},
			wantErr: services.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			maker := customjwt.NewJWTMaker("test-secret", time.Hour)
			svc := services.NewAuthService(repo, maker, discardLogger())

			id, token, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.NotEmpty(t, token)
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        "test@example.com",
		PasswordHash: &hashed,
	}

	t.Run("successful login records activity", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil)
		repo.On("PrependActivityLog", mock.Anything, mock.Anything, mock.MatchedBy(func(entry models.ActivityLog) bool {
			return entry.Event == "Logged In"
		})).Return(nil)

		maker := customjwt.NewJWTMaker("test-secret", time.Hour)
		svc := services.NewAuthService(repo, maker, discardLogger())

		token, got, err := svc.Login(context.Background(), "test@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "test@example.com", got.Email)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil)

		maker := customjwt.NewJWTMaker("test-secret", time.Hour)
		svc := services.NewAuthService(repo, maker, discardLogger())

		_, _, err := svc.Login(context.Background(), "test@example.com", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to same error", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repository.ErrNotFound)

		maker := customjwt.NewJWTMaker("test-secret", time.Hour)
		svc := services.NewAuthService(repo, maker, discardLogger())

		_, _, err := svc.Login(context.Background(), "ghost@example.com", "password123")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("activity log failure does not block login", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil)
		repo.On("PrependActivityLog", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("storage down"))

		maker := customjwt.NewJWTMaker("test-secret", time.Hour)
		svc := services.NewAuthService(repo, maker, discardLogger())

		token, _, err := svc.Login(context.Background(), "test@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestAuthService_Logout(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("PrependActivityLog", mock.Anything, "6650f0a1b2c3d4e5f6a7b8c9", mock.MatchedBy(func(entry models.ActivityLog) bool {
		return entry.Event == "Logged Out"
	})).Return(nil)

	maker := customjwt.NewJWTMaker("test-secret", time.Hour)
	svc := services.NewAuthService(repo, maker, discardLogger())

	token, err := svc.Logout(context.Background(), "6650f0a1b2c3d4e5f6a7b8c9")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// токен выхода уже просрочен
	_, err = maker.ParseToken(token)
	assert.Error(t, err)
	repo.AssertExpectations(t)

	t.Run("storage failure still returns token", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("PrependActivityLog", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("storage down"))

		svc := services.NewAuthService(repo, maker, discardLogger())
		token, err := svc.Logout(context.Background(), "6650f0a1b2c3d4e5f6a7b8c9")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}
