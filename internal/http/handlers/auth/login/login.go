// Package login реализует HTTP-обработчик входа пользователя.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/translatio/internal/http/response"
	"github.com/magabrotheeeer/translatio/internal/lib/authcookie"
	"github.com/magabrotheeeer/translatio/internal/lib/sl"
	"github.com/magabrotheeeer/translatio/internal/models"
	services "github.com/magabrotheeeer/translatio/internal/services/auth"
)

// Request — входные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// Handler управляет HTTP-запросами на вход пользователей.
type Handler struct {
	log          *slog.Logger
	service      Service
	validate     *validator.Validate
	cookieTTL    time.Duration
	secureCookie bool
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, cookieTTL time.Duration, secureCookie bool) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		validate:     validator.New(),
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

// ServeHTTP godoc
// @Summary Войти в систему
// @Description Проверяет email и пароль, устанавливает cookie сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Response "Вход выполнен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/user/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, _, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Info("login rejected")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error(services.ErrInvalidCredentials.Error()))
			return
		}
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to log in"))
		return
	}

	http.SetCookie(w, authcookie.New(token, h.cookieTTL, h.secureCookie))
	render.JSON(w, r, response.OK("user logged in successfully"))
}
