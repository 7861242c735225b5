// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает JSON-запрос с именем, email и паролем, валидирует их,
// создаёт пользователя через сервис и устанавливает http-only cookie сессии.
package register

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
	services "github.com/magabrotheeeer/translatio/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, name, email, password string) (string, string, error)
}

// Handler управляет HTTP-запросами на регистрацию пользователей.
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
// @Summary Зарегистрировать пользователя
// @Description Создает нового пользователя и устанавливает cookie сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/user/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	_, token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			log.Info("registration rejected, email taken", slog.String("email", req.Email))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(services.ErrEmailTaken.Error()))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	http.SetCookie(w, authcookie.New(token, h.cookieTTL, h.secureCookie))
	render.JSON(w, r, response.OK("user registered successfully"))
}
