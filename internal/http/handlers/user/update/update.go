// Package update реализует HTTP-обработчик частичного обновления профиля.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/translatio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/translatio/internal/http/response"
	"github.com/magabrotheeeer/translatio/internal/lib/sl"
	services "github.com/magabrotheeeer/translatio/internal/services/user"
)

// Request — частичное обновление профиля. Отсутствующие поля не меняются.
type Request struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Username        string `json:"username,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
	ProfileImg      string `json:"profileImg,omitempty"`
	TriesUsed       *int   `json:"tries_used,omitempty" validate:"omitempty,min=0"`
	ActivityLogNum  int    `json:"activity_log_num,omitempty"`
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateUser(ctx context.Context, userID string, params services.UpdateParams) error
}

// Handler управляет HTTP-запросами на обновление профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить профиль пользователя
// @Description Применяет частичное обновление профиля. Смена пароля требует текущего пароля.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Профиль обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Неверный текущий пароль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/user/updateuser [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

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

	userID := middlewarectx.GetUserID(r.Context())
	err := h.service.UpdateUser(r.Context(), userID, services.UpdateParams{
		Name:            req.Name,
		Email:           req.Email,
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImg:      req.ProfileImg,
		TriesUsed:       req.TriesUsed,
		ActivityLogNum:  req.ActivityLogNum,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, services.ErrWrongPassword):
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error(services.ErrWrongPassword.Error()))
		case errors.Is(err, services.ErrPasswordPair):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(services.ErrPasswordPair.Error()))
		case errors.Is(err, services.ErrTriesExceedQuota):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(services.ErrTriesExceedQuota.Error()))
		default:
			log.Error("failed to update user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update user"))
		}
		return
	}

	render.JSON(w, r, response.OK("user updated successfully"))
}
