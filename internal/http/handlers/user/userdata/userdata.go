// Package userdata реализует HTTP-обработчик выдачи профиля пользователя
// вместе с данными его подписки.
package userdata

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/translatio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/translatio/internal/http/response"
	"github.com/magabrotheeeer/translatio/internal/lib/sl"
	services "github.com/magabrotheeeer/translatio/internal/services/user"
	"github.com/magabrotheeeer/translatio/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики выдачи профиля.
type Service interface {
	GetUserData(ctx context.Context, userID string) (*services.UserData, error)
}

// Handler управляет HTTP-запросами на чтение профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить данные пользователя
// @Description Возвращает документ пользователя (без пароля) вместе с данными его подписки.
// @Tags Users
// @Produce  json
// @Success 200 {object} response.Response "Данные пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/user/userdata [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.userdata"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.GetUserID(r.Context())
	data, err := h.service.GetUserData(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, repository.ErrNotFound) {
			log.Info("user not found", slog.String("user_id", userID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to fetch user data", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch user data"))
		return
	}

	render.JSON(w, r, response.OKWithData("user data fetched successfully", data))
}
