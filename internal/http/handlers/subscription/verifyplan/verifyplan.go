// Package verifyplan реализует HTTP-обработчик верификации оплаты:
// сверку checkout-сессии с провайдером и активацию подписки.
//
// Неоплаченная сессия — ожидаемый исход, а не сбой: клиент получает
// HTTP 200 с success:false и может повторить запрос позже.
package verifyplan

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
	services "github.com/magabrotheeeer/translatio/internal/services/subscription"
)

// Request — входные данные для верификации оплаты.
type Request struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Service описывает интерфейс бизнес-логики верификации.
type Service interface {
	VerifyPlan(ctx context.Context, userID, sessionID string) error
}

// Handler управляет HTTP-запросами на верификацию оплаты.
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
// @Summary Верифицировать оплату тарифа
// @Description Сверяет checkout-сессию с провайдером, сохраняет подписку и обновляет квоту. Идемпотентна по session_id.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор checkout-сессии"
// @Success 200 {object} response.Response "Результат верификации"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Верификация уже идёт"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Failure 502 {object} response.ErrorResponse "Сбой платёжного провайдера"
// @Router /api/subscription/verifyplan [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.verifyplan"

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
	if err := h.service.VerifyPlan(r.Context(), userID, req.SessionID); err != nil {
		switch {
		case errors.Is(err, services.ErrVerificationFailed):
			log.Info("payment not completed", slog.String("session_id", req.SessionID))
			render.JSON(w, r, response.Error(services.ErrVerificationFailed.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, services.ErrVerificationInProgress):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(services.ErrVerificationInProgress.Error()))
		case errors.Is(err, services.ErrUpstream):
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error(services.ErrUpstream.Error()))
		default:
			log.Error("verification failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to verify plan"))
		}
		return
	}

	render.JSON(w, r, response.OK("subscription verified successfully"))
}
