// Package buyplan реализует HTTP-обработчик покупки тарифа: создание
// hosted checkout-сессии у платёжного провайдера.
package buyplan

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

// Request — входные данные для покупки тарифа.
type Request struct {
	PriceID string `json:"price_id" validate:"required"`
}

// Service описывает интерфейс бизнес-логики покупки тарифа.
type Service interface {
	BuyPlan(ctx context.Context, userID, priceID string) (string, error)
}

// Handler управляет HTTP-запросами на покупку тарифа.
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
// @Summary Купить тариф
// @Description Проверяет тариф среди активных цен и создаёт checkout-сессию. Возвращает URL сессии.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор цены"
// @Success 200 {object} response.Response "URL checkout-сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Сбой платёжного провайдера"
// @Router /api/subscription/buyplan [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.buyplan"

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
	sessionURL, err := h.service.BuyPlan(r.Context(), userID, req.PriceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, services.ErrPlanNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(services.ErrPlanNotFound.Error()))
		case errors.Is(err, services.ErrUpstream):
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error(services.ErrUpstream.Error()))
		default:
			log.Error("failed to buy plan", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to buy plan"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData("checkout session created", map[string]string{
		"session_url": sessionURL,
	}))
}
