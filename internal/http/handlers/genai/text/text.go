// Package text реализует HTTP-обработчик перевода текста.
package text

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/translatio/internal/lib/sl"
)

// Request — входные данные для перевода.
type Request struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language" validate:"required"`
}

// Response — ответ прокси: переведённый текст либо сообщение об ошибке.
type Response struct {
	Data    *string `json:"data"`
	Message string  `json:"message"`
}

// Service описывает интерфейс бизнес-логики перевода.
type Service interface {
	Translate(ctx context.Context, text, language string) (string, error)
}

// Handler управляет HTTP-запросами на перевод текста.
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
// @Summary Перевести текст
// @Description Переводит текст на целевой язык через LLM.
// @Tags GenAI
// @Accept  json
// @Produce  json
// @Param request body Request true "Текст и целевой язык"
// @Success 200 {object} Response "Переведённый текст"
// @Failure 400 {object} Response "Некорректный запрос"
// @Failure 502 {object} Response "Сбой LLM-провайдера"
// @Router /api/genai/text [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genai.text"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "invalid request body"})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "text and language are required"})
		return
	}

	translated, err := h.service.Translate(r.Context(), req.Text, req.Language)
	if err != nil {
		log.Error("translation failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Response{Message: err.Error()})
		return
	}

	render.JSON(w, r, Response{
		Data:    &translated,
		Message: "Translation successful",
	})
}
