// Package chat реализует HTTP-обработчик чата с LLM.
package chat

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

// Request — входные данные для чата.
type Request struct {
	TextMessage string `json:"textmessage" validate:"required"`
	Language    string `json:"language" validate:"required"`
}

// Response — ответ прокси: текст модели либо сообщение об ошибке.
type Response struct {
	Data    *string `json:"data"`
	Message string  `json:"message"`
}

// Service описывает интерфейс бизнес-логики чата.
type Service interface {
	Chat(ctx context.Context, text, language string) (string, error)
}

// Handler управляет HTTP-запросами чата.
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
// @Summary Задать вопрос модели
// @Description Отвечает на сообщение пользователя на целевом языке через LLM.
// @Tags GenAI
// @Accept  json
// @Produce  json
// @Param request body Request true "Сообщение и целевой язык"
// @Success 200 {object} Response "Ответ модели"
// @Failure 400 {object} Response "Некорректный запрос"
// @Failure 502 {object} Response "Сбой LLM-провайдера"
// @Router /api/genai/chat [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genai.chat"

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
		render.JSON(w, r, Response{Message: "textmessage and language are required"})
		return
	}

	answer, err := h.service.Chat(r.Context(), req.TextMessage, req.Language)
	if err != nil {
		log.Error("chat request failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Response{Message: err.Error()})
		return
	}

	render.JSON(w, r, Response{
		Data:    &answer,
		Message: "Chat response generated",
	})
}
