// Package doc реализует HTTP-обработчик перевода текстового документа.
package doc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/translatio/internal/lib/sl"
)

// maxDocSize — предельный размер загружаемого документа (10 MB).
const maxDocSize = 10 << 20

// Response — JSON-ответ при ошибке; успешный ответ — сам переведённый файл.
type Response struct {
	Data    *string `json:"data"`
	Message string  `json:"message"`
}

// Service описывает интерфейс бизнес-логики перевода.
type Service interface {
	Translate(ctx context.Context, text, language string) (string, error)
}

// Handler управляет HTTP-запросами перевода документов.
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
// @Summary Перевести документ
// @Description Принимает multipart-форму с полями "file" (.txt или .doc, до 10 MB) и "language" и возвращает переведённый файл вложением.
// @Tags GenAI
// @Accept  mpfd
// @Produce  octet-stream
// @Param file formData file true "Документ для перевода"
// @Param language formData string true "Целевой язык"
// @Success 200 {file} binary "Переведённый документ"
// @Failure 400 {object} Response "Некорректный запрос"
// @Failure 502 {object} Response "Сбой LLM-провайдера"
// @Router /api/genai/doc [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.genai.doc"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxDocSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "invalid multipart form"})
		return
	}

	language := r.FormValue("language")
	if language == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "Target language not specified"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("failed to read uploaded file", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "File name not provided"})
		return
	}
	defer file.Close()

	if header.Size > maxDocSize {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "File too large"})
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext != ".txt" && ext != ".doc" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "Unsupported file type"})
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxDocSize))
	if err != nil {
		log.Error("failed to read file content", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "failed to read file content"})
		return
	}

	translated, err := h.service.Translate(r.Context(), string(content), language)
	if err != nil {
		log.Error("document translation failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Response{Message: err.Error()})
		return
	}

	outName := strings.TrimSuffix(header.Filename, ext) + "_translated_" + language + ext
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outName))
	if _, err := w.Write([]byte(translated)); err != nil {
		log.Error("failed to write translated document", sl.Err(err))
	}
}
