// Package logout реализует HTTP-обработчик выхода пользователя.
//
// Выход выполняется всегда: даже без активной сессии клиенту ставится
// немедленно истекающая cookie, сбрасывающая состояние браузера.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/translatio/internal/http/response"
	"github.com/magabrotheeeer/translatio/internal/lib/authcookie"
	"github.com/magabrotheeeer/translatio/internal/lib/jwt"
	"github.com/magabrotheeeer/translatio/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, userID string) (string, error)
}

// Handler управляет HTTP-запросами на выход пользователей.
type Handler struct {
	log          *slog.Logger
	service      Service
	maker        jwt.Maker
	secureCookie bool
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, maker jwt.Maker, secureCookie bool) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		maker:        maker,
		secureCookie: secureCookie,
	}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Сбрасывает cookie сессии. Успешен и без активной сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Выход выполнен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/user/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Сессия может отсутствовать или быть просроченной — выход всё равно
	// выполняется, просто без записи в журнал действий.
	var userID string
	if cookie, err := r.Cookie(authcookie.Name); err == nil {
		if claims, err := h.maker.ParseToken(cookie.Value); err == nil {
			userID = claims.ID
		}
	}

	token, err := h.service.Logout(r.Context(), userID)
	if err != nil {
		log.Error("logout failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to log out"))
		return
	}

	http.SetCookie(w, authcookie.Expired(token, h.secureCookie))
	render.JSON(w, r, response.OK("user logged out successfully"))
}
