// Package middlewarectx содержит HTTP middleware: проверку cookie сессии,
// ограничение частоты запросов и метрики.
//
// JWTMiddleware читает токен сессии из http-only cookie, проверяет его
// подпись и срок действия и кладёт идентификатор пользователя в контекст
// запроса. В случае ошибки возвращает HTTP 401 Unauthorized.
package middlewarectx

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

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID — ключ для идентификатора пользователя в контексте.
const UserID Key = "user_id"

// GetUserID возвращает идентификатор пользователя из контекста запроса.
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserID).(string)
	return id
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен сессии в cookie.
//
// Если токен валиден, добавляет идентификатор пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(authcookie.Name)
			if err != nil {
				log.Error("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			claims, err := maker.ParseToken(cookie.Value)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired session"))
				return
			}
			ctx := context.WithValue(r.Context(), UserID, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
