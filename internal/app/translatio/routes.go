package translatio

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/translatio/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/genai/chat"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/genai/doc"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/genai/text"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/health"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/subscription/buyplan"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/subscription/verifyplan"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/translatio/internal/http/handlers/user/userdata"
	"github.com/magabrotheeeer/translatio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/translatio/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/translatio/internal/services/auth"
	subservice "github.com/magabrotheeeer/translatio/internal/services/subscription"
	translatorservice "github.com/magabrotheeeer/translatio/internal/services/translator"
	userservice "github.com/magabrotheeeer/translatio/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	maker jwt.Maker,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	subscriptionService *subservice.SubscriptionService,
	translatorService *translatorservice.TranslatorService,
	frontendURL string,
	cookieTTL time.Duration,
	secureCookie bool,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/user/register", register.New(logger, authService, cookieTTL, secureCookie).ServeHTTP)
		r.Post("/user/login", login.New(logger, authService, cookieTTL, secureCookie).ServeHTTP)
		// Выход работает и без активной сессии
		r.Post("/user/logout", logout.New(logger, authService, maker, secureCookie).ServeHTTP)

		r.Post("/genai/text", text.New(logger, translatorService).ServeHTTP)
		r.Post("/genai/chat", chat.New(logger, translatorService).ServeHTTP)
		r.Post("/genai/doc", doc.New(logger, translatorService).ServeHTTP)

		// Группа с аутентификацией по cookie сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/user/userdata", userdata.New(logger, userService).ServeHTTP)
			r.Post("/user/updateuser", update.New(logger, userService).ServeHTTP)
			r.Post("/subscription/buyplan", buyplan.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscription/verifyplan", verifyplan.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
