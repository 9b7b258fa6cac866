// Package dailypaper предоставляет маршруты для основного приложения.
package dailypaper

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/daily-paper/internal/http/handlers/auth/signup"
	customerget "github.com/magabrotheeeer/daily-paper/internal/http/handlers/customerinfo/get"
	customersave "github.com/magabrotheeeer/daily-paper/internal/http/handlers/customerinfo/save"
	"github.com/magabrotheeeer/daily-paper/internal/http/handlers/health"
	"github.com/magabrotheeeer/daily-paper/internal/http/handlers/news"
	subget "github.com/magabrotheeeer/daily-paper/internal/http/handlers/subscription/get"
	"github.com/magabrotheeeer/daily-paper/internal/http/handlers/subscription/subscribe"
	"github.com/magabrotheeeer/daily-paper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-paper/internal/identity"
	customerservice "github.com/magabrotheeeer/daily-paper/internal/services/customer"
	newsservice "github.com/magabrotheeeer/daily-paper/internal/services/news"
	subservice "github.com/magabrotheeeer/daily-paper/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, gateway *identity.Gateway, customerService *customerservice.Service, subscriptionService *subservice.Service, newsService *newsservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/signup", signup.New(logger, gateway).ServeHTTP)
		r.Get("/health", health.New().ServeHTTP)

		// Группа с проверкой токена провайдера
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(gateway, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Use(middlewarectx.MetricsMiddleware)
			r.Get("/customer-info", customerget.New(logger, customerService).ServeHTTP)
			r.Post("/customer-info", customersave.New(logger, customerService).ServeHTTP)
			r.Get("/subscription", subget.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscription", subscribe.New(logger, subscriptionService).ServeHTTP)
			r.Get("/news", news.New(logger, newsService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
