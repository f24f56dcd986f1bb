// Package subscriptiontracker предоставляет маршруты для основного приложения.
package subscriptiontracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/intentionbatch"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/intentionclear"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/intentionset"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/selection"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/stats"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	subsservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, subscriptionService *subsservice.SubscriptionService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	selectionHandler := selection.New(logger, subscriptionService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/subscriptions", create.New(logger, subscriptionService).ServeHTTP)
		r.Get("/subscriptions/list", list.New(logger, subscriptionService).ServeHTTP)
		r.Get("/subscriptions/stats", stats.New(logger, subscriptionService).ServeHTTP)
		r.Get("/subscriptions/selection", selectionHandler.List)
		r.Delete("/subscriptions/selection", selectionHandler.Clear)
		r.Post("/subscriptions/intentions", intentionbatch.New(logger, subscriptionService).ServeHTTP)
		r.Get("/subscriptions/{id}", read.New(logger, subscriptionService).ServeHTTP)
		r.Put("/subscriptions/{id}", update.New(logger, subscriptionService).ServeHTTP)
		r.Delete("/subscriptions/{id}", remove.New(logger, subscriptionService).ServeHTTP)
		r.Post("/subscriptions/{id}/intention", intentionset.New(logger, subscriptionService).ServeHTTP)
		r.Delete("/subscriptions/{id}/intention", intentionclear.New(logger, subscriptionService).ServeHTTP)
		r.Post("/subscriptions/{id}/select", selectionHandler.Select)
		r.Delete("/subscriptions/{id}/select", selectionHandler.Deselect)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", health.New(logger).ServeHTTP)
}
