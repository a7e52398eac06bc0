package routes

import (
	"fmt"
	"net/http"
	"time"

	"fireops/lageboard/internal/api"
	"fireops/lageboard/internal/logging"
	"fireops/lageboard/internal/metrics"
	"fireops/lageboard/internal/middleware"
	"fireops/lageboard/internal/ui"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(deps *api.Dependencies, metricsReg *metrics.MetricsRegistry, upSince time.Time) (http.Handler, error) {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.Gateway, deps.Dashboard, upSince))

	handlers := api.NewHandlers(deps)

	RegisterAPIRoutes(r, handlers)

	uiHandlers, err := ui.NewHandlers(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to parse UI templates: %w", err)
	}
	RegisterUIRoutes(r, uiHandlers)

	return r, nil
}
