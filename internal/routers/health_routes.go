package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/dhruvi159/Voxhire-Project/internal/handlers"
	"github.com/dhruvi159/Voxhire-Project/internal/metrics"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
	router.Method("GET", "/metrics", metrics.Handler())
}
