package routes

import (
	"fireops/lageboard/internal/api"
	"fireops/lageboard/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers) {

	r.Route("/api/v1", func(v1 chi.Router) {

		// Read surfaces served from the latest poller snapshot
		v1.Get("/dashboard", handlers.DashboardHandler)
		v1.Get("/map", handlers.MapHandler)
		v1.Get("/overview", handlers.OverviewHandler)

		v1.Get("/operations", handlers.OperationsHandler)
		v1.Get("/locations", handlers.LocationsHandler)
		v1.Get("/vehicles/by-location", handlers.VehiclesByLocationHandler)
		v1.Get("/journal", handlers.JournalHandler)

		// Command routes forward to the operations API and are rate
		// limited per client IP
		v1.Group(func(cmd chi.Router) {
			cmd.Use(middleware.RateLimitMiddleware)

			cmd.Post("/operations", handlers.CreateOperationHandler)
			cmd.Put("/operations/{id}", handlers.UpdateOperationHandler)
			cmd.Post("/operations/{id}/close", handlers.CloseOperationHandler)

			cmd.Post("/assignments", handlers.CreateAssignmentHandler)
			cmd.Put("/assignments/{id}", handlers.UpdateAssignmentHandler)
			cmd.Post("/assignments/{id}/complete", handlers.CompleteAssignmentHandler)
			cmd.Post("/assignments/{id}/vehicles", handlers.AssignVehicleHandler)
			cmd.Delete("/assignments/{id}/vehicles/{vehicleID}", handlers.UnassignVehicleHandler)

			cmd.Post("/vehicles", handlers.CreateVehicleHandler)
			cmd.Put("/vehicles/{id}", handlers.UpdateVehicleHandler)
			cmd.Delete("/vehicles/{id}", handlers.DeleteVehicleHandler)

			cmd.Post("/locations", handlers.CreateLocationHandler)
			cmd.Put("/locations/{id}", handlers.UpdateLocationHandler)
			cmd.Delete("/locations/{id}", handlers.DeleteLocationHandler)

			cmd.Post("/journal", handlers.CreateJournalEntryHandler)
		})
	})
}
