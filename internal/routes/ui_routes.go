package routes

import (
	"net/http"

	"fireops/lageboard/internal/ui"

	"github.com/go-chi/chi/v5"
)

// RegisterUIRoutes registers the server-rendered pages
func RegisterUIRoutes(r chi.Router, handlers *ui.Handlers) {

	// Default route - redirect to the dashboard
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusMovedPermanently)
	})

	r.Get("/dashboard", handlers.DashboardPage)
	r.Get("/map", handlers.MapPage)
}
