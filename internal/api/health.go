package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fireops/lageboard/internal/gateway"
	"fireops/lageboard/internal/models"
	"fireops/lageboard/internal/poller"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(client *gateway.Client, dashboard *poller.Poller, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]models.ServiceStatus)

		// Check the operations API
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		apiStatus := "ok"
		apiDetails := "Operations API reachable"
		if _, err := client.GetActiveOperation(ctx); err != nil {
			apiStatus = "down"
			apiDetails = err.Error()
		}
		services["operations_api"] = models.ServiceStatus{
			Status:  apiStatus,
			Details: apiDetails,
		}

		// Check snapshot freshness
		pollStatus := "ok"
		pollDetails := "Snapshot current"
		if dashboard.Snapshot() == nil {
			pollStatus = "down"
			pollDetails = "No snapshot published yet"
		} else if err := dashboard.LastError(); err != nil {
			pollStatus = "degraded"
			pollDetails = "Last tick failed: " + err.Error()
		}
		services["poller"] = models.ServiceStatus{
			Status:  pollStatus,
			Details: pollDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = svc.Status
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := models.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
