package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fireops/lageboard/internal/api"
	"fireops/lageboard/internal/config"
	"fireops/lageboard/internal/metrics"
)

func TestRegisterRoutes_AssemblesWithoutError(t *testing.T) {
	cfg := &config.Config{
		AppEnv:            "test",
		OpsAPIBaseURL:     "http://127.0.0.1:1",
		DashboardInterval: time.Second,
		MapInterval:       time.Second,
		RequestTimeout:    time.Second,
		LocationCacheTTL:  time.Minute,
	}
	deps := api.InitDependencies(cfg, nil)

	router, err := RegisterRoutes(deps, metrics.NewMetricsRegistry(), time.Now())
	if err != nil {
		t.Fatalf("route assembly failed: %v", err)
	}

	// The server-rendered dashboard works before any poll succeeded
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/dashboard", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /dashboard, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Keine aktive Einsatzlage") {
		t.Error("expected the no-operation page before the first poll")
	}

	// Root redirects to the dashboard
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect from /, got %d", rr.Code)
	}
}
