package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fireops/lageboard/internal/api"
	"fireops/lageboard/internal/config"
	"fireops/lageboard/internal/logging"
	"fireops/lageboard/internal/metrics"
	"fireops/lageboard/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Lageboard starting up",
		"environment", cfg.AppEnv,
		"ops_api", cfg.OpsAPIBaseURL,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	metricsReg := metrics.NewMetricsRegistry()

	deps := api.InitDependencies(cfg, metricsReg)

	// Start the pollers; each keeps its own snapshot fresh until shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps.Dashboard.Start(ctx)
	deps.Map.Start(ctx)
	logging.Info("Pollers started",
		"dashboard_interval", cfg.DashboardInterval.String(),
		"map_interval", cfg.MapInterval.String(),
	)

	upSince := time.Now()

	router, err := routes.RegisterRoutes(deps, metricsReg, upSince)
	if err != nil {
		logging.Fatal("Failed to initialize routes", "error", err.Error())
	}

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		logging.Info("Shutdown signal received, stopping")
		deps.Dashboard.Stop()
		deps.Map.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server shutdown failed", "error", err.Error())
		}
	}()

	logging.Info("Server starting",
		"addr", cfg.ListenAddr,
		"environment", cfg.AppEnv,
	)

	log.Println("Starting server on " + cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server error: %v", err)
	}
	logging.Info("Server stopped")
}
