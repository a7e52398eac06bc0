package api

import (
	"fireops/lageboard/internal/cache"
	"fireops/lageboard/internal/config"
	"fireops/lageboard/internal/gateway"
	"fireops/lageboard/internal/geomap"
	"fireops/lageboard/internal/metrics"
	"fireops/lageboard/internal/models"
	"fireops/lageboard/internal/poller"
)

// Dependencies wires the gateway, the per-surface pollers, the marker engine
// and the cache together for the handlers.
type Dependencies struct {
	Config    *config.Config
	Gateway   *gateway.Client
	Cache     *cache.Service
	Metrics   *metrics.MetricsRegistry
	Dashboard *poller.Poller
	Map       *poller.Poller
	Markers   *geomap.Engine
}

// InitDependencies builds the dependency graph. The pollers are created but
// not started; the caller owns their lifecycle.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) *Dependencies {
	client := gateway.NewClient(cfg.OpsAPIBaseURL, cfg.OpsAPIKey, cfg.RequestTimeout)
	client.Metrics = metricsReg
	cacheSvc := cache.NewService(cfg.LocationCacheTTL, 10*cfg.LocationCacheTTL, metricsReg)

	markers := geomap.NewEngine(nil)

	dashboard := poller.New(client, poller.Options{
		View:             "dashboard",
		Interval:         cfg.DashboardInterval,
		IncludeLocations: true,
		Metrics:          metricsReg,
	})

	mapPoller := poller.New(client, poller.Options{
		View:     "map",
		Interval: cfg.MapInterval,
		Metrics:  metricsReg,
		OnSnapshot: func(snap *models.Snapshot) {
			markers.Place(snap.Assignments, snap.Vehicles)
			if metricsReg != nil {
				counts := map[string]int{geomap.KindAssignment: 0, geomap.KindVehicle: 0}
				for _, m := range markers.Markers() {
					counts[m.Kind]++
				}
				for kind, n := range counts {
					metricsReg.MarkersPlaced.WithLabelValues("map", kind).Set(float64(n))
				}
			}
		},
	})

	return &Dependencies{
		Config:    cfg,
		Gateway:   client,
		Cache:     cacheSvc,
		Metrics:   metricsReg,
		Dashboard: dashboard,
		Map:       mapPoller,
		Markers:   markers,
	}
}
