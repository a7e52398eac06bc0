package ui

import (
	"html/template"
	"net/http"

	"fireops/lageboard/internal/api"
	"fireops/lageboard/internal/geomap"
	"fireops/lageboard/internal/logging"
	"fireops/lageboard/internal/models"
	"fireops/lageboard/internal/view"
)

// Handlers serves the server-rendered dashboard and map pages. Both pages
// read the latest poller snapshot and refresh themselves on the poll
// interval via a meta refresh header.
type Handlers struct {
	deps      *api.Dependencies
	dashboard *template.Template
	mapPage   *template.Template
}

func NewHandlers(deps *api.Dependencies) (*Handlers, error) {
	funcs := template.FuncMap{
		"seq": view.SequentialNumber,
	}

	dashboard, err := template.New("dashboard").Funcs(funcs).Parse(tmplBase + tmplDashboard)
	if err != nil {
		return nil, err
	}
	mapPage, err := template.New("map").Funcs(funcs).Parse(tmplBase + tmplMap)
	if err != nil {
		return nil, err
	}

	return &Handlers{deps: deps, dashboard: dashboard, mapPage: mapPage}, nil
}

type dashboardPage struct {
	RefreshSeconds int
	Stale          bool
	Operation      *models.Operation
	Statistics     view.Statistics
	Assignments    view.Partition
	Vehicles       view.Deployment
}

type mapPage struct {
	RefreshSeconds int
	Stale          bool
	Operation      *models.Operation
	Markers        []geomap.Marker
	Bounds         *mapBounds
}

type mapBounds struct {
	Min geomap.Coordinate
	Max geomap.Coordinate
}

func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Dashboard.Snapshot()

	page := dashboardPage{
		RefreshSeconds: int(h.deps.Config.DashboardInterval.Seconds()),
		Stale:          h.deps.Dashboard.LastError() != nil,
	}
	if snap.HasActiveOperation() {
		page.Operation = snap.Operation
		page.Statistics = view.ComputeStatistics(snap.Assignments, snap.Vehicles)
		page.Assignments = view.PartitionByStatus(snap.Assignments)
		page.Vehicles = view.GroupByDeployment(snap.Vehicles, snap.Assignments)
	}

	h.render(w, h.dashboard, page)
}

func (h *Handlers) MapPage(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Map.Snapshot()

	page := mapPage{
		RefreshSeconds: int(h.deps.Config.MapInterval.Seconds()),
		Stale:          h.deps.Map.LastError() != nil,
	}
	if snap.HasActiveOperation() {
		page.Operation = snap.Operation
		page.Markers = h.deps.Markers.Markers()
		if min, max, ok := h.deps.Markers.Bounds(); ok {
			page.Bounds = &mapBounds{Min: min, Max: max}
		}
	}

	h.render(w, h.mapPage, page)
}

func (h *Handlers) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		logging.Error("Failed to render page", "template", tmpl.Name(), "error", err)
	}
}
