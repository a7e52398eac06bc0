package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fireops/lageboard/internal/geomap"
	"fireops/lageboard/internal/logging"
	"fireops/lageboard/internal/models"
	"fireops/lageboard/internal/view"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// ============================================================================
// Read surfaces
// ============================================================================

// DashboardResponse bundles the derived views the dashboard surface renders.
type DashboardResponse struct {
	Active      bool              `json:"active"`
	Operation   *models.Operation `json:"operation,omitempty"`
	Statistics  *view.Statistics  `json:"statistics,omitempty"`
	Assignments *view.Partition   `json:"assignments,omitempty"`
	Vehicles    *view.Deployment  `json:"vehicles,omitempty"`
	LastUpdated time.Time         `json:"last_updated,omitempty"`
	Stale       bool              `json:"stale"`
}

// DashboardHandler serves the dashboard derived views from the current
// snapshot. It never touches the network; staleness is flagged when the last
// tick failed.
func (h *Handlers) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Dashboard.Snapshot()
	stale := h.deps.Dashboard.LastError() != nil

	if snap == nil || !snap.HasActiveOperation() {
		resp := DashboardResponse{Active: false, Stale: stale, LastUpdated: h.deps.Dashboard.LastTick()}
		respondWithSuccess(w, http.StatusOK, &resp)
		return
	}

	partition := view.PartitionByStatus(snap.Assignments)
	stats := view.ComputeStatistics(snap.Assignments, snap.Vehicles)
	deployment := view.GroupByDeployment(snap.Vehicles, snap.Assignments)

	resp := DashboardResponse{
		Active:      true,
		Operation:   snap.Operation,
		Statistics:  &stats,
		Assignments: &partition,
		Vehicles:    &deployment,
		LastUpdated: h.deps.Dashboard.LastTick(),
		Stale:       stale,
	}
	respondWithSuccess(w, http.StatusOK, &resp)
}

// MapResponse carries the marker placements for the map surface.
type MapResponse struct {
	Active    bool              `json:"active"`
	Operation *models.Operation `json:"operation,omitempty"`
	Markers   []geomap.Marker   `json:"markers"`
	Bounds    *MapBounds        `json:"bounds,omitempty"`
	Padding   int               `json:"padding"`
	Stale     bool              `json:"stale"`
}

// MapBounds is the fit-to region covering every placed marker.
type MapBounds struct {
	Min geomap.Coordinate `json:"min"`
	Max geomap.Coordinate `json:"max"`
}

// MapHandler serves the current marker placements.
func (h *Handlers) MapHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Map.Snapshot()
	resp := MapResponse{
		Markers: h.deps.Markers.Markers(),
		Padding: geomap.BoundsPadding,
		Stale:   h.deps.Map.LastError() != nil,
	}
	if snap.HasActiveOperation() {
		resp.Active = true
		resp.Operation = snap.Operation
	}
	if min, max, ok := h.deps.Markers.Bounds(); ok {
		resp.Bounds = &MapBounds{Min: min, Max: max}
	}
	respondWithSuccess(w, http.StatusOK, &resp)
}

// OverviewResponse is the main-list surface: the raw snapshot plus journal.
type OverviewResponse struct {
	Active      bool                  `json:"active"`
	Operation   *models.Operation     `json:"operation,omitempty"`
	Assignments []models.Assignment   `json:"assignments"`
	Vehicles    []models.Vehicle      `json:"vehicles"`
	Locations   []models.Location     `json:"locations"`
	Journal     []models.JournalEntry `json:"journal"`
	Stale       bool                  `json:"stale"`
}

// OverviewHandler serves the main app view: snapshot entities plus the
// operation journal (fetched live, it is append-only and cheap).
func (h *Handlers) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Dashboard.Snapshot()
	resp := OverviewResponse{Stale: h.deps.Dashboard.LastError() != nil}

	if snap.HasActiveOperation() {
		resp.Active = true
		resp.Operation = snap.Operation
		resp.Assignments = snap.Assignments
		resp.Vehicles = snap.Vehicles
		resp.Locations = snap.Locations

		journal, err := h.deps.Gateway.ListJournalEntries(r.Context(), snap.Operation.ID, 0)
		if err != nil {
			// The snapshot entities are still worth serving; an empty
			// journal plus a log line beats failing the whole surface.
			logging.Warn("Journal fetch failed for overview",
				"operation_id", snap.Operation.ID,
				"error", err.Error(),
			)
		} else {
			resp.Journal = journal
		}
	}
	respondWithSuccess(w, http.StatusOK, &resp)
}

// OperationsHandler lists operations, optionally filtered by status, for the
// history browser.
func (h *Handlers) OperationsHandler(w http.ResponseWriter, r *http.Request) {
	ops, err := h.deps.Gateway.ListOperations(r.Context())
	if err != nil {
		respondGatewayError(w, err)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := ops[:0]
		for _, op := range ops {
			if string(op.Status) == status {
				filtered = append(filtered, op)
			}
		}
		ops = filtered
	}

	respondWithSuccess(w, http.StatusOK, &ops)
}

// LocationsHandler lists locations through the TTL cache.
func (h *Handlers) LocationsHandler(w http.ResponseWriter, r *http.Request) {
	val, err := h.deps.Cache.GetOrSet("locations:all", h.deps.Config.LocationCacheTTL, func() (interface{}, error) {
		return h.deps.Gateway.ListLocations(r.Context())
	})
	if err != nil {
		respondGatewayError(w, err)
		return
	}

	locations := val.([]models.Location)
	respondWithSuccess(w, http.StatusOK, &locations)
}

// VehiclesByLocationHandler proxies the grouped vehicle listing.
func (h *Handlers) VehiclesByLocationHandler(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.deps.Gateway.ListVehiclesByLocation(r.Context())
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	respondWithSuccess(w, http.StatusOK, &grouped)
}

// JournalHandler lists journal entries with optional operation and assignment
// filters.
func (h *Handlers) JournalHandler(w http.ResponseWriter, r *http.Request) {
	operationID, _ := strconv.Atoi(r.URL.Query().Get("operation_id"))
	assignmentID, _ := strconv.Atoi(r.URL.Query().Get("assignment_id"))

	entries, err := h.deps.Gateway.ListJournalEntries(r.Context(), operationID, assignmentID)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	respondWithSuccess(w, http.StatusOK, &entries)
}

// ============================================================================
// Operation commands
// ============================================================================

func (h *Handlers) CreateOperationHandler(w http.ResponseWriter, r *http.Request) {
	var req models.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	op, err := h.deps.Gateway.CreateOperation(r.Context(), &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusCreated, op)
}

func (h *Handlers) UpdateOperationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	op, err := h.deps.Gateway.UpdateOperation(r.Context(), id, &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusOK, op)
}

func (h *Handlers) CloseOperationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	op, err := h.deps.Gateway.CloseOperation(r.Context(), id)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusOK, op)
}

// ============================================================================
// Assignment commands
// ============================================================================

func (h *Handlers) CreateAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	a, err := h.deps.Gateway.CreateAssignment(r.Context(), &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusCreated, a)
}

func (h *Handlers) UpdateAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.deps.Gateway.UpdateAssignment(r.Context(), id, &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusOK, a)
}

func (h *Handlers) CompleteAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	a, err := h.deps.Gateway.CompleteAssignment(r.Context(), id)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusOK, a)
}

// AssignVehicleHandler attaches a vehicle to an assignment. This is the
// structured replacement for the old prompt-driven flow: explicit ids, no
// free-text lookup.
func (h *Handlers) AssignVehicleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.AssignVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VehicleID <= 0 {
		respondWithError(w, http.StatusBadRequest, "vehicle_id is required")
		return
	}

	a, err := h.deps.Gateway.AssignVehicle(r.Context(), id, req.VehicleID)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusOK, a)
}

func (h *Handlers) UnassignVehicleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}
	vehicleID, ok := urlParamInt(w, r, "vehicleID")
	if !ok {
		return
	}

	a, err := h.deps.Gateway.UnassignVehicle(r.Context(), id, vehicleID)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusOK, a)
}

// ============================================================================
// Vehicle commands
// ============================================================================

func (h *Handlers) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var req models.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Callsign == "" {
		respondWithError(w, http.StatusBadRequest, "callsign is required")
		return
	}

	v, err := h.deps.Gateway.CreateVehicle(r.Context(), &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusCreated, v)
}

func (h *Handlers) UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.deps.Gateway.UpdateVehicle(r.Context(), id, &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	respondWithSuccess(w, http.StatusOK, v)
}

func (h *Handlers) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.deps.Gateway.DeleteVehicle(r.Context(), id); err != nil {
		respondGatewayError(w, err)
		return
	}
	h.refreshSoon(r)
	msg := "vehicle deleted"
	respondWithSuccess(w, http.StatusOK, &msg)
}

// ============================================================================
// Location commands
// ============================================================================

func (h *Handlers) CreateLocationHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	l, err := h.deps.Gateway.CreateLocation(r.Context(), &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.deps.Cache.Delete("locations:all")
	respondWithSuccess(w, http.StatusCreated, l)
}

func (h *Handlers) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.deps.Gateway.UpdateLocation(r.Context(), id, &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	h.deps.Cache.Delete("locations:all")
	respondWithSuccess(w, http.StatusOK, l)
}

func (h *Handlers) DeleteLocationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.deps.Gateway.DeleteLocation(r.Context(), id); err != nil {
		respondGatewayError(w, err)
		return
	}
	h.deps.Cache.Delete("locations:all")
	msg := "location deleted"
	respondWithSuccess(w, http.StatusOK, &msg)
}

// ============================================================================
// Journal commands
// ============================================================================

func (h *Handlers) CreateJournalEntryHandler(w http.ResponseWriter, r *http.Request) {
	var req models.JournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" || req.OperationID <= 0 {
		respondWithError(w, http.StatusBadRequest, "operation_id and content are required")
		return
	}

	e, err := h.deps.Gateway.CreateJournalEntry(r.Context(), &req)
	if err != nil {
		respondGatewayError(w, err)
		return
	}
	respondWithSuccess(w, http.StatusCreated, e)
}

// ============================================================================
// Helpers
// ============================================================================

// refreshSoon refreshes the dashboard snapshot after a successful command so
// the operator sees their change before the next scheduled tick. Best-effort:
// the regular interval covers any failure.
func (h *Handlers) refreshSoon(r *http.Request) {
	_ = h.deps.Dashboard.Refresh(r.Context())
}

func urlParamInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	val, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || val <= 0 {
		respondWithError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return val, true
}
