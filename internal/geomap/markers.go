// Package geomap computes marker placements for the map surface. The actual
// map is consumed as an opaque capability so no mapping library leaks into
// the placement algorithm.
package geomap

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"fireops/lageboard/internal/models"
	"fireops/lageboard/internal/view"
)

const (
	// OffsetRadius is the circle (in degrees, roughly 200m) on which vehicle
	// markers sharing one anchor are spread out.
	OffsetRadius = 0.002
	// OffsetStepDegrees is the angular step between vehicles on that circle.
	OffsetStepDegrees = 60.0
	// BoundsPadding is the margin, in pixels, requested when fitting the view.
	BoundsPadding = 50
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Marker is one placed map marker.
type Marker struct {
	Key      string     `json:"key"`
	Kind     string     `json:"kind"`
	Position Coordinate `json:"position"`
	Label    string     `json:"label"`
	Tooltip  string     `json:"tooltip"`
}

// Marker kinds
const (
	KindAssignment = "assignment"
	KindVehicle    = "vehicle"
)

// MapView is the capability surface a concrete map must offer. Pan, zoom and
// rendering details stay on the other side of this interface.
type MapView interface {
	AddMarker(m Marker)
	RemoveMarker(key string)
	FitBounds(min, max Coordinate, padding int)
}

// Engine places assignment and vehicle markers and keeps a registry of the
// current pass so the next one can clear it without leaking markers. One
// engine belongs to exactly one view instance.
type Engine struct {
	mapView MapView

	// mu guards placed: the poll goroutine rebuilds the registry while the
	// HTTP surface reads it.
	mu     sync.RWMutex
	placed map[string]Marker
}

// NewEngine creates a placement engine. mapView may be nil when only the
// computed placements are wanted (e.g. the JSON map surface).
func NewEngine(mapView MapView) *Engine {
	return &Engine{
		mapView: mapView,
		placed:  make(map[string]Marker),
	}
}

// Place runs a full placement pass: one marker per plottable assignment,
// deployed vehicles anchored to their first non-completed assignment, then a
// fit of the view to everything placed. The pass is built aside and swapped
// into the registry in one step, so a concurrent reader sees either the old
// pass or the new one, never a half-rebuilt registry. Assignments without
// usable coordinates are skipped silently, along with any vehicles anchored
// to them.
func (e *Engine) Place(assignments []models.Assignment, vehicles []models.Vehicle) {
	pass := make(map[string]Marker)
	var order []Marker
	place := func(m Marker) {
		pass[m.Key] = m
		order = append(order, m)
	}

	for i := range assignments {
		a := &assignments[i]
		if !a.HasCoordinates() {
			continue
		}
		place(assignmentMarker(a))
	}

	// Group deployed vehicles by their anchor assignment, preserving vehicle
	// list order within each group.
	anchorOrder := make([]int, 0)
	anchored := make(map[int][]models.Vehicle)
	anchors := make(map[int]*models.Assignment)
	for _, v := range vehicles {
		anchor := firstActiveAssignment(assignments, v.Callsign)
		if anchor == nil || !anchor.HasCoordinates() {
			continue
		}
		if _, seen := anchored[anchor.ID]; !seen {
			anchorOrder = append(anchorOrder, anchor.ID)
			anchors[anchor.ID] = anchor
		}
		anchored[anchor.ID] = append(anchored[anchor.ID], v)
	}

	for _, anchorID := range anchorOrder {
		anchor := anchors[anchorID]
		group := anchored[anchorID]
		for i, v := range group {
			pos := Coordinate{Lat: *anchor.Latitude, Lon: *anchor.Longitude}
			if len(group) > 1 {
				pos = offsetAround(pos, i)
			}
			place(vehicleMarker(&v, anchor, pos))
		}
	}

	e.commit(pass, order)
}

// Markers returns the current registry contents in a stable order.
func (e *Engine) Markers() []Marker {
	e.mu.RLock()
	defer e.mu.RUnlock()

	markers := make([]Marker, 0, len(e.placed))
	for _, m := range e.placed {
		markers = append(markers, m)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].Key < markers[j].Key })
	return markers
}

// Clear removes every marker from the previous pass.
func (e *Engine) Clear() {
	e.commit(make(map[string]Marker), nil)
}

// commit replaces the registry with the new pass under one lock acquisition,
// then replays the pass against the map view: previous markers removed, new
// ones added in placement order, bounds fitted.
func (e *Engine) commit(pass map[string]Marker, order []Marker) {
	e.mu.Lock()
	previous := e.placed
	e.placed = pass
	e.mu.Unlock()

	if e.mapView == nil {
		return
	}
	for key := range previous {
		e.mapView.RemoveMarker(key)
	}
	for _, m := range order {
		e.mapView.AddMarker(m)
	}
	if min, max, ok := e.Bounds(); ok {
		e.mapView.FitBounds(min, max, BoundsPadding)
	}
}

// Bounds returns the region covering every placed marker. ok is false when
// nothing is placed, in which case the view must stay unchanged.
func (e *Engine) Bounds() (min, max Coordinate, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.placed) == 0 {
		return Coordinate{}, Coordinate{}, false
	}
	first := true
	for _, m := range e.placed {
		if first {
			min, max = m.Position, m.Position
			first = false
			continue
		}
		min.Lat = math.Min(min.Lat, m.Position.Lat)
		min.Lon = math.Min(min.Lon, m.Position.Lon)
		max.Lat = math.Max(max.Lat, m.Position.Lat)
		max.Lon = math.Max(max.Lon, m.Position.Lon)
	}
	return min, max, true
}

// firstActiveAssignment returns the first non-completed assignment, in list
// order, referencing the given callsign. The order tie-break is deliberate:
// it mirrors the queue order the operations API maintains.
func firstActiveAssignment(assignments []models.Assignment, callsign string) *models.Assignment {
	for i := range assignments {
		a := &assignments[i]
		if a.Status == models.AssignmentCompleted {
			continue
		}
		for _, c := range a.Vehicles {
			if c == callsign {
				return a
			}
		}
	}
	return nil
}

// offsetAround places the i-th vehicle of a shared anchor on a fixed circle
// around it, 60 degrees apart in placement order.
func offsetAround(anchor Coordinate, i int) Coordinate {
	angle := float64(i) * OffsetStepDegrees * math.Pi / 180
	return Coordinate{
		Lat: anchor.Lat + OffsetRadius*math.Cos(angle),
		Lon: anchor.Lon + OffsetRadius*math.Sin(angle),
	}
}

func assignmentMarker(a *models.Assignment) Marker {
	var tooltip strings.Builder
	fmt.Fprintf(&tooltip, "%s\n%s", a.Number, a.Title)
	if a.LocationAddress != "" {
		fmt.Fprintf(&tooltip, "\n%s", a.LocationAddress)
	}
	fmt.Fprintf(&tooltip, "\nStatus: %s", a.Status)
	if len(a.Vehicles) > 0 {
		fmt.Fprintf(&tooltip, "\nFahrzeuge: %s", strings.Join(a.Vehicles, ", "))
	}

	return Marker{
		Key:      fmt.Sprintf("assignment_%d", a.ID),
		Kind:     KindAssignment,
		Position: Coordinate{Lat: *a.Latitude, Lon: *a.Longitude},
		Label:    view.SequentialNumber(a.Number),
		Tooltip:  tooltip.String(),
	}
}

func vehicleMarker(v *models.Vehicle, anchor *models.Assignment, pos Coordinate) Marker {
	tooltip := fmt.Sprintf("%s\nTyp: %s\nBesatzung: %d\nAuftrag: %s - %s",
		v.Callsign, v.VehicleType, v.CrewCount, anchor.Number, anchor.Title)

	return Marker{
		Key:      fmt.Sprintf("vehicle_%d", v.ID),
		Kind:     KindVehicle,
		Position: pos,
		Label:    v.Callsign,
		Tooltip:  tooltip,
	}
}
