package geomap

import (
	"math"
	"testing"

	"fireops/lageboard/internal/models"
)

// fakeMapView records the calls the engine makes against the map capability.
type fakeMapView struct {
	added    []Marker
	removed  []string
	fitCalls int
	lastMin  Coordinate
	lastMax  Coordinate
	lastPad  int
}

func (f *fakeMapView) AddMarker(m Marker)      { f.added = append(f.added, m) }
func (f *fakeMapView) RemoveMarker(key string) { f.removed = append(f.removed, key) }
func (f *fakeMapView) FitBounds(min, max Coordinate, padding int) {
	f.fitCalls++
	f.lastMin, f.lastMax, f.lastPad = min, max, padding
}

func coords(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

func TestPlace_SkipsAssignmentsWithoutCoordinates(t *testing.T) {
	lat, lon := coords(48.137, 11.575)
	assignments := []models.Assignment{
		{ID: 1, Number: "EL-2024-001-001", Status: models.AssignmentOpen, Latitude: lat, Longitude: lon},
		{ID: 2, Number: "EL-2024-001-002", Status: models.AssignmentOpen},
	}

	engine := NewEngine(nil)
	engine.Place(assignments, nil)

	markers := engine.Markers()
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(markers))
	}
	if markers[0].Key != "assignment_1" {
		t.Errorf("expected assignment_1, got %s", markers[0].Key)
	}
	if markers[0].Label != "001" {
		t.Errorf("expected label 001, got %s", markers[0].Label)
	}
}

func TestPlace_SharedAnchorVehiclesGetDistinctOffsets(t *testing.T) {
	lat, lon := coords(48.137, 11.575)
	assignments := []models.Assignment{
		{ID: 1, Number: "EL-2024-001-001", Status: models.AssignmentAssigned,
			Latitude: lat, Longitude: lon,
			Vehicles: []string{"Florian 1", "Florian 2", "Florian 3"}},
	}
	vehicles := []models.Vehicle{
		{ID: 10, Callsign: "Florian 1"},
		{ID: 11, Callsign: "Florian 2"},
		{ID: 12, Callsign: "Florian 3"},
	}

	engine := NewEngine(nil)
	engine.Place(assignments, vehicles)

	anchor := Coordinate{Lat: *lat, Lon: *lon}
	seen := make(map[Coordinate]bool)
	vehicleCount := 0
	for _, m := range engine.Markers() {
		if m.Kind != KindVehicle {
			continue
		}
		vehicleCount++
		if seen[m.Position] {
			t.Errorf("vehicle marker %s overlaps another at %+v", m.Key, m.Position)
		}
		seen[m.Position] = true

		dLat := m.Position.Lat - anchor.Lat
		dLon := m.Position.Lon - anchor.Lon
		dist := math.Hypot(dLat, dLon)
		if math.Abs(dist-OffsetRadius) > 1e-9 {
			t.Errorf("vehicle marker %s is %.6f degrees from anchor, want %.6f", m.Key, dist, OffsetRadius)
		}
	}
	if vehicleCount != 3 {
		t.Fatalf("expected 3 vehicle markers, got %d", vehicleCount)
	}
}

func TestPlace_SingleVehicleSitsOnAnchor(t *testing.T) {
	lat, lon := coords(48.137, 11.575)
	assignments := []models.Assignment{
		{ID: 1, Number: "EL-2024-001-001", Status: models.AssignmentAssigned,
			Latitude: lat, Longitude: lon, Vehicles: []string{"Florian 1"}},
	}
	vehicles := []models.Vehicle{{ID: 10, Callsign: "Florian 1"}}

	engine := NewEngine(nil)
	engine.Place(assignments, vehicles)

	for _, m := range engine.Markers() {
		if m.Kind != KindVehicle {
			continue
		}
		if m.Position.Lat != *lat || m.Position.Lon != *lon {
			t.Errorf("single vehicle should sit on the anchor, got %+v", m.Position)
		}
	}
}

func TestPlace_AnchorIsFirstActiveAssignment(t *testing.T) {
	lat1, lon1 := coords(48.1, 11.5)
	lat2, lon2 := coords(48.2, 11.6)
	assignments := []models.Assignment{
		{ID: 1, Number: "EL-2024-001-001", Status: models.AssignmentCompleted,
			Latitude: lat1, Longitude: lon1, Vehicles: []string{"Florian 1"}},
		{ID: 2, Number: "EL-2024-001-002", Status: models.AssignmentAssigned,
			Latitude: lat2, Longitude: lon2, Vehicles: []string{"Florian 1"}},
	}
	vehicles := []models.Vehicle{{ID: 10, Callsign: "Florian 1"}}

	engine := NewEngine(nil)
	engine.Place(assignments, vehicles)

	found := false
	for _, m := range engine.Markers() {
		if m.Key != "vehicle_10" {
			continue
		}
		found = true
		if m.Position.Lat != *lat2 || m.Position.Lon != *lon2 {
			t.Errorf("vehicle anchored to completed assignment, got %+v", m.Position)
		}
	}
	if !found {
		t.Fatal("vehicle marker missing")
	}
}

func TestPlace_ClearsPreviousPass(t *testing.T) {
	lat, lon := coords(48.137, 11.575)
	view := &fakeMapView{}
	engine := NewEngine(view)

	first := []models.Assignment{
		{ID: 1, Number: "EL-2024-001-001", Status: models.AssignmentOpen, Latitude: lat, Longitude: lon},
		{ID: 2, Number: "EL-2024-001-002", Status: models.AssignmentOpen, Latitude: lat, Longitude: lon},
	}
	engine.Place(first, nil)

	second := []models.Assignment{
		{ID: 3, Number: "EL-2024-001-003", Status: models.AssignmentOpen, Latitude: lat, Longitude: lon},
	}
	engine.Place(second, nil)

	if len(view.removed) != 2 {
		t.Errorf("expected 2 markers removed between passes, got %d", len(view.removed))
	}
	markers := engine.Markers()
	if len(markers) != 1 || markers[0].Key != "assignment_3" {
		t.Errorf("registry not rebuilt: %+v", markers)
	}
}

func TestPlace_EmptyPassLeavesViewUnfitted(t *testing.T) {
	view := &fakeMapView{}
	engine := NewEngine(view)

	engine.Place(nil, nil)

	if view.fitCalls != 0 {
		t.Errorf("expected no FitBounds call for empty pass, got %d", view.fitCalls)
	}
	if _, _, ok := engine.Bounds(); ok {
		t.Error("expected no bounds for empty registry")
	}
}

func TestPlace_ConcurrentReadersNeverSeePartialPass(t *testing.T) {
	assignments := make([]models.Assignment, 40)
	for i := range assignments {
		lat, lon := coords(48.0+float64(i)*0.01, 11.0+float64(i)*0.01)
		assignments[i] = models.Assignment{
			ID:       i + 1,
			Number:   "EL-2024-001-001",
			Status:   models.AssignmentOpen,
			Latitude: lat, Longitude: lon,
		}
	}

	engine := NewEngine(nil)
	engine.Place(assignments, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			engine.Place(assignments, nil)
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		if n := len(engine.Markers()); n != len(assignments) {
			t.Fatalf("reader saw %d of %d markers mid-rebuild", n, len(assignments))
		}
		if _, _, ok := engine.Bounds(); !ok {
			t.Fatal("reader saw empty bounds mid-rebuild")
		}
	}
}

func TestPlace_FitBoundsCoversAllMarkers(t *testing.T) {
	lat1, lon1 := coords(48.1, 11.5)
	lat2, lon2 := coords(48.3, 11.2)
	view := &fakeMapView{}
	engine := NewEngine(view)

	assignments := []models.Assignment{
		{ID: 1, Number: "EL-2024-001-001", Status: models.AssignmentOpen, Latitude: lat1, Longitude: lon1},
		{ID: 2, Number: "EL-2024-001-002", Status: models.AssignmentOpen, Latitude: lat2, Longitude: lon2},
	}
	engine.Place(assignments, nil)

	if view.fitCalls != 1 {
		t.Fatalf("expected 1 FitBounds call, got %d", view.fitCalls)
	}
	if view.lastPad != BoundsPadding {
		t.Errorf("expected padding %d, got %d", BoundsPadding, view.lastPad)
	}
	if view.lastMin.Lat != 48.1 || view.lastMin.Lon != 11.2 {
		t.Errorf("wrong min corner: %+v", view.lastMin)
	}
	if view.lastMax.Lat != 48.3 || view.lastMax.Lon != 11.5 {
		t.Errorf("wrong max corner: %+v", view.lastMax)
	}
}
