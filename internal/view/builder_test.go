package view

import (
	"testing"

	"fireops/lageboard/internal/models"
)

func TestPartitionByStatus_EveryAssignmentInExactlyOneGroup(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, Status: models.AssignmentOpen},
		{ID: 2, Status: models.AssignmentAssigned},
		{ID: 3, Status: models.AssignmentCompleted},
		{ID: 4, Status: models.AssignmentOpen},
		{ID: 5, Status: "weird"},
	}

	p := PartitionByStatus(assignments)

	total := len(p.Open) + len(p.Assigned) + len(p.Completed)
	if total != len(assignments) {
		t.Fatalf("expected %d assignments across groups, got %d", len(assignments), total)
	}

	// Unknown status lands in the open group
	foundUnknown := false
	for _, a := range p.Open {
		if a.ID == 5 {
			foundUnknown = true
		}
	}
	if !foundUnknown {
		t.Error("assignment with unknown status should land in the open group")
	}

	// Input order preserved within groups
	if p.Open[0].ID != 1 || p.Open[1].ID != 4 {
		t.Errorf("open group lost input order: got IDs %d, %d", p.Open[0].ID, p.Open[1].ID)
	}
}

func TestPartitionByStatus_Empty(t *testing.T) {
	p := PartitionByStatus(nil)
	if len(p.Open)+len(p.Assigned)+len(p.Completed) != 0 {
		t.Error("expected empty partition for nil input")
	}
}

func TestComputeStatistics_DeduplicatesVehiclesAcrossAssignments(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: 1, Callsign: "Florian 1", CrewCount: 9},
		{ID: 2, Callsign: "Florian 2", CrewCount: 6},
		{ID: 3, Callsign: "Florian 3", CrewCount: 3},
	}
	assignments := []models.Assignment{
		{ID: 1, Status: models.AssignmentAssigned, Vehicles: []string{"Florian 1", "Florian 2"}},
		{ID: 2, Status: models.AssignmentAssigned, Vehicles: []string{"Florian 1"}},
		{ID: 3, Status: models.AssignmentCompleted, Vehicles: []string{"Florian 3"}},
	}

	stats := ComputeStatistics(assignments, vehicles)

	if stats.AssignmentCount != 3 {
		t.Errorf("expected 3 assignments, got %d", stats.AssignmentCount)
	}
	// Florian 1 is on two assignments but counts once; Florian 3 is only on a
	// completed assignment and does not count at all.
	if stats.DeployedVehicleCount != 2 {
		t.Errorf("expected 2 deployed vehicles, got %d", stats.DeployedVehicleCount)
	}
	if stats.DeployedPersonnel != 15 {
		t.Errorf("expected 15 deployed personnel (9+6), got %d", stats.DeployedPersonnel)
	}
}

func TestComputeStatistics_UnknownCallsignCountsVehicleNotCrew(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, Status: models.AssignmentAssigned, Vehicles: []string{"Ghost 1"}},
	}

	stats := ComputeStatistics(assignments, nil)

	if stats.DeployedVehicleCount != 1 {
		t.Errorf("expected 1 deployed vehicle, got %d", stats.DeployedVehicleCount)
	}
	if stats.DeployedPersonnel != 0 {
		t.Errorf("expected 0 personnel for unknown callsign, got %d", stats.DeployedPersonnel)
	}
}

func TestGroupByDeployment_ActiveAssignmentsFirst(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: 1, Callsign: "Florian 1", LocationName: "Wache Nord"},
	}
	assignments := []models.Assignment{
		{ID: 1, Number: "EL-2024-001-001", Status: models.AssignmentCompleted, Vehicles: []string{"Florian 1"}},
		{ID: 2, Number: "EL-2024-001-002", Status: models.AssignmentAssigned, Vehicles: []string{"Florian 1"}},
	}

	grouped := GroupByDeployment(vehicles, assignments)

	if len(grouped.Deployed) != 1 {
		t.Fatalf("expected 1 deployed vehicle, got %d", len(grouped.Deployed))
	}
	got := grouped.Deployed[0].Assignments
	if len(got) != 2 {
		t.Fatalf("expected both assignments listed, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("expected active assignment before completed, got IDs %d, %d", got[0].ID, got[1].ID)
	}
}

func TestGroupByDeployment_AvailableGroupedByLocation(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: 1, Callsign: "Florian 1", LocationName: "Wache Nord"},
		{ID: 2, Callsign: "Florian 2", LocationName: "Wache Nord"},
		{ID: 3, Callsign: "Florian 3"},
		{ID: 4, Callsign: "Florian 4", LocationName: "Wache Süd"},
	}
	// Only a completed assignment references Florian 4, that still counts as
	// available.
	assignments := []models.Assignment{
		{ID: 1, Status: models.AssignmentCompleted, Vehicles: []string{"Florian 4"}},
	}

	grouped := GroupByDeployment(vehicles, assignments)

	if len(grouped.Deployed) != 0 {
		t.Fatalf("expected no deployed vehicles, got %d", len(grouped.Deployed))
	}
	if got := len(grouped.AvailableByLocation["Wache Nord"]); got != 2 {
		t.Errorf("expected 2 vehicles at Wache Nord, got %d", got)
	}
	if got := len(grouped.AvailableByLocation[NoLocationName]); got != 1 {
		t.Errorf("expected 1 vehicle without a station, got %d", got)
	}
	if got := len(grouped.AvailableByLocation["Wache Süd"]); got != 1 {
		t.Errorf("expected 1 vehicle at Wache Süd, got %d", got)
	}
}

func TestSequentialNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"EL-2024-003-007", "007"},
		{"EL-2024-003", "003"},
		{"NOPREFIX", "NOPREFIX"},
		{"", ""},
		{"trailing-", ""},
	}
	for _, c := range cases {
		if got := SequentialNumber(c.in); got != c.want {
			t.Errorf("SequentialNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
