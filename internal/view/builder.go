// Package view derives render-ready structures from a raw snapshot. Every
// function here is pure and deterministic so the surfaces (dashboard, map,
// main list) can share them and tests need neither network nor server.
package view

import (
	"strings"

	"fireops/lageboard/internal/models"
)

// NoLocationName is the bucket for available vehicles without a station,
// matching the grouping the operations API itself uses.
const NoLocationName = "Ohne Standort"

// Partition splits assignments into the three status groups. Input order is
// preserved within each group and every assignment lands in exactly one group.
type Partition struct {
	Open      []models.Assignment `json:"open"`
	Assigned  []models.Assignment `json:"assigned"`
	Completed []models.Assignment `json:"completed"`
}

// PartitionByStatus groups assignments by status. Anything with an unknown
// status is treated as open so the partition stays exact.
func PartitionByStatus(assignments []models.Assignment) Partition {
	var p Partition
	for _, a := range assignments {
		switch a.Status {
		case models.AssignmentCompleted:
			p.Completed = append(p.Completed, a)
		case models.AssignmentAssigned:
			p.Assigned = append(p.Assigned, a)
		default:
			p.Open = append(p.Open, a)
		}
	}
	return p
}

// Statistics summarizes the current operation for the dashboard header.
type Statistics struct {
	AssignmentCount      int `json:"assignment_count"`
	DeployedVehicleCount int `json:"deployed_vehicle_count"`
	DeployedPersonnel    int `json:"deployed_personnel"`
}

// ComputeStatistics counts assignments, vehicles deployed on non-completed
// assignments and their total crew. A vehicle referenced by several
// assignments is counted once, keyed by callsign.
func ComputeStatistics(assignments []models.Assignment, vehicles []models.Vehicle) Statistics {
	stats := Statistics{AssignmentCount: len(assignments)}

	byCallsign := make(map[string]*models.Vehicle, len(vehicles))
	for i := range vehicles {
		byCallsign[vehicles[i].Callsign] = &vehicles[i]
	}

	deployed := make(map[string]bool)
	for _, a := range assignments {
		if a.Status == models.AssignmentCompleted {
			continue
		}
		for _, callsign := range a.Vehicles {
			if deployed[callsign] {
				continue
			}
			deployed[callsign] = true
			if v, ok := byCallsign[callsign]; ok {
				stats.DeployedPersonnel += v.CrewCount
			}
		}
	}
	stats.DeployedVehicleCount = len(deployed)

	return stats
}

// DeployedVehicle pairs a deployed vehicle with every assignment referencing
// it: non-completed first in assignment order, then completed.
type DeployedVehicle struct {
	Vehicle     models.Vehicle      `json:"vehicle"`
	Assignments []models.Assignment `json:"assignments"`
}

// Deployment is the vehicle grouping shown on the dashboard sidebar.
type Deployment struct {
	Deployed            []DeployedVehicle           `json:"deployed"`
	AvailableByLocation map[string][]models.Vehicle `json:"available_by_location"`
}

// GroupByDeployment splits vehicles into deployed and available. A vehicle is
// deployed iff at least one non-completed assignment references its callsign;
// everything else is grouped under its location name.
func GroupByDeployment(vehicles []models.Vehicle, assignments []models.Assignment) Deployment {
	grouped := Deployment{
		AvailableByLocation: make(map[string][]models.Vehicle),
	}

	for _, v := range vehicles {
		var active, completed []models.Assignment
		for _, a := range assignments {
			if !referencesVehicle(a, v.Callsign) {
				continue
			}
			if a.Status == models.AssignmentCompleted {
				completed = append(completed, a)
			} else {
				active = append(active, a)
			}
		}

		if len(active) > 0 {
			grouped.Deployed = append(grouped.Deployed, DeployedVehicle{
				Vehicle:     v,
				Assignments: append(active, completed...),
			})
			continue
		}

		name := v.LocationName
		if name == "" {
			name = NoLocationName
		}
		grouped.AvailableByLocation[name] = append(grouped.AvailableByLocation[name], v)
	}

	return grouped
}

// SequentialNumber extracts the display number from a full assignment or
// operation number: the last '-'-delimited token, or the input verbatim when
// there is no delimiter.
func SequentialNumber(full string) string {
	idx := strings.LastIndex(full, "-")
	if idx < 0 {
		return full
	}
	return full[idx+1:]
}

func referencesVehicle(a models.Assignment, callsign string) bool {
	for _, c := range a.Vehicles {
		if c == callsign {
			return true
		}
	}
	return false
}
