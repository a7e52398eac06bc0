package models

// OperationRequest is the body for creating or updating an operation.
type OperationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// AssignmentRequest is the body for creating or updating an assignment.
type AssignmentRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	LocationAddress string   `json:"location_address,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

// VehicleRequest is the body for creating or updating a vehicle.
type VehicleRequest struct {
	Callsign    string `json:"callsign"`
	VehicleType string `json:"vehicle_type,omitempty"`
	CrewCount   int    `json:"crew_count"`
	LocationID  *int   `json:"location_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// LocationRequest is the body for creating or updating a location.
type LocationRequest struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// JournalEntryRequest is the body for appending a journal entry.
type JournalEntryRequest struct {
	OperationID  int    `json:"operation_id"`
	AssignmentID *int   `json:"assignment_id,omitempty"`
	EntryType    string `json:"entry_type,omitempty"`
	Content      string `json:"content"`
}

// AssignVehicleRequest attaches a vehicle to an assignment by id.
type AssignVehicleRequest struct {
	VehicleID int `json:"vehicle_id"`
}
