package models

// OperationStatus is the lifecycle state of an operation.
type OperationStatus string

const (
	OperationActive OperationStatus = "active"
	OperationClosed OperationStatus = "closed"
)

// AssignmentStatus tracks an assignment through open -> assigned -> completed.
type AssignmentStatus string

const (
	AssignmentOpen      AssignmentStatus = "open"
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentCompleted AssignmentStatus = "completed"
)

// Operation is a single incident or exercise. The backend guarantees at most
// one operation is active at any time.
type Operation struct {
	ID          int             `json:"id"`
	Number      string          `json:"number"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      OperationStatus `json:"status"`
	CreatedAt   string          `json:"created_at,omitempty"`
	ClosedAt    string          `json:"closed_at,omitempty"`
}

// Assignment is a dispatchable task within an operation. Vehicles holds the
// callsigns of assigned vehicles in queue order; a callsign appears at most once.
type Assignment struct {
	ID              int              `json:"id"`
	OperationID     int              `json:"operation_id"`
	Number          string           `json:"number"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	LocationAddress string           `json:"location_address,omitempty"`
	Latitude        *float64         `json:"latitude,omitempty"`
	Longitude       *float64         `json:"longitude,omitempty"`
	Status          AssignmentStatus `json:"status"`
	CreatedAt       string           `json:"created_at,omitempty"`
	CompletedAt     string           `json:"completed_at,omitempty"`
	Vehicles        []string         `json:"vehicles"`
}

// HasCoordinates reports whether the assignment can be plotted on a map.
func (a *Assignment) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// Vehicle is independent of any operation; assignments reference it by callsign.
type Vehicle struct {
	ID           int    `json:"id"`
	Callsign     string `json:"callsign"`
	VehicleType  string `json:"vehicle_type,omitempty"`
	CrewCount    int    `json:"crew_count"`
	LocationID   *int   `json:"location_id,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Location is a station vehicles can be based at.
type Location struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// JournalEntry is an append-only log line scoped to an operation.
type JournalEntry struct {
	ID               int    `json:"id"`
	OperationID      int    `json:"operation_id"`
	AssignmentID     *int   `json:"assignment_id,omitempty"`
	AssignmentNumber string `json:"assignment_number,omitempty"`
	Timestamp        string `json:"timestamp,omitempty"`
	EntryType        string `json:"entry_type,omitempty"`
	Content          string `json:"content"`
}

// Snapshot is the full local copy of the backend state as of the last
// successful poll tick. It is replaced wholesale, never merged.
type Snapshot struct {
	Operation   *Operation
	Assignments []Assignment
	Vehicles    []Vehicle
	Locations   []Location
}

// HasActiveOperation reports whether the snapshot carries an active operation.
func (s *Snapshot) HasActiveOperation() bool {
	return s != nil && s.Operation != nil
}
