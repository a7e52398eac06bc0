package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fireops/lageboard/internal/metrics"
	"fireops/lageboard/internal/models"
)

// Client is a typed REST client for the external operations API. The API is
// the sole source of truth; the client holds no state beyond the connection.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	// Metrics is optional; when set, every request is observed.
	Metrics *metrics.MetricsRegistry
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ============================================================================
// Operations
// ============================================================================

// ListOperations fetches all operations, newest first.
func (c *Client) ListOperations(ctx context.Context) ([]models.Operation, error) {
	var ops []models.Operation
	if err := c.doGET(ctx, "/operations/", &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// GetActiveOperation fetches the currently active operation. A nil result
// with nil error means no operation is active, which is a valid state.
func (c *Client) GetActiveOperation(ctx context.Context) (*models.Operation, error) {
	var op *models.Operation
	if err := c.doGET(ctx, "/operations/active", &op); err != nil {
		return nil, err
	}
	return op, nil
}

// CreateOperation creates a new operation; the API assigns its number.
func (c *Client) CreateOperation(ctx context.Context, req *models.OperationRequest) (*models.Operation, error) {
	var op models.Operation
	if err := c.doJSON(ctx, http.MethodPost, "/operations/", req, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// UpdateOperation updates title/description of an operation.
func (c *Client) UpdateOperation(ctx context.Context, id int, req *models.OperationRequest) (*models.Operation, error) {
	var op models.Operation
	if err := c.doJSON(ctx, http.MethodPut, "/operations/"+strconv.Itoa(id), req, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// CloseOperation marks an operation closed.
func (c *Client) CloseOperation(ctx context.Context, id int) (*models.Operation, error) {
	var op models.Operation
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/operations/%d/close", id), nil, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// ============================================================================
// Assignments
// ============================================================================

// ListAssignments fetches assignments. With operationID 0 the API scopes the
// list to the active operation.
func (c *Client) ListAssignments(ctx context.Context, operationID int) ([]models.Assignment, error) {
	endpoint := "/assignments/"
	if operationID > 0 {
		endpoint += "?operation_id=" + strconv.Itoa(operationID)
	}
	var list []models.Assignment
	if err := c.doGET(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateAssignment creates a new assignment in the active operation.
func (c *Client) CreateAssignment(ctx context.Context, req *models.AssignmentRequest) (*models.Assignment, error) {
	var a models.Assignment
	if err := c.doJSON(ctx, http.MethodPost, "/assignments/", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAssignment updates an assignment.
func (c *Client) UpdateAssignment(ctx context.Context, id int, req *models.AssignmentRequest) (*models.Assignment, error) {
	var a models.Assignment
	if err := c.doJSON(ctx, http.MethodPut, "/assignments/"+strconv.Itoa(id), req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CompleteAssignment marks an assignment completed.
func (c *Client) CompleteAssignment(ctx context.Context, id int) (*models.Assignment, error) {
	var a models.Assignment
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/assignments/%d/complete", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// AssignVehicle attaches a vehicle to an assignment.
func (c *Client) AssignVehicle(ctx context.Context, assignmentID, vehicleID int) (*models.Assignment, error) {
	req := models.AssignVehicleRequest{VehicleID: vehicleID}
	var a models.Assignment
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/assignments/%d/vehicles", assignmentID), &req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UnassignVehicle detaches a vehicle from an assignment.
func (c *Client) UnassignVehicle(ctx context.Context, assignmentID, vehicleID int) (*models.Assignment, error) {
	var a models.Assignment
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/assignments/%d/vehicles/%d", assignmentID, vehicleID), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ============================================================================
// Vehicles
// ============================================================================

// ListVehicles fetches all vehicles.
func (c *Client) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var list []models.Vehicle
	if err := c.doGET(ctx, "/vehicles/", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListVehiclesByLocation fetches vehicles grouped by location name.
func (c *Client) ListVehiclesByLocation(ctx context.Context) (map[string][]models.Vehicle, error) {
	grouped := make(map[string][]models.Vehicle)
	if err := c.doGET(ctx, "/vehicles/by-location", &grouped); err != nil {
		return nil, err
	}
	return grouped, nil
}

// CreateVehicle creates a vehicle.
func (c *Client) CreateVehicle(ctx context.Context, req *models.VehicleRequest) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := c.doJSON(ctx, http.MethodPost, "/vehicles/", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVehicle updates a vehicle.
func (c *Client) UpdateVehicle(ctx context.Context, id int, req *models.VehicleRequest) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := c.doJSON(ctx, http.MethodPut, "/vehicles/"+strconv.Itoa(id), req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVehicle deletes a vehicle.
func (c *Client) DeleteVehicle(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/vehicles/"+strconv.Itoa(id), nil, nil)
}

// ============================================================================
// Locations
// ============================================================================

// ListLocations fetches all locations.
func (c *Client) ListLocations(ctx context.Context) ([]models.Location, error) {
	var list []models.Location
	if err := c.doGET(ctx, "/locations/", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateLocation creates a location.
func (c *Client) CreateLocation(ctx context.Context, req *models.LocationRequest) (*models.Location, error) {
	var l models.Location
	if err := c.doJSON(ctx, http.MethodPost, "/locations/", req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateLocation updates a location.
func (c *Client) UpdateLocation(ctx context.Context, id int, req *models.LocationRequest) (*models.Location, error) {
	var l models.Location
	if err := c.doJSON(ctx, http.MethodPut, "/locations/"+strconv.Itoa(id), req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteLocation deletes a location.
func (c *Client) DeleteLocation(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/locations/"+strconv.Itoa(id), nil, nil)
}

// ============================================================================
// Journal
// ============================================================================

// ListJournalEntries fetches journal entries, optionally filtered by
// operation and/or assignment. Zero values mean no filter.
func (c *Client) ListJournalEntries(ctx context.Context, operationID, assignmentID int) ([]models.JournalEntry, error) {
	endpoint := "/journal/"
	params := url.Values{}
	if operationID > 0 {
		params.Set("operation_id", strconv.Itoa(operationID))
	}
	if assignmentID > 0 {
		params.Set("assignment_id", strconv.Itoa(assignmentID))
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var list []models.JournalEntry
	if err := c.doGET(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateJournalEntry appends a journal entry.
func (c *Client) CreateJournalEntry(ctx context.Context, req *models.JournalEntryRequest) (*models.JournalEntry, error) {
	var e models.JournalEntry
	if err := c.doJSON(ctx, http.MethodPost, "/journal/", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

// doGET performs a GET request and decodes the response into result
func (c *Client) doGET(ctx context.Context, endpoint string, result interface{}) error {
	start := time.Now()
	err := c.get(ctx, endpoint, result)
	c.observe(endpoint, start, err)
	return err
}

func (c *Client) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+endpoint, nil)
	if err != nil {
		return &TransportError{
			Code:    ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{
			Code:    ErrCodeNetworkError,
			Message: GetErrorMessage(ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return &TransportError{
			Code:       ErrCodeNetworkError,
			Message:    "Failed to read response body",
			StatusCode: resp.StatusCode,
			Err:        readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return &TransportError{
			Code:       ErrCodeDecodeError,
			Message:    GetErrorMessage(ErrCodeDecodeError),
			StatusCode: resp.StatusCode,
			Details:    string(bodyBytes),
			Err:        err,
		}
	}

	return nil
}

// doJSON performs a mutating request with an optional JSON body and decodes
// the response into result when result is non-nil
func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload, result interface{}) error {
	start := time.Now()
	err := c.send(ctx, method, endpoint, payload, result)
	c.observe(endpoint, start, err)
	return err
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return &TransportError{
				Code:    ErrCodeNetworkError,
				Message: "Failed to marshal request body",
				Err:     err,
			}
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, body)
	if err != nil {
		return &TransportError{
			Code:    ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{
			Code:    ErrCodeNetworkError,
			Message: GetErrorMessage(ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return &TransportError{
			Code:       ErrCodeNetworkError,
			Message:    "Failed to read response body",
			StatusCode: resp.StatusCode,
			Err:        readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return &TransportError{
			Code:       ErrCodeDecodeError,
			Message:    GetErrorMessage(ErrCodeDecodeError),
			StatusCode: resp.StatusCode,
			Details:    string(bodyBytes),
			Err:        err,
		}
	}

	return nil
}

func (c *Client) observe(endpoint string, start time.Time, err error) {
	if c.Metrics == nil {
		return
	}
	resource := resourceFromEndpoint(endpoint)
	result := "ok"
	if err != nil {
		result = "failed"
	}
	c.Metrics.GatewayRequestsTotal.WithLabelValues(resource, result).Inc()
	c.Metrics.GatewayRequestLatency.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}

// resourceFromEndpoint reduces an endpoint to its first path segment so
// metric cardinality stays bounded.
func resourceFromEndpoint(endpoint string) string {
	s := strings.TrimPrefix(endpoint, "/")
	for i := 0; i < len(s); i++ {
		if s[i] == '/' || s[i] == '?' {
			return s[:i]
		}
	}
	return s
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}

// buildHTTPError creates the appropriate error for a non-success status code
func (c *Client) buildHTTPError(statusCode int, endpoint, body string) error {
	switch statusCode {
	case http.StatusNotFound:
		return &TransportError{
			Code:       ErrCodeResourceNotFound,
			Message:    fmt.Sprintf("Resource not found: %s", endpoint),
			StatusCode: statusCode,
			Details:    body,
		}
	case http.StatusTooManyRequests:
		return &TransportError{
			Code:       ErrCodeRateLimited,
			Message:    GetErrorMessage(ErrCodeRateLimited),
			StatusCode: statusCode,
			Details:    body,
		}
	case http.StatusBadRequest:
		return &TransportError{
			Code:       ErrCodeInvalidRequest,
			Message:    fmt.Sprintf("Bad request to %s", endpoint),
			StatusCode: statusCode,
			Details:    body,
		}
	default:
		return &TransportError{
			Code:       ErrCodeServerError,
			Message:    fmt.Sprintf("HTTP %d from %s", statusCode, endpoint),
			StatusCode: statusCode,
			Details:    body,
		}
	}
}
