package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fireops/lageboard/internal/models"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "test-key", 5*time.Second)
	return client, server
}

func TestGetActiveOperation_Success(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/operations/active" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", got)
		}
		json.NewEncoder(w).Encode(models.Operation{
			ID:     1,
			Number: "EL-2024-003",
			Title:  "Unwetterlage",
			Status: models.OperationActive,
		})
	})
	defer server.Close()

	op, err := client.GetActiveOperation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op == nil || op.Number != "EL-2024-003" {
		t.Errorf("unexpected operation: %+v", op)
	}
}

func TestGetActiveOperation_NoneActive(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	})
	defer server.Close()

	op, err := client.GetActiveOperation(context.Background())
	if err != nil {
		t.Fatalf("no active operation is a valid state, got error: %v", err)
	}
	if op != nil {
		t.Errorf("expected nil operation, got %+v", op)
	}
}

func TestListAssignments_ScopesToOperation(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("operation_id"); got != "7" {
			t.Errorf("expected operation_id=7, got %q", got)
		}
		json.NewEncoder(w).Encode([]models.Assignment{
			{ID: 1, Number: "EL-2024-003-001", Status: models.AssignmentOpen},
		})
	})
	defer server.Close()

	list, err := client.ListAssignments(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].Number != "EL-2024-003-001" {
		t.Errorf("unexpected assignments: %+v", list)
	}
}

func TestDoGET_NotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.ListVehicles(context.Background())
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %T", err)
	}
	if terr.Code != ErrCodeResourceNotFound {
		t.Errorf("expected %s, got %s", ErrCodeResourceNotFound, terr.Code)
	}
	if terr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", terr.StatusCode)
	}
}

func TestDoGET_MalformedBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})
	defer server.Close()

	_, err := client.ListLocations(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Code != ErrCodeDecodeError {
		t.Errorf("expected %s, got %s", ErrCodeDecodeError, terr.Code)
	}
}

func TestDoGET_NetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", 500*time.Millisecond)

	_, err := client.ListOperations(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Code != ErrCodeNetworkError {
		t.Errorf("expected %s, got %s", ErrCodeNetworkError, terr.Code)
	}
}

func TestAssignVehicle_SendsVehicleID(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/assignments/3/vehicles" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req models.AssignVehicleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.VehicleID != 12 {
			t.Errorf("expected vehicle_id 12, got %d", req.VehicleID)
		}
		json.NewEncoder(w).Encode(models.Assignment{
			ID:       3,
			Status:   models.AssignmentAssigned,
			Vehicles: []string{"Florian 1"},
		})
	})
	defer server.Close()

	a, err := client.AssignVehicle(context.Background(), 3, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != models.AssignmentAssigned {
		t.Errorf("expected assigned status, got %s", a.Status)
	}
}

func TestListVehiclesByLocation(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vehicles/by-location" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string][]models.Vehicle{
			"Wache Nord":    {{ID: 1, Callsign: "Florian 1"}},
			"Ohne Standort": {{ID: 2, Callsign: "Florian 2"}},
		})
	})
	defer server.Close()

	grouped, err := client.ListVehiclesByLocation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grouped["Wache Nord"]) != 1 || len(grouped["Ohne Standort"]) != 1 {
		t.Errorf("unexpected grouping: %+v", grouped)
	}
}

func TestDeleteVehicle_NoBodyExpected(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/vehicles/5" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	if err := client.DeleteVehicle(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
