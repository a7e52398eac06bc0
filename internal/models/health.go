package models

// ServiceStatus is the per-dependency section of the health check response.
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// HealthCheckResponse is the body of GET /healthCheck.
type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}
