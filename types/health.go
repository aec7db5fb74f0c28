package types

// Health statuses reported by the health endpoints.
const (
	HealthStatusUp       = "up"
	HealthStatusDegraded = "degraded"
	HealthStatusDown     = "down"
)

// HealthCheck is the aggregate health report.
type HealthCheck struct {
	Status     string                     `json:"status"`
	Components map[string]HealthComponent `json:"components"`
	Version    string                     `json:"version"`
	Timestamp  string                     `json:"timestamp"`
}

// HealthComponent is one dependency's health.
type HealthComponent struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}
