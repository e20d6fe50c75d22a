package apimodels

import "time"

// Envelope is the uniform wrapper around every response at the HTTP boundary.
// Non-2xx status or Success=false must be treated as failure by callers.
type Envelope struct {
	Success bool `json:"success"`

	// Data carries the action result when Success is true
	Data any `json:"data,omitempty"`

	// Error carries the failure message when Success is false
	Error string `json:"error,omitempty"`

	// Degraded is emitted only when the server is configured to expose
	// fallback substitution; nil otherwise
	Degraded *bool `json:"degraded,omitempty"`

	// Timestamp is RFC3339
	Timestamp string `json:"timestamp"`
}

// NewEnvelope stamps a success envelope around data.
func NewEnvelope(data any) Envelope {
	return Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewErrorEnvelope stamps a failure envelope carrying msg.
func NewErrorEnvelope(msg string) Envelope {
	return Envelope{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// RiskAssessment is the structured result of the assessLegalRisk operation.
type RiskAssessment struct {
	// Analysis is the model's full risk discussion
	Analysis string `json:"analysis"`

	// Assessment is the overall level: Low, Medium, or High
	Assessment string `json:"assessment"`

	Timestamp string `json:"timestamp"`
}

// HealthStatus reports which upstream integrations have credentials
// configured. It is built from configuration alone; no network call is made.
type HealthStatus struct {
	Status       string          `json:"status"`
	Integrations map[string]bool `json:"integrations"`
	Timestamp    string          `json:"timestamp"`
}

// StagedFile is the wire representation of a file held in the upload staging
// area.
type StagedFile struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	StagedAt time.Time `json:"stagedAt"`
}
