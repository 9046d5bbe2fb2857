package dto

// HealthResponse represents the response structure for health checks
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is a plain {"message": ...} body
type MessageResponse struct {
	Message string `json:"message"`
}
