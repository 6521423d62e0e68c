package dto

import "github.com/google/uuid"

// IngestAlertRequest is the webhook payload posted by the external detection
// service. Confidence is a pointer so that presence is validated without
// rejecting a legitimate 0; its range is intentionally not validated.
type IngestAlertRequest struct {
	CameraName    string   `json:"cameraName" binding:"required"`
	DetectedClass string   `json:"detectedClass" binding:"required"`
	Confidence    *float64 `json:"confidence" binding:"required"`
	Image         string   `json:"image"`
}

type AlertResponse struct {
	ID            uuid.UUID `json:"id"`
	CameraName    string    `json:"camera_name"`
	DetectedClass string    `json:"detected_class"`
	Confidence    float64   `json:"confidence"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     string    `json:"created_at"`
}

type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Total  int             `json:"total"`
}

// WSEvent is a WebSocket message for real-time delivery to observers.
type WSEvent struct {
	Type string `json:"type"` // new_alert, camera_discovered
	Data any    `json:"data,omitempty"`
}
