package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert is one detection event reported by the external detection service.
// CameraName is denormalized on purpose: the reporting process only knows the
// camera by name, never by our record id. Confidence is stored exactly as
// received; values outside [0,1] are tolerated rather than rejected or clamped.
type Alert struct {
	ID            uuid.UUID `json:"id" db:"id"`
	CameraName    string    `json:"camera_name" db:"camera_name"`
	DetectedClass string    `json:"detected_class" db:"detected_class"`
	Confidence    float64   `json:"confidence" db:"confidence"`
	ImageKey      string    `json:"image_key,omitempty" db:"image_key"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
