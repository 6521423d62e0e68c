package models

import (
	"time"

	"github.com/google/uuid"
)

type CameraStatus string

const (
	CameraStatusStopped CameraStatus = "stopped"
	CameraStatusActive  CameraStatus = "active"
)

// Valid reports whether s is one of the two defined camera states.
func (s CameraStatus) Valid() bool {
	return s == CameraStatusStopped || s == CameraStatusActive
}

// Camera is a registered video source and its desired operating state.
// The actual running state of the external detection process is eventually
// consistent with Status; the two are linked only by a best-effort signal.
type Camera struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Location  string       `json:"location,omitempty" db:"location"`
	StreamURL string       `json:"stream_url" db:"stream_url"`
	Status    CameraStatus `json:"status" db:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}
