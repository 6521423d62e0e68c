package dto

import "github.com/google/uuid"

type CreateCameraRequest struct {
	Name      string `json:"name" binding:"required"`
	Location  string `json:"location"`
	StreamURL string `json:"stream_url" binding:"required"`
	Status    string `json:"status" binding:"omitempty,oneof=stopped active"`
}

type UpdateCameraRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	StreamURL string `json:"stream_url"`
}

type SetCameraStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=stopped active"`
}

type CameraResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	StreamURL string    `json:"stream_url"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"created_at"`
}

type CameraListResponse struct {
	Cameras []CameraResponse `json:"cameras"`
	Total   int              `json:"total"`
}
