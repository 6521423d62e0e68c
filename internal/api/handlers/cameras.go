package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Karthik3116/IOMP/internal/models"
	"github.com/Karthik3116/IOMP/internal/observability"
	"github.com/Karthik3116/IOMP/pkg/dto"
)

// CameraStore is the slice of the durable store the camera registry needs.
type CameraStore interface {
	CreateCamera(ctx context.Context, cam *models.Camera) error
	GetCamera(ctx context.Context, id uuid.UUID) (*models.Camera, error)
	ListCameras(ctx context.Context) ([]models.Camera, error)
	UpdateCameraStatus(ctx context.Context, id uuid.UUID, status models.CameraStatus) (*models.Camera, error)
	UpdateCamera(ctx context.Context, id uuid.UUID, name, location, streamURL string) (*models.Camera, error)
	DeleteCamera(ctx context.Context, id uuid.UUID) error
}

// Terminator signals the external detection process to stop a camera's
// session. Every call site treats the result as best-effort.
type Terminator interface {
	Terminate(ctx context.Context, cameraName string) error
}

type CameraHandler struct {
	db       CameraStore
	detector Terminator
}

func NewCameraHandler(db CameraStore, detector Terminator) *CameraHandler {
	return &CameraHandler{db: db, detector: detector}
}

func (h *CameraHandler) Create(c *gin.Context) {
	var req dto.CreateCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cam := &models.Camera{
		Name:      req.Name,
		Location:  req.Location,
		StreamURL: req.StreamURL,
		Status:    models.CameraStatus(req.Status),
	}

	if err := h.db.CreateCamera(c.Request.Context(), cam); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cameraToResponse(cam))
}

func (h *CameraHandler) List(c *gin.Context) {
	cameras, err := h.db.ListCameras(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.CameraResponse, 0, len(cameras))
	for _, cam := range cameras {
		resp = append(resp, cameraToResponse(&cam))
	}

	c.JSON(http.StatusOK, dto.CameraListResponse{Cameras: resp, Total: len(resp)})
}

// SetStatus persists the desired state unconditionally; repeating the current
// state is a no-op at the data level. Moving to stopped additionally signals
// the external detection process, keyed by camera name. That signal is
// fire-and-forget: its failure is logged and the already-persisted transition
// stands, with no rollback and no retry.
func (h *CameraHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camera id"})
		return
	}

	var req dto.SetCameraStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cam, err := h.db.UpdateCameraStatus(c.Request.Context(), id, models.CameraStatus(req.Status))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cam == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
		return
	}

	if cam.Status == models.CameraStatusStopped {
		h.signalTermination(c.Request.Context(), cam.Name)
	}

	c.JSON(http.StatusOK, cameraToResponse(cam))
}

func (h *CameraHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camera id"})
		return
	}

	var req dto.UpdateCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.db.GetCamera(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
		return
	}

	// Partial edit: absent fields keep their persisted value, so name and
	// stream URL can never become empty.
	name := existing.Name
	if req.Name != "" {
		name = req.Name
	}
	location := existing.Location
	if req.Location != "" {
		location = req.Location
	}
	streamURL := existing.StreamURL
	if req.StreamURL != "" {
		streamURL = req.StreamURL
	}

	cam, err := h.db.UpdateCamera(c.Request.Context(), id, name, location, streamURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cam == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
		return
	}

	c.JSON(http.StatusOK, cameraToResponse(cam))
}

// Delete removes the record whether or not the termination signal reached the
// external process, and whether or not the record existed. The confirmation is
// the same either way.
func (h *CameraHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camera id"})
		return
	}

	cam, err := h.db.GetCamera(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cam != nil {
		h.signalTermination(c.Request.Context(), cam.Name)
	}

	if err := h.db.DeleteCamera(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *CameraHandler) signalTermination(ctx context.Context, cameraName string) {
	if err := h.detector.Terminate(ctx, cameraName); err != nil {
		observability.TerminationSignals.WithLabelValues("failed").Inc()
		slog.Warn("termination signal failed", "camera", cameraName, "error", err)
		return
	}
	observability.TerminationSignals.WithLabelValues("ok").Inc()
}

func cameraToResponse(cam *models.Camera) dto.CameraResponse {
	return dto.CameraResponse{
		ID:        cam.ID,
		Name:      cam.Name,
		Location:  cam.Location,
		StreamURL: cam.StreamURL,
		Status:    string(cam.Status),
		CreatedAt: cam.CreatedAt.Format(time.RFC3339),
	}
}
