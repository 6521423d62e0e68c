package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Karthik3116/IOMP/internal/models"
	"github.com/Karthik3116/IOMP/internal/observability"
	"github.com/Karthik3116/IOMP/pkg/dto"
)

// AlertStore is the slice of the durable store the ingestion pipeline needs.
type AlertStore interface {
	CreateAlert(ctx context.Context, alert *models.Alert) error
	GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error)
	ListAlerts(ctx context.Context, limit int) ([]models.Alert, error)
}

// Broadcaster fans an event out to every currently-connected observer.
type Broadcaster interface {
	Broadcast(event *dto.WSEvent)
}

// AlertMirror republishes persisted alerts to a broker for downstream
// collaborators. Optional and best-effort.
type AlertMirror interface {
	PublishAlert(data interface{}) error
}

// ObjectStore fetches evidence captures by key.
type ObjectStore interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

type AlertHandler struct {
	db     AlertStore
	images ObjectStore
	hub    Broadcaster
	mirror AlertMirror
}

func NewAlertHandler(db AlertStore, images ObjectStore, hub Broadcaster, mirror AlertMirror) *AlertHandler {
	return &AlertHandler{db: db, images: images, hub: hub, mirror: mirror}
}

// Ingest is the webhook the external detection service posts into. The payload
// must carry a camera name, a detected class and a confidence; the confidence
// range is deliberately not checked — the reporting service occasionally emits
// out-of-domain values and they are persisted exactly as received. On success
// the full persisted record, id and timestamp included, is pushed to every
// connected observer exactly once.
func (h *AlertHandler) Ingest(c *gin.Context) {
	var req dto.IngestAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert := &models.Alert{
		CameraName:    req.CameraName,
		DetectedClass: req.DetectedClass,
		Confidence:    *req.Confidence,
		ImageKey:      req.Image,
	}

	if err := h.db.CreateAlert(c.Request.Context(), alert); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	observability.AlertsIngested.WithLabelValues(alert.CameraName).Inc()

	resp := alertToResponse(alert)
	h.hub.Broadcast(&dto.WSEvent{Type: "new_alert", Data: resp})

	if h.mirror != nil {
		if err := h.mirror.PublishAlert(resp); err != nil {
			slog.Warn("mirror alert to broker", "error", err)
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// maxAlertPageSize bounds every listing regardless of the requested limit, to
// protect the store and the network from unbounded responses.
const maxAlertPageSize = 100

func (h *AlertHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 {
		limit = 50
	}
	if limit > maxAlertPageSize {
		limit = maxAlertPageSize
	}

	alerts, err := h.db.ListAlerts(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		resp = append(resp, alertToResponse(&alert))
	}

	c.JSON(http.StatusOK, dto.AlertListResponse{Alerts: resp, Total: len(resp)})
}

// Image proxies the evidence capture for an alert from the object store.
func (h *AlertHandler) Image(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}

	alert, err := h.db.GetAlert(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alert == nil || alert.ImageKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no capture for this alert"})
		return
	}

	data, err := h.images.GetObject(c.Request.Context(), alert.ImageKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "capture not found"})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}

func alertToResponse(alert *models.Alert) dto.AlertResponse {
	r := dto.AlertResponse{
		ID:            alert.ID,
		CameraName:    alert.CameraName,
		DetectedClass: alert.DetectedClass,
		Confidence:    alert.Confidence,
		CreatedAt:     alert.CreatedAt.Format(time.RFC3339),
	}
	if alert.ImageKey != "" {
		r.ImageURL = "/api/alerts/" + alert.ID.String() + "/image"
	}
	return r
}
