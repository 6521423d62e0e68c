package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karthik3116/IOMP/pkg/dto"
)

// DeviceScanner probes the local subnet for camera-capable devices.
type DeviceScanner interface {
	Scan(ctx context.Context) ([]dto.DiscoveredDevice, error)
}

type DiscoveryHandler struct {
	scanner DeviceScanner
	hub     Broadcaster
}

func NewDiscoveryHandler(scanner DeviceScanner, hub Broadcaster) *DiscoveryHandler {
	return &DiscoveryHandler{scanner: scanner, hub: hub}
}

// Scan runs one full subnet sweep and returns the devices that answered. The
// result set is ephemeral; nothing is persisted until the operator registers a
// device as a camera. A scan that finds nothing, or that could not even start,
// reports an empty set rather than an error.
func (h *DiscoveryHandler) Scan(c *gin.Context) {
	devices, err := h.scanner.Scan(c.Request.Context())
	if err != nil {
		slog.Warn("discovery scan", "error", err)
		devices = nil
	}

	for _, d := range devices {
		h.hub.Broadcast(&dto.WSEvent{Type: "camera_discovered", Data: d})
	}

	c.JSON(http.StatusOK, dto.DiscoveryResponse{Devices: devices, Total: len(devices)})
}
