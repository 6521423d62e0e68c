package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Karthik3116/IOMP/internal/api/handlers"
	"github.com/Karthik3116/IOMP/internal/api/ws"
	"github.com/Karthik3116/IOMP/internal/detector"
	"github.com/Karthik3116/IOMP/internal/discovery"
	"github.com/Karthik3116/IOMP/internal/queue"
	"github.com/Karthik3116/IOMP/internal/storage"
)

type RouterConfig struct {
	DB       *storage.PostgresStore
	MinIO    *storage.MinIOStore
	Producer *queue.Producer // nil when no broker is configured
	Hub      *ws.Hub
	Scanner  *discovery.Scanner
	Detector *detector.Client
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// A typed-nil *queue.Producer must stay a nil interface for the
	// optional-mirror checks in the handlers.
	var mirror handlers.AlertMirror
	var broker handlers.BrokerPinger
	if cfg.Producer != nil {
		mirror = cfg.Producer
		broker = cfg.Producer
	}

	systemH := handlers.NewSystemHandler(cfg.DB, cfg.MinIO, broker)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Live event channel
	api.GET("/ws", cfg.Hub.HandleWS)

	// Cameras
	cameraH := handlers.NewCameraHandler(cfg.DB, cfg.Detector)
	api.POST("/cameras", cameraH.Create)
	api.GET("/cameras", cameraH.List)
	api.PUT("/cameras/:id", cameraH.Update)
	api.PUT("/cameras/:id/status", cameraH.SetStatus)
	api.DELETE("/cameras/:id", cameraH.Delete)

	// Discovery
	discoveryH := handlers.NewDiscoveryHandler(cfg.Scanner, cfg.Hub)
	api.GET("/discover", discoveryH.Scan)

	// Alerts
	alertH := handlers.NewAlertHandler(cfg.DB, cfg.MinIO, cfg.Hub, mirror)
	api.GET("/alerts", alertH.List)
	api.GET("/alerts/:id/image", alertH.Image)
	api.POST("/webhook/detection", alertH.Ingest)

	return r
}
