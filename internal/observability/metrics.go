package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AlertsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iomp",
		Name:      "alerts_ingested_total",
		Help:      "Total number of detection alerts ingested",
	}, []string{"camera"})

	DiscoveryScans = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "iomp",
		Name:      "discovery_scans_total",
		Help:      "Total number of subnet discovery scans",
	})

	DiscoveryDevicesFound = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "iomp",
		Name:      "discovery_devices_found_total",
		Help:      "Total number of devices that answered a discovery probe",
	})

	TerminationSignals = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iomp",
		Name:      "termination_signals_total",
		Help:      "Termination signals sent to the external detection service",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "iomp",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "iomp",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket observers",
	})
)
