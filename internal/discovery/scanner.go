// Package discovery probes the local /24 subnet for devices that expose the
// well-known camera control port. Results are ephemeral: a device becomes a
// camera record only when the operator registers it.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Karthik3116/IOMP/internal/config"
	"github.com/Karthik3116/IOMP/internal/models"
	"github.com/Karthik3116/IOMP/internal/observability"
	"github.com/Karthik3116/IOMP/pkg/dto"
)

type Scanner struct {
	port         int
	probeTimeout time.Duration
	streamPath   string
}

func NewScanner(cfg config.DiscoveryConfig) *Scanner {
	return &Scanner{
		port:         cfg.Port,
		probeTimeout: cfg.ProbeTimeout,
		streamPath:   cfg.StreamPath,
	}
}

// Scan probes the host's own /24 subnet. If the local address cannot be
// determined the scan degrades to the loopback-based subnet rather than
// failing; a scan where nothing answers returns an empty set, not an error.
func (s *Scanner) Scan(ctx context.Context) ([]dto.DiscoveredDevice, error) {
	base := subnetBase(localIP())
	return s.ScanSubnet(ctx, base)
}

// ScanSubnet probes suffixes 1..254 of the given /24 base ("192.168.1")
// concurrently, one goroutine per address, each bounded by the probe timeout.
// It returns once every probe has resolved; a probe that errors or times out
// marks its address absent and is never surfaced.
func (s *Scanner) ScanSubnet(ctx context.Context, base string) ([]dto.DiscoveredDevice, error) {
	observability.DiscoveryScans.Inc()
	start := time.Now()

	var (
		mu    sync.Mutex
		found []string
		wg    sync.WaitGroup
	)

	for suffix := 1; suffix <= 254; suffix++ {
		addr := fmt.Sprintf("%s.%d", base, suffix)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.probe(ctx, addr) {
				mu.Lock()
				found = append(found, addr)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Slice(found, func(i, j int) bool {
		return hostSuffix(found[i]) < hostSuffix(found[j])
	})

	devices := make([]dto.DiscoveredDevice, 0, len(found))
	for _, addr := range found {
		devices = append(devices, s.deviceFor(addr))
	}

	observability.DiscoveryDevicesFound.Add(float64(len(devices)))
	slog.Info("discovery scan complete",
		"subnet", base+".0/24",
		"found", len(devices),
		"duration", time.Since(start).String(),
	)
	return devices, nil
}

// probe reports whether addr accepts a TCP connection on the control port
// within the probe timeout.
func (s *Scanner) probe(ctx context.Context, addr string) bool {
	dialer := net.Dialer{Timeout: s.probeTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, strconv.Itoa(s.port)))
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (s *Scanner) deviceFor(addr string) dto.DiscoveredDevice {
	return dto.DiscoveredDevice{
		Address:   addr,
		Name:      "Camera @ " + addr,
		StreamURL: fmt.Sprintf("http://%s:%d%s", addr, s.port, s.streamPath),
		Status:    string(models.CameraStatusStopped),
	}
}

// localIP determines the host's outbound address via a connected UDP socket.
// No packet is sent; the kernel just picks the route. Falls back to loopback
// when the host has no usable route.
func localIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		slog.Warn("determine local address, falling back to loopback", "error", err)
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// subnetBase reduces an IPv4 address to its /24 prefix ("192.168.1.42" →
// "192.168.1").
func subnetBase(ip string) string {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return "127.0.0"
	}
	return strings.Join(parts[:3], ".")
}

func hostSuffix(addr string) int {
	parts := strings.Split(addr, ".")
	n, _ := strconv.Atoi(parts[len(parts)-1])
	return n
}
