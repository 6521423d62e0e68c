package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// AlertsSubject carries a copy of every persisted alert for downstream
// collaborators (automation, recording triggers). Delivery is best-effort:
// observers on the WebSocket hub are the authoritative live channel.
const AlertsSubject = "alerts.detection"

type Producer struct {
	nc *nats.Conn
}

func NewProducer(natsURL string) (*Producer, error) {
	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &Producer{nc: nc}, nil
}

// PublishAlert mirrors a persisted alert record to the broker.
func (p *Producer) PublishAlert(data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	if err := p.nc.Publish(AlertsSubject, payload); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}

func (p *Producer) Ping() error {
	if !p.nc.IsConnected() {
		return fmt.Errorf("nats not connected")
	}
	return nil
}

func (p *Producer) Close() {
	p.nc.Close()
}
