package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Karthik3116/IOMP/internal/models"
	"github.com/Karthik3116/IOMP/pkg/dto"
)

// fakeCameraStore is an in-memory CameraStore.
type fakeCameraStore struct {
	mu      sync.Mutex
	cameras map[uuid.UUID]*models.Camera
	failAll bool
}

func newFakeCameraStore() *fakeCameraStore {
	return &fakeCameraStore{cameras: make(map[uuid.UUID]*models.Camera)}
}

func (s *fakeCameraStore) CreateCamera(_ context.Context, cam *models.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return fmt.Errorf("store unavailable")
	}
	cam.ID = uuid.New()
	if !cam.Status.Valid() {
		cam.Status = models.CameraStatusStopped
	}
	cam.CreatedAt = time.Now()
	copied := *cam
	s.cameras[cam.ID] = &copied
	return nil
}

func (s *fakeCameraStore) GetCamera(_ context.Context, id uuid.UUID) (*models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cam, ok := s.cameras[id]
	if !ok {
		return nil, nil
	}
	copied := *cam
	return &copied, nil
}

func (s *fakeCameraStore) ListCameras(_ context.Context) ([]models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Camera, 0, len(s.cameras))
	for _, cam := range s.cameras {
		out = append(out, *cam)
	}
	// newest first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (s *fakeCameraStore) UpdateCameraStatus(_ context.Context, id uuid.UUID, status models.CameraStatus) (*models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cam, ok := s.cameras[id]
	if !ok {
		return nil, nil
	}
	cam.Status = status
	copied := *cam
	return &copied, nil
}

func (s *fakeCameraStore) UpdateCamera(_ context.Context, id uuid.UUID, name, location, streamURL string) (*models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cam, ok := s.cameras[id]
	if !ok {
		return nil, nil
	}
	cam.Name, cam.Location, cam.StreamURL = name, location, streamURL
	copied := *cam
	return &copied, nil
}

func (s *fakeCameraStore) DeleteCamera(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cameras, id)
	return nil
}

// fakeTerminator records termination signals and can simulate network failure.
type fakeTerminator struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (t *fakeTerminator) Terminate(_ context.Context, cameraName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, cameraName)
	return t.err
}

func (t *fakeTerminator) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

// fakeAlertStore is an in-memory AlertStore that remembers the last limit it
// was asked for.
type fakeAlertStore struct {
	mu        sync.Mutex
	alerts    []models.Alert
	lastLimit int
	failAll   bool
}

func (s *fakeAlertStore) CreateAlert(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return fmt.Errorf("store unavailable")
	}
	alert.ID = uuid.New()
	alert.CreatedAt = time.Now()
	s.alerts = append(s.alerts, *alert)
	return nil
}

func (s *fakeAlertStore) GetAlert(_ context.Context, id uuid.UUID) (*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, alert := range s.alerts {
		if alert.ID == id {
			copied := alert
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeAlertStore) ListAlerts(_ context.Context, limit int) ([]models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLimit = limit
	out := make([]models.Alert, 0, limit)
	for i := len(s.alerts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.alerts[i])
	}
	return out, nil
}

// fakeBroadcaster records every published event.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []dto.WSEvent
}

func (b *fakeBroadcaster) Broadcast(event *dto.WSEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, *event)
}

func (b *fakeBroadcaster) published() []dto.WSEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.WSEvent(nil), b.events...)
}

// fakeObjectStore serves capture bytes by key.
type fakeObjectStore struct {
	objects map[string][]byte
}

func (s *fakeObjectStore) GetObject(_ context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return data, nil
}

// fakeScanner returns a canned device set.
type fakeScanner struct {
	devices []dto.DiscoveredDevice
	err     error
}

func (s *fakeScanner) Scan(_ context.Context) ([]dto.DiscoveredDevice, error) {
	return s.devices, s.err
}
