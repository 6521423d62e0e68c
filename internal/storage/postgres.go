package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Karthik3116/IOMP/internal/config"
	"github.com/Karthik3116/IOMP/internal/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Cameras ---

func (s *PostgresStore) CreateCamera(ctx context.Context, cam *models.Camera) error {
	cam.ID = uuid.New()
	if !cam.Status.Valid() {
		cam.Status = models.CameraStatusStopped
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cameras (id, name, location, stream_url, status) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		cam.ID, cam.Name, cam.Location, cam.StreamURL, cam.Status,
	).Scan(&cam.CreatedAt)
	if err != nil {
		return fmt.Errorf("create camera: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetCamera(ctx context.Context, id uuid.UUID) (*models.Camera, error) {
	cam := &models.Camera{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, location, stream_url, status, created_at FROM cameras WHERE id = $1`, id,
	).Scan(&cam.ID, &cam.Name, &cam.Location, &cam.StreamURL, &cam.Status, &cam.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get camera: %w", err)
	}
	return cam, nil
}

func (s *PostgresStore) ListCameras(ctx context.Context) ([]models.Camera, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, location, stream_url, status, created_at FROM cameras ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	defer rows.Close()

	var cameras []models.Camera
	for rows.Next() {
		var cam models.Camera
		if err := rows.Scan(&cam.ID, &cam.Name, &cam.Location, &cam.StreamURL, &cam.Status, &cam.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan camera: %w", err)
		}
		cameras = append(cameras, cam)
	}
	return cameras, nil
}

// UpdateCameraStatus persists the desired state unconditionally and returns
// the updated record, or nil if the camera does not exist. Concurrent updates
// to the same camera resolve at the store's natural write ordering.
func (s *PostgresStore) UpdateCameraStatus(ctx context.Context, id uuid.UUID, status models.CameraStatus) (*models.Camera, error) {
	cam := &models.Camera{}
	err := s.pool.QueryRow(ctx,
		`UPDATE cameras SET status = $1 WHERE id = $2 RETURNING id, name, location, stream_url, status, created_at`,
		status, id,
	).Scan(&cam.ID, &cam.Name, &cam.Location, &cam.StreamURL, &cam.Status, &cam.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("update camera status: %w", err)
	}
	return cam, nil
}

func (s *PostgresStore) UpdateCamera(ctx context.Context, id uuid.UUID, name, location, streamURL string) (*models.Camera, error) {
	cam := &models.Camera{}
	err := s.pool.QueryRow(ctx,
		`UPDATE cameras SET name = $1, location = $2, stream_url = $3 WHERE id = $4
		 RETURNING id, name, location, stream_url, status, created_at`,
		name, location, streamURL, id,
	).Scan(&cam.ID, &cam.Name, &cam.Location, &cam.StreamURL, &cam.Status, &cam.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("update camera: %w", err)
	}
	return cam, nil
}

// DeleteCamera removes the record if present. Deleting an absent id is not an
// error; the operation is idempotent.
func (s *PostgresStore) DeleteCamera(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM cameras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete camera: %w", err)
	}
	return nil
}

// --- Alerts ---

func (s *PostgresStore) CreateAlert(ctx context.Context, alert *models.Alert) error {
	alert.ID = uuid.New()
	alert.CreatedAt = time.Now()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO alerts (id, camera_name, detected_class, confidence, image_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		alert.ID, alert.CameraName, alert.DetectedClass, alert.Confidence, alert.ImageKey, alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	alert := &models.Alert{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, camera_name, detected_class, confidence, image_key, created_at FROM alerts WHERE id = $1`, id,
	).Scan(&alert.ID, &alert.CameraName, &alert.DetectedClass, &alert.Confidence, &alert.ImageKey, &alert.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return alert, nil
}

// MaxAlertPageSize bounds every alert listing regardless of the requested limit.
const MaxAlertPageSize = 100

func (s *PostgresStore) ListAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > MaxAlertPageSize {
		limit = MaxAlertPageSize
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, camera_name, detected_class, confidence, image_key, created_at
		 FROM alerts ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var alert models.Alert
		if err := rows.Scan(&alert.ID, &alert.CameraName, &alert.DetectedClass, &alert.Confidence,
			&alert.ImageKey, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}
