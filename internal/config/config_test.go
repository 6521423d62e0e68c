package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  name: iomp
  user: iomp
  password: iomp
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("server port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Detector.Endpoint != "http://127.0.0.1:5000" {
		t.Errorf("detector endpoint = %q", cfg.Detector.Endpoint)
	}
	if cfg.Detector.Timeout != time.Second {
		t.Errorf("detector timeout = %v, want 1s", cfg.Detector.Timeout)
	}
	if cfg.Discovery.Port != 8080 {
		t.Errorf("discovery port = %d, want 8080", cfg.Discovery.Port)
	}
	if cfg.Discovery.ProbeTimeout != 500*time.Millisecond {
		t.Errorf("probe timeout = %v, want 500ms", cfg.Discovery.ProbeTimeout)
	}
	if cfg.Discovery.StreamPath != "/video" {
		t.Errorf("stream path = %q, want /video", cfg.Discovery.StreamPath)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.NATS.URL != "" {
		t.Errorf("nats url = %q, want disabled by default", cfg.NATS.URL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 4000
database:
  host: localhost
`)

	t.Setenv("IOMP_SERVER_PORT", "9999")
	t.Setenv("IOMP_DB_HOST", "db.internal")
	t.Setenv("IOMP_DETECTOR_ENDPOINT", "http://detector:5000")
	t.Setenv("IOMP_NATS_URL", "nats://broker:4222")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("server port = %d, want env override 9999", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q", cfg.Database.Host)
	}
	if cfg.Detector.Endpoint != "http://detector:5000" {
		t.Errorf("detector endpoint = %q", cfg.Detector.Endpoint)
	}
	if cfg.NATS.URL != "nats://broker:4222" {
		t.Errorf("nats url = %q", cfg.NATS.URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: 5432, Name: "iomp", User: "u", Password: "p"}
	want := "postgres://u:p@localhost:5432/iomp?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}
