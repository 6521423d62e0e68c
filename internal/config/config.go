package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	MinIO     MinIOConfig     `yaml:"minio"`
	NATS      NATSConfig      `yaml:"nats"`
	Detector  DetectorConfig  `yaml:"detector"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int    `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// NATSConfig points at an optional broker for mirroring alert events to
// downstream collaborators. An empty URL disables the mirror entirely.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// DetectorConfig locates the external detection service's control endpoint.
type DetectorConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DiscoveryConfig controls the subnet scan: which control port identifies a
// camera-capable device, how long each probe may take, and the path suffix
// appended when synthesizing a device's stream URL.
type DiscoveryConfig struct {
	Port         int           `yaml:"port"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	StreamPath   string        `yaml:"stream_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from YAML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.Detector.Endpoint == "" {
		cfg.Detector.Endpoint = "http://127.0.0.1:5000"
	}
	if cfg.Detector.Timeout == 0 {
		cfg.Detector.Timeout = 1 * time.Second
	}
	if cfg.Discovery.Port == 0 {
		cfg.Discovery.Port = 8080
	}
	if cfg.Discovery.ProbeTimeout == 0 {
		cfg.Discovery.ProbeTimeout = 500 * time.Millisecond
	}
	if cfg.Discovery.StreamPath == "" {
		cfg.Discovery.StreamPath = "/video"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IOMP_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("IOMP_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("IOMP_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("IOMP_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("IOMP_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("IOMP_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("IOMP_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("IOMP_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("IOMP_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("IOMP_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("IOMP_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("IOMP_DETECTOR_ENDPOINT"); v != "" {
		cfg.Detector.Endpoint = v
	}
	if v := os.Getenv("IOMP_DISCOVERY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Discovery.Port = port
		}
	}
}
