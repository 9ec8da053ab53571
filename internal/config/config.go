package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"cloud-events-sync/internal/domain/events"
	"cloud-events-sync/internal/platform/env"
	"cloud-events-sync/internal/platform/logger"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendCloud    = "cloud"
)

// ContainerConfig identifica el contenedor remoto. Se lee una vez al inicio.
type ContainerConfig struct {
	ID          string `yaml:"id"`
	Environment string `yaml:"environment"` // development | production
	Database    string `yaml:"database"`    // public | private
	RecordKind  string `yaml:"record_kind"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type CloudConfig struct {
	BaseURL     string `yaml:"base_url"`
	Token       string `yaml:"token"`
	TokenHeader string `yaml:"token_header"`
	// Timeout 0 = sin timeout en las llamadas al store.
	Timeout time.Duration `yaml:"timeout"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type Config struct {
	Listen  string `yaml:"listen"`
	Backend string `yaml:"backend"`

	// SeedSampleEvents siembra eventos de ejemplo (sólo backend memory).
	SeedSampleEvents bool `yaml:"seed_sample_events"`

	// RefreshCron es un schedule cron ("*/5 * * * *"). Vacío = sin refresh periódico.
	RefreshCron string `yaml:"refresh"`

	Container ContainerConfig `yaml:"container"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Cloud     CloudConfig     `yaml:"cloud"`
	NATS      NATSConfig      `yaml:"nats"`
	Log       LogConfig       `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Listen:  ":8080",
		Backend: BackendMemory,
		Container: ContainerConfig{
			ID:          "iCloud.com.example.CloudEvents",
			Environment: "development",
			Database:    "public",
			RecordKind:  events.RecordKind,
		},
		NATS: NATSConfig{Subject: "events.state"},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// Load arma la config: defaults, archivo YAML (si existe) y overrides de env.
// Un path vacío o inexistente no es error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if p := strings.TrimSpace(path); p != "" {
		b, err := os.ReadFile(p)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", p, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// sin archivo: defaults + env
		default:
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
	}

	cfg.applyEnv()
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := env.String("PORT", ""); port != "" {
		c.Listen = ":" + port
	}
	c.Backend = env.String("STORE_BACKEND", c.Backend)
	c.SeedSampleEvents = env.Bool("SEED_SAMPLE_EVENTS", c.SeedSampleEvents)
	c.RefreshCron = env.String("REFRESH_CRON", c.RefreshCron)

	c.Container.ID = env.String("CONTAINER_ID", c.Container.ID)
	c.Container.Environment = env.String("CLOUD_ENVIRONMENT", c.Container.Environment)
	c.Container.Database = env.String("CLOUD_DATABASE", c.Container.Database)

	c.Postgres.DSN = env.String("DB_DSN", c.Postgres.DSN)

	c.Cloud.BaseURL = env.String("CLOUD_BASE_URL", c.Cloud.BaseURL)
	c.Cloud.Token = env.String("CLOUD_API_TOKEN", c.Cloud.Token)
	c.Cloud.TokenHeader = env.String("CLOUD_TOKEN_HEADER", c.Cloud.TokenHeader)
	c.Cloud.Timeout = env.Duration("CLOUD_TIMEOUT", c.Cloud.Timeout)

	c.NATS.URL = env.String("NATS_URL", c.NATS.URL)
	c.NATS.Subject = env.String("NATS_SUBJECT", c.NATS.Subject)

	c.Log.Level = env.String("LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.String("LOG_FORMAT", c.Log.Format)
	c.Log.File = env.String("LOG_FILE", c.Log.File)
}

// Normalize completa valores vacíos con defaults.
func (c *Config) Normalize() {
	d := Default()
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = d.Listen
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.Container.Environment == "" {
		c.Container.Environment = d.Container.Environment
	}
	if c.Container.Database == "" {
		c.Container.Database = d.Container.Database
	}
	if c.Container.RecordKind == "" {
		c.Container.RecordKind = events.RecordKind
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = d.NATS.Subject
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return errors.New("config: postgres backend requires postgres.dsn (DB_DSN)")
		}
	case BackendCloud:
		if strings.TrimSpace(c.Cloud.BaseURL) == "" {
			return errors.New("config: cloud backend requires cloud.base_url (CLOUD_BASE_URL)")
		}
		if strings.TrimSpace(c.Container.ID) == "" {
			return errors.New("config: cloud backend requires container.id (CONTAINER_ID)")
		}
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	return nil
}

// StoreConfig es el valor de configuración que recibe events.NewStore.
func (c *Config) StoreConfig() events.StoreConfig {
	return events.StoreConfig{
		ContainerID: c.Container.ID,
		Environment: c.Container.Environment,
		Database:    c.Container.Database,
		RecordKind:  c.Container.RecordKind,
	}
}

func (c *Config) LoggerOptions(app string) logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
		App:    app,
		File:   c.Log.File,
	}
}
