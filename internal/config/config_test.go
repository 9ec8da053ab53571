package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendMemory || cfg.Listen != ":8080" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.StoreConfig().RecordKind != "Event" {
		t.Fatalf("expected default record kind Event, got %q", cfg.StoreConfig().RecordKind)
	}
}

func TestLoad_YAMLThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
listen: ":9000"
backend: cloud
refresh: "*/5 * * * *"
container:
  id: iCloud.com.example.Share
  database: private
cloud:
  base_url: https://records.example.com
  timeout: 30s
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CLOUD_API_TOKEN", "tok-env")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendCloud || cfg.Cloud.BaseURL != "https://records.example.com" {
		t.Fatalf("yaml not applied: %#v", cfg)
	}
	if cfg.Cloud.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.Cloud.Timeout)
	}
	if cfg.Cloud.Token != "tok-env" || cfg.Listen != ":7000" {
		t.Fatalf("env overrides not applied: %#v", cfg)
	}
	sc := cfg.StoreConfig()
	if sc.ContainerID != "iCloud.com.example.Share" || sc.Database != "private" || sc.Environment != "development" {
		t.Fatalf("unexpected store config %#v", sc)
	}
}

func TestLoad_ValidatesBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for postgres without dsn")
	}

	t.Setenv("STORE_BACKEND", "carrier-pigeon")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
