package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"RIDESHARE_HTTP_ADDR", "RIDESHARE_SOURCE", "RIDESHARE_DATA_DIR",
		"RIDESHARE_DB_DRIVER", "RIDESHARE_DB_DSN", "RIDESHARE_REDIS_ADDR", "RIDESHARE_LOCK_TTL", "CORS_ALLOWED_ORIGINS",
		"RIDESHARE_DB_MAX_OPEN", "RIDESHARE_DB_MAX_IDLE"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.Source.Kind != SourceCSV || cfg.Source.DataDir != "./support" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DB.Driver != "pgx" || cfg.Redis.Addr != "" || cfg.Dispatch.LockTTL != 5*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DB.MaxOpenConns != 10 || cfg.DB.MaxIdleConns != 5 {
		t.Fatalf("pool defaults: got %d/%d", cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RIDESHARE_SOURCE", "sql")
	t.Setenv("RIDESHARE_DB_DRIVER", "mysql")
	t.Setenv("RIDESHARE_LOCK_TTL", "750ms")
	t.Setenv("RIDESHARE_REDIS_ADDR", "redis:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Source.Kind != SourceSQL || cfg.DB.Driver != "mysql" || cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Dispatch.LockTTL != 750*time.Millisecond {
		t.Fatalf("lock ttl: got %v", cfg.Dispatch.LockTTL)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.HTTP.CORSOrigins, want) {
		t.Fatalf("cors origins: got %v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	t.Setenv("RIDESHARE_SOURCE", "xlsx")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("RIDESHARE_SOURCE", "")
	t.Setenv("RIDESHARE_DB_DRIVER", "")
	t.Setenv("RIDESHARE_LOCK_TTL", "soon")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dispatch.LockTTL != 5*time.Second {
		t.Fatalf("expected default TTL, got %v", cfg.Dispatch.LockTTL)
	}
}

func TestLoadPoolSizes(t *testing.T) {
	t.Setenv("RIDESHARE_SOURCE", "")
	t.Setenv("RIDESHARE_DB_DRIVER", "")
	t.Setenv("RIDESHARE_DB_MAX_OPEN", "25")
	t.Setenv("RIDESHARE_DB_MAX_IDLE", "many")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.MaxOpenConns != 25 {
		t.Fatalf("max open: got %d", cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns != 5 {
		t.Fatalf("max idle should fall back to 5, got %d", cfg.DB.MaxIdleConns)
	}
}
