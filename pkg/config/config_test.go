package config

import (
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("techstock")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.ServiceName != "techstock" {
		t.Fatalf("service name: %s", cfg.ServiceName)
	}
	if cfg.DB.Host != "localhost" || cfg.DB.Port != "5432" {
		t.Fatalf("db defaults: %s:%s", cfg.DB.Host, cfg.DB.Port)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("server port default: %s", cfg.Server.Port)
	}
	if cfg.Metrics.Prefix != "techstock" {
		t.Fatalf("metrics prefix default: %s", cfg.Metrics.Prefix)
	}
	if cfg.SKU.ServiceURL != "" {
		t.Fatalf("sku url default should be empty, got %s", cfg.SKU.ServiceURL)
	}
	if cfg.SKU.Timeout != 10*time.Second {
		t.Fatalf("sku timeout default: %s", cfg.SKU.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_LOG_LEVEL", "warn")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SKU_SERVICE_URL", "http://sku.internal")

	cfg, err := Load("techstock")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.DB.Host != "db.internal" {
		t.Fatalf("db host: %s", cfg.DB.Host)
	}
	if cfg.DB.MaxOpenConns != 25 {
		t.Fatalf("max open conns: %d", cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("conn lifetime: %s", cfg.DB.ConnMaxLifetime)
	}
	if cfg.DB.LogLevel != logger.Warn {
		t.Fatalf("db log level: %v", cfg.DB.LogLevel)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("server port: %s", cfg.Server.Port)
	}
	if cfg.SKU.ServiceURL != "http://sku.internal" {
		t.Fatalf("sku url: %s", cfg.SKU.ServiceURL)
	}
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=d sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Fatalf("dsn: got %q want %q", got, want)
	}
}
