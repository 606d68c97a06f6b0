package config

import (
	"testing"
	"time"
)

func TestLoadServerConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "GIN_MODE", "LOG_LEVEL", "SHUTDOWN_TIMEOUT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadServerConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
	if cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second || cfg.ReadTimeout != 15*time.Second || cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
	if cfg.WriteTimeout != 0 {
		t.Fatalf("write timeout は既定で無制限であるべきです: %s", cfg.WriteTimeout)
	}
}

func TestLoadServerConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")
	t.Setenv("HTTP_WRITE_TIMEOUT", "2m")
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	cfg, err := LoadServerConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.GinMode != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("秒数のみの指定を解釈できていません: %s", cfg.ShutdownTimeout)
	}
	if cfg.WriteTimeout != 2*time.Minute {
		t.Fatalf("unexpected write timeout: %s", cfg.WriteTimeout)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("不正値は既定値に戻るべきです: %s", cfg.ReadTimeout)
	}
}

func TestServerConfig_Validate(t *testing.T) {
	t.Setenv("GIN_MODE", "production")
	if _, err := LoadServerConfigFromEnv(); err == nil {
		t.Fatal("未知の GIN_MODE はエラーになるべきです")
	}
}
