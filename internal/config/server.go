package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ServerConfig は API サーバーの基本設定。
type ServerConfig struct {
	Port            string
	GinMode         string
	LogLevel        string
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	// 0 は無制限。生成の途中でサーバー側から切らないための既定値。
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadServerConfigFromEnv は環境変数から ServerConfig を作る。
func LoadServerConfigFromEnv() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:            getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "release"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 0),
		IdleTimeout:     getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}
	return cfg, cfg.Validate()
}

func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: SERVER_PORT is required")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: GIN_MODE must be debug, release or test: %q", c.GinMode)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: SHUTDOWN_TIMEOUT must be positive")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		return fmt.Errorf("config: http timeouts must not be negative")
	}
	return nil
}

// Addr は http.Server に渡すアドレス。
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// Fields は起動ログ用の項目。
func (c *ServerConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("gin_mode", c.GinMode),
		zap.String("log_level", c.LogLevel),
		zap.Duration("shutdown_timeout", c.ShutdownTimeout),
		zap.Duration("read_timeout", c.ReadTimeout),
		zap.Duration("write_timeout", c.WriteTimeout),
		zap.Duration("idle_timeout", c.IdleTimeout),
	}
}
