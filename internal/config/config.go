// Package config provides configuration management for the inventory server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultServerPort         = 2518
	DefaultLogLevel           = "info"
	DefaultShutdownTimeout    = 30 * time.Second
	DefaultMetricsEnabled     = true
	DefaultOTLPInsecure       = true
	DefaultCORSAllowedOrigins = "*"
	DefaultWSSendBuffer       = 16
)

// Environment variable names.
const (
	EnvServerPort         = "APP_SERVER_PORT"
	EnvLogLevel           = "APP_LOG_LEVEL"
	EnvShutdownTimeout    = "APP_SHUTDOWN_TIMEOUT"
	EnvMetricsEnabled     = "APP_METRICS_ENABLED"
	EnvOTLPEndpoint       = "APP_OTLP_ENDPOINT"
	EnvOTLPInsecure       = "APP_OTLP_INSECURE"
	EnvCORSAllowedOrigins = "APP_CORS_ALLOWED_ORIGINS"
	EnvWSSendBuffer       = "APP_WS_SEND_BUFFER"
)

// Config holds the application configuration.
type Config struct {
	// Server settings.
	ServerPort      int
	LogLevel        string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool

	// Tracing settings. Tracing is off when OTLPEndpoint is empty.
	OTLPEndpoint string
	OTLPInsecure bool

	// CORSAllowedOrigins lists origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string

	// WSSendBuffer is the number of pending notifications queued per WebSocket client.
	WSSendBuffer int
}

// Validation errors.
var (
	ErrInvalidServerPort      = errors.New("server port must be between 1 and 65535")
	ErrInvalidLogLevel        = errors.New("log level must be one of: debug, info, warn, error")
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must be positive")
	ErrInvalidCORSOrigins     = errors.New("at least one CORS origin must be allowed")
	ErrInvalidWSSendBuffer    = errors.New("websocket send buffer must be at least 1")
)

// Load reads configuration from environment variables with defaults.
// Environment variables have priority over default values.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:         DefaultServerPort,
		LogLevel:           DefaultLogLevel,
		ShutdownTimeout:    DefaultShutdownTimeout,
		MetricsEnabled:     DefaultMetricsEnabled,
		OTLPEndpoint:       "",
		OTLPInsecure:       DefaultOTLPInsecure,
		CORSAllowedOrigins: splitList(DefaultCORSAllowedOrigins),
		WSSendBuffer:       DefaultWSSendBuffer,
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration values from environment variables.
func (c *Config) loadFromEnv() error {
	if err := c.loadServerEnv(); err != nil {
		return err
	}

	if err := c.loadTracingEnv(); err != nil {
		return err
	}

	return c.loadRealtimeEnv()
}

// loadServerEnv loads server-related environment variables.
func (c *Config) loadServerEnv() error {
	if val := os.Getenv(EnvServerPort); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvServerPort, err)
		}
		c.ServerPort = port
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = val
	}

	if val := os.Getenv(EnvShutdownTimeout); val != "" {
		timeout, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvShutdownTimeout, err)
		}
		c.ShutdownTimeout = timeout
	}

	if val := os.Getenv(EnvMetricsEnabled); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMetricsEnabled, err)
		}
		c.MetricsEnabled = enabled
	}

	if val := os.Getenv(EnvCORSAllowedOrigins); val != "" {
		c.CORSAllowedOrigins = splitList(val)
	}

	return nil
}

// loadTracingEnv loads OpenTelemetry exporter settings.
func (c *Config) loadTracingEnv() error {
	if val := os.Getenv(EnvOTLPEndpoint); val != "" {
		c.OTLPEndpoint = val
	}

	if val := os.Getenv(EnvOTLPInsecure); val != "" {
		insecure, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvOTLPInsecure, err)
		}
		c.OTLPInsecure = insecure
	}

	return nil
}

// loadRealtimeEnv loads WebSocket notification settings.
func (c *Config) loadRealtimeEnv() error {
	if val := os.Getenv(EnvWSSendBuffer); val != "" {
		size, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvWSSendBuffer, err)
		}
		c.WSSendBuffer = size
	}

	return nil
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return ErrInvalidServerPort
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return ErrInvalidLogLevel
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	if len(c.CORSAllowedOrigins) == 0 {
		return ErrInvalidCORSOrigins
	}

	if c.WSSendBuffer < 1 {
		return ErrInvalidWSSendBuffer
	}

	return nil
}

// TracingEnabled reports whether spans should be exported.
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// Address returns the server address in host:port format.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// splitList splits a comma separated value, dropping blanks.
func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
