// Package config provides configuration management for the inventory server.
package config

import (
	"errors"
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	// Arrange - Clear all environment variables
	clearEnvVars(t)

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.ServerPort != DefaultServerPort {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, DefaultServerPort)
	}
	if cfg.ServerPort != 2518 {
		t.Errorf("ServerPort = %d, want 2518", cfg.ServerPort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %s, want %s", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, DefaultShutdownTimeout)
	}
	if cfg.MetricsEnabled != DefaultMetricsEnabled {
		t.Errorf("MetricsEnabled = %v, want %v", cfg.MetricsEnabled, DefaultMetricsEnabled)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %s, want empty string", cfg.OTLPEndpoint)
	}
	if cfg.TracingEnabled() {
		t.Error("TracingEnabled() = true, want false by default")
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.WSSendBuffer != DefaultWSSendBuffer {
		t.Errorf("WSSendBuffer = %d, want %d", cfg.WSSendBuffer, DefaultWSSendBuffer)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(*testing.T, *Config)
	}{
		{
			name:    "custom server port",
			envVars: map[string]string{EnvServerPort: "9090"},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.ServerPort != 9090 {
					t.Errorf("ServerPort = %d, want 9090", cfg.ServerPort)
				}
			},
		},
		{
			name:    "custom log level",
			envVars: map[string]string{EnvLogLevel: "debug"},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.LogLevel != "debug" {
					t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
				}
			},
		},
		{
			name:    "custom shutdown timeout",
			envVars: map[string]string{EnvShutdownTimeout: "5s"},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.ShutdownTimeout != 5*time.Second {
					t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
				}
			},
		},
		{
			name:    "metrics disabled",
			envVars: map[string]string{EnvMetricsEnabled: "false"},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.MetricsEnabled {
					t.Error("MetricsEnabled = true, want false")
				}
			},
		},
		{
			name: "tracing endpoint",
			envVars: map[string]string{
				EnvOTLPEndpoint: "collector:4318",
				EnvOTLPInsecure: "false",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.OTLPEndpoint != "collector:4318" {
					t.Errorf("OTLPEndpoint = %s, want collector:4318", cfg.OTLPEndpoint)
				}
				if cfg.OTLPInsecure {
					t.Error("OTLPInsecure = true, want false")
				}
				if !cfg.TracingEnabled() {
					t.Error("TracingEnabled() = false, want true")
				}
			},
		},
		{
			name:    "cors origin list",
			envVars: map[string]string{EnvCORSAllowedOrigins: "http://a.test, http://b.test,,"},
			validate: func(t *testing.T, cfg *Config) {
				want := []string{"http://a.test", "http://b.test"}
				if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
					t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.CORSAllowedOrigins, want)
				}
			},
		},
		{
			name:    "websocket send buffer",
			envVars: map[string]string{EnvWSSendBuffer: "64"},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.WSSendBuffer != 64 {
					t.Errorf("WSSendBuffer = %d, want 64", cfg.WSSendBuffer)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			clearEnvVars(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			// Act
			cfg, err := Load()

			// Assert
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
	}{
		{name: "invalid server port - zero", envVars: map[string]string{EnvServerPort: "0"}, wantErr: ErrInvalidServerPort},
		{name: "invalid server port - negative", envVars: map[string]string{EnvServerPort: "-1"}, wantErr: ErrInvalidServerPort},
		{name: "invalid server port - too high", envVars: map[string]string{EnvServerPort: "65536"}, wantErr: ErrInvalidServerPort},
		{name: "invalid log level", envVars: map[string]string{EnvLogLevel: "invalid"}, wantErr: ErrInvalidLogLevel},
		{name: "invalid shutdown timeout - zero", envVars: map[string]string{EnvShutdownTimeout: "0s"}, wantErr: ErrInvalidShutdownTimeout},
		{name: "blank cors origins", envVars: map[string]string{EnvCORSAllowedOrigins: " , "}, wantErr: ErrInvalidCORSOrigins},
		{name: "zero send buffer", envVars: map[string]string{EnvWSSendBuffer: "0"}, wantErr: ErrInvalidWSSendBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			clearEnvVars(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			// Act
			cfg, err := Load()

			// Assert
			if err == nil {
				t.Fatalf("Load() expected error, got nil")
			}
			if cfg != nil {
				t.Errorf("Load() expected nil config on error, got %+v", cfg)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{name: "server port not a number", envVars: map[string]string{EnvServerPort: "abc"}},
		{name: "shutdown timeout bad format", envVars: map[string]string{EnvShutdownTimeout: "invalid"}},
		{name: "metrics enabled not a bool", envVars: map[string]string{EnvMetricsEnabled: "notabool"}},
		{name: "otlp insecure not a bool", envVars: map[string]string{EnvOTLPInsecure: "maybe"}},
		{name: "send buffer not a number", envVars: map[string]string{EnvWSSendBuffer: "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			clearEnvVars(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			// Act
			cfg, err := Load()

			// Assert
			if err == nil {
				t.Fatalf("Load() expected error, got nil")
			}
			if cfg != nil {
				t.Errorf("Load() expected nil config on error, got %+v", cfg)
			}
		})
	}
}

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		port int
		want string
	}{
		{2518, ":2518"},
		{80, ":80"},
		{65535, ":65535"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := &Config{ServerPort: tt.port}
			if got := cfg.Address(); got != tt.want {
				t.Errorf("Address() = %s, want %s", got, tt.want)
			}
		})
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		EnvServerPort,
		EnvLogLevel,
		EnvShutdownTimeout,
		EnvMetricsEnabled,
		EnvOTLPEndpoint,
		EnvOTLPInsecure,
		EnvCORSAllowedOrigins,
		EnvWSSendBuffer,
	}
	for _, env := range envVars {
		if err := os.Unsetenv(env); err != nil {
			t.Fatalf("failed to unset env var %s: %v", env, err)
		}
	}
}
