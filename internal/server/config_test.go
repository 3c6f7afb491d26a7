package server

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.HTTP.TLSEnabled())
	assert.Equal(t, DefaultShutdownTimeout, cfg.HTTP.ShutdownTimeout)
}

func TestConfigValidate_Port(t *testing.T) {
	cfg := DefaultConfig()

	cfg.HTTP.Port = 0
	assert.NoError(t, cfg.Validate())

	cfg.HTTP.Port = 65536
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")

	cfg.HTTP.Port = -1
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_TLSPair(t *testing.T) {
	cfg := DefaultConfig()

	cfg.HTTP.CertFile = "cert.pem"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key_file")

	cfg.HTTP.KeyFile = "key.pem"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.HTTP.TLSEnabled())
}

func TestConfigValidate_NegativeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTP.IdleTimeout = -1

	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_TrustedProxies(t *testing.T) {
	cfg := DefaultConfig()

	cfg.HTTP.TrustedProxies = []string{"10.0.0.1", "172.16.0.0/12", "::1"}
	assert.NoError(t, cfg.Validate())

	cfg.HTTP.TrustedProxies = []string{"10.0.0.0/33"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trusted_proxies")
}

func TestConfigValidate_RateLimit(t *testing.T) {
	cfg := DefaultConfig()

	cfg.RateLimit = "100-S"
	assert.NoError(t, cfg.Validate())

	cfg.RateLimit = "often"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit")
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := LogConfig{Level: tt.level}
			got, err := cfg.SlogLevel()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
