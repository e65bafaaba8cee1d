package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.Retry.MaxAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DRILL_SERVER", "https://drill.example.com")
	t.Setenv("DRILL_TIMEOUT", "5s")
	t.Setenv("DRILL_RETRY_ATTEMPTS", "4")

	cfg := ConfigFromEnv()
	assert.Equal(t, "https://drill.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
}

func TestConfigFromEnv_IgnoresMalformed(t *testing.T) {
	t.Setenv("DRILL_SERVER", "")
	t.Setenv("DRILL_TIMEOUT", "soon")
	t.Setenv("DRILL_RETRY_ATTEMPTS", "many")

	assert.Equal(t, DefaultConfig(), ConfigFromEnv())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ftp scheme", func(c *Config) { c.BaseURL = "ftp://host" }},
		{"no host", func(c *Config) { c.BaseURL = "http://" }},
		{"relative", func(c *Config) { c.BaseURL = "/next" }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
