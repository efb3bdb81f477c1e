package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HRMS_API_BASE_URL", "http://localhost:8000/api/")
	t.Setenv("APP_PORT", "")
	t.Setenv("HRMS_API_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("APP_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.HRMSAPI.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.HRMSAPI.Timeout)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HRMS_API_BASE_URL", "https://hrms.example.com/api")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HRMS_API_TIMEOUT", "15s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 15*time.Second, cfg.HRMSAPI.Timeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing base url", map[string]string{"HRMS_API_BASE_URL": ""}},
		{"relative base url", map[string]string{"HRMS_API_BASE_URL": "/api"}},
		{"bad port", map[string]string{"HRMS_API_BASE_URL": "http://x.io", "APP_PORT": "eighty"}},
		{"port out of range", map[string]string{"HRMS_API_BASE_URL": "http://x.io", "APP_PORT": "70000"}},
		{"bad timeout", map[string]string{"HRMS_API_BASE_URL": "http://x.io", "HRMS_API_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"HRMS_API_BASE_URL": "http://x.io", "HRMS_API_TIMEOUT": "-1s"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("APP_PORT", "")
			t.Setenv("HRMS_API_TIMEOUT", "")
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := &Config{App: AppConfig{LogLevel: in}}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
