package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "30s", cfg.Gateway.Timeout)
	assert.Equal(t, "regform_session", cfg.Session.CookieName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  mode: production
gateway:
  url: https://script.example.com/exec
  timeout: 5s
logging:
  format: text
`)
	t.Setenv("GATEWAY_TIMEOUT", "0s")
	t.Setenv("SESSION_SECURE_COOKIE", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://script.example.com/exec", cfg.Gateway.URL)
	assert.Equal(t, "0s", cfg.Gateway.Timeout)
	assert.True(t, cfg.Session.SecureCookie)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"bad yaml", "server: [", nil},
		{"bad timeout", "gateway:\n  timeout: soon\n", nil},
		{"negative ttl", "session:\n  idle_ttl: -1h\n", nil},
		{"ftp gateway", "gateway:\n  url: ftp://example.com/data\n", nil},
		{"bad bool env", "", map[string]string{"SESSION_SECURE_COOKIE": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
