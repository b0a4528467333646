package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesKeepOtherDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[log]
level = "debug"

[server]
rate_limit = 25.5

[emulator]
default_region = "eu-west-1"
seed_file = "fixtures/contacts.yaml"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, DefaultHTTPAddr, cfg.Server.Addr)
	assert.InDelta(t, 25.5, cfg.Server.RateLimit, 0.0001)
	assert.Equal(t, DefaultAccountID, cfg.Emulator.AccountID)
	assert.Equal(t, "eu-west-1", cfg.Emulator.DefaultRegion)
	assert.Equal(t, "fixtures/contacts.yaml", cfg.Emulator.SeedFile)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{"empty account", "[emulator]\naccount_id = \"\"\n"},
		{"negative rate", "[server]\nrate_limit = -1.0\n"},
		{"bad toml", "[server\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
