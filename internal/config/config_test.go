package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "IN", cfg.API.Citizenship)
	assert.Equal(t, "tourism", cfg.API.Purpose)
	assert.Equal(t, 1, cfg.API.Travellers)
	assert.True(t, cfg.API.WithAllSlots)
	assert.True(t, cfg.API.CitiesWise)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Empty(t, cfg.API.BaseURL)
	assert.False(t, cfg.Demo.Force)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("SCHENGEN_API_BASE_URL", "https://api.example.test/v1/")
	t.Setenv("SCHENGEN_API_RESIDENCE", "ae")
	t.Setenv("SCHENGEN_API_TIMEOUT", "3s")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test/v1", cfg.API.BaseURL)
	assert.Equal(t, "AE", cfg.API.Residence)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "schengen.yaml")
	body := "api:\n  base_url: http://localhost:9000\n  travellers: 3\nui:\n  theme: neon\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg, err := Load(New(), p)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.Travellers)
	assert.Equal(t, "neon", cfg.UI.Theme)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	isolate(t)
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	bad := *cfg
	bad.API.Travellers = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Log.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.API.Timeout = 0
	assert.Error(t, bad.Validate())
}

