package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodrecon/internal/reconcile/model"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, 32, cfg.SessionCacheSize)
	assert.Equal(t, model.DefaultParams(), cfg.Params())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOW_ORIGINS", "http://a.local,http://b.local")
	t.Setenv("WASTE_ALLOWANCE", "0.05")
	t.Setenv("SHORTFALL_FACTOR", "0.9")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowOrigins)
	assert.InDelta(t, 0.05, cfg.Params().WasteAllowance, 1e-9)
	assert.InDelta(t, 0.9, cfg.Params().ShortfallFactor, 1e-9)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: 7000\nlog_level: debug\ntolerances:\n  time_dead_band: 0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.1, cfg.Tolerances.TimeDeadBand, 1e-9)
	assert.InDelta(t, 0.03, cfg.Tolerances.WasteAllowance, 1e-9, "missing keys keep defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestSetupLogger_Level(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	SetupLogger(Config{LogLevel: "warn"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetupLogger(Config{LogLevel: "bogus"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
