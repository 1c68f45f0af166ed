package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultConfig(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestValidate_FullConfig(t *testing.T) {
	cfg := Default()
	cfg.SeedGroups = []string{"GTS", "Soporte"}
	cfg.Holidays = []Holiday{
		{Name: "Año nuevo", RRule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"},
		{Name: "Fiestas Patrias", RRule: "FREQ=YEARLY;BYMONTH=9;BYMONTHDAY=18,19"},
	}
	cfg.Session.Variant = "assignments"

	assert.NoError(t, Validate(cfg))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"export name without json", func(c *Config) { c.Export.FileName = "salida.txt" }},
		{"export name empty", func(c *Config) { c.Export.FileName = "" }},
		{"unknown variant", func(c *Config) { c.Session.Variant = "monthly" }},
		{"blank seed group", func(c *Config) { c.SeedGroups = []string{""} }},
		{"duplicate seed group", func(c *Config) { c.SeedGroups = []string{"GTS", " gts"} }},
		{"holiday without name", func(c *Config) { c.Holidays = []Holiday{{RRule: "FREQ=YEARLY"}} }},
		{"invalid rrule", func(c *Config) { c.Holidays = []Holiday{{Name: "x", RRule: "FREQ=SOMETIMES"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestLoadFromPath_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "onboarding_config.yaml")
	content := `server:
  port: 9090
paste:
  extendedDelimiters: true
session:
  ttl: 30m
seedGroups:
  - GTS
  - Soporte
holidays:
  - name: Navidad
    rrule: FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.True(t, cfg.Paste.ExtendedDelimiters)
	assert.False(t, cfg.Paste.SkipHeaderRows)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "ingreso_geovictoria.json", cfg.Export.FileName)
	assert.Equal(t, []string{"GTS", "Soporte"}, cfg.SeedGroups)
	require.Len(t, cfg.Holidays, 1)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
}

func TestLoadFromPath_Invalid(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("server: [unclosed"), 0644))
	_, err := LoadFromPath(badYAML)
	assert.Error(t, err)

	badPort := filepath.Join(dir, "port.yaml")
	require.NoError(t, os.WriteFile(badPort, []byte("server:\n  port: -1\n"), 0644))
	_, err = LoadFromPath(badPort)
	assert.Error(t, err)

	_, err = LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadWithEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)

	_, err := LoadWithEnv("test")
	assert.ErrorIs(t, err, ErrConfigNotFound)

	require.NoError(t, os.WriteFile("onboarding_config.yaml", []byte("server:\n  port: 8000\n"), 0644))
	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)

	require.NoError(t, os.WriteFile("onboarding_config.test.yaml", []byte("server:\n  port: 8001\n"), 0644))
	cfg, err = LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.Server.Port)

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
