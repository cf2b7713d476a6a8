package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("", nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", s.LogLevel)
	assert.False(t, s.Strict)
	assert.Empty(t, s.Format)
}

func TestLoadSettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`schema: file.json
user: file-user.yaml
system:
  - a.yaml
  - b.yaml
format: json
log_level: info
`), 0o644))
	t.Setenv("CONFIGURATOR_USER", "env-user.yaml")
	t.Setenv("CONFIGURATOR_STRICT", "true")

	s, err := LoadSettings(file, map[string]any{
		"schema":    "flag.json",
		"log_level": "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, "flag.json", s.Schema)
	assert.Equal(t, "env-user.yaml", s.User)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, s.System)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Strict)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(os.Stderr, "debug")
	assert.NoError(t, err)
	_, err = newLogger(os.Stderr, "chatty")
	assert.Error(t, err)
}
