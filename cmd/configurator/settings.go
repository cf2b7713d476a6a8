package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CONFIGURATOR_"

// Settings are the resolved inputs of a command.
type Settings struct {
	Schema   string   `koanf:"schema"`
	App      string   `koanf:"app"`
	System   []string `koanf:"system"`
	User     string   `koanf:"user"`
	Write    string   `koanf:"write"`
	Format   string   `koanf:"format"`
	Strict   bool     `koanf:"strict"`
	LogLevel string   `koanf:"log_level"`
}

// LoadSettings layers, from lowest to highest precedence: defaults, the
// settings file if any, CONFIGURATOR_* environment variables and flags.
func LoadSettings(settingsFile string, flags map[string]any) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"format":    "",
		"strict":    false,
		"log_level": "warn",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if settingsFile != "" {
		if err := k.Load(file.Provider(settingsFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", settingsFile, err)
		}
	}

	// CONFIGURATOR_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if len(flags) != 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	return &s, nil
}
