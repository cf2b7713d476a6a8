package gomap

import (
	"testing"

	"github.com/signadot/configurator/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appConfig struct {
	Zoom  int               `yaml:"zoom"`
	Name  *string           `yaml:"name"`
	Tags  []string          `yaml:"tags"`
	Extra map[string]string `yaml:"extra,omitempty"`
}

func TestDecode(t *testing.T) {
	v := value.Struct(
		value.F("zoom", value.FromI64(7)),
		value.F("name", value.Some(value.FromString("desk"))),
		value.F("tags", value.FromList(value.FromString("a"))),
	)
	var cfg appConfig
	require.NoError(t, Decode(v, &cfg))
	assert.Equal(t, 7, cfg.Zoom)
	require.NotNil(t, cfg.Name)
	assert.Equal(t, "desk", *cfg.Name)
	assert.Equal(t, []string{"a"}, cfg.Tags)
	assert.Nil(t, cfg.Extra)
}

func TestDecodeStrict(t *testing.T) {
	v := value.Struct(value.F("zoom", value.FromI64(1)), value.F("other", value.FromBool(true)))
	var cfg appConfig
	require.NoError(t, Decode(v, &cfg))
	assert.Equal(t, 1, cfg.Zoom)
	assert.Error(t, Decode(v, &cfg, Strict(true)))
}

func TestDecodeEmpty(t *testing.T) {
	cfg := appConfig{Zoom: 3}
	require.NoError(t, Decode(value.Empty, &cfg))
	assert.Equal(t, 3, cfg.Zoom)
}

func TestEncode(t *testing.T) {
	got, err := Encode(appConfig{Zoom: 2, Tags: []string{"x"}})
	require.NoError(t, err)
	want := value.Struct(
		value.F("zoom", value.FromI64(2)),
		value.F("name", value.None()),
		value.F("tags", value.FromList(value.FromString("x"))),
	)
	assert.True(t, want.Equal(got), got.String())
}
