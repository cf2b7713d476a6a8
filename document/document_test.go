package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/internal/testutil"
	"github.com/signadot/configurator/node"
	"github.com/signadot/configurator/schema"
	"github.com/signadot/configurator/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "properties": {
    "zoom": {"type": "integer", "format": "uint8", "default": 3},
    "name": {"type": ["string", "null"], "default": null},
    "mode": {"enum": ["Light", "Dark"]},
    "extra": {"type": "object", "additionalProperties": {"type": "string"}}
  },
  "X_CONFIGURATOR_SOURCE_HOME_PATH": "app/config.yaml"
}`

func loadSchema(t *testing.T) *schema.Root {
	t.Helper()
	r, err := schema.Load([]byte(testSchema))
	require.NoError(t, err)
	return r
}

func assertValue(t *testing.T, want, got value.Value) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestReloadMergesLayers(t *testing.T) {
	sink := &Static{}
	d, err := New("com.example.App", loadSchema(t),
		WithLogger(testutil.NewTestLogger(t)),
		WithSystem(&Static{Value: value.Struct(value.F("zoom", value.FromI64(5)), value.F("mode", value.FromString("Light")))}),
		WithUser(&Static{Value: value.Struct(value.F("mode", value.FromString("Dark")))}),
		WithSink(sink))
	require.NoError(t, err)
	assert.Equal(t, "App", d.Title)

	want := value.Struct(value.F("zoom", value.FromI64(5)), value.F("mode", value.FromString("Dark")))
	assertValue(t, want, d.Full())
	got, ok := d.Value()
	require.True(t, ok)
	assertValue(t, want, got)

	require.NoError(t, d.WriteBack())
	assertValue(t, want, sink.Value)
}

func TestNothingToWrite(t *testing.T) {
	d, err := New("app", loadSchema(t), WithSystem(), WithUser(&Static{}), WithSink(&Static{}))
	require.NoError(t, err)
	_, ok := d.Value()
	assert.False(t, ok)
	assert.ErrorIs(t, d.WriteBack(), ErrNothingToWrite)
}

func TestEditWritesValidTrees(t *testing.T) {
	sink := &Static{}
	d, err := New("app", loadSchema(t),
		WithLogger(testutil.NewTestLogger(t)),
		WithSystem(), WithUser(&Static{}), WithSink(sink))
	require.NoError(t, err)

	require.NoError(t, d.AddEntry(node.MustParsePath("$.extra"), "k"))
	assert.True(t, sink.Value.IsEmpty(), "incomplete tree written: %s", sink.Value)

	require.NoError(t, d.SetString(node.MustParsePath("$.extra.k"), "v"))
	assertValue(t, value.Struct(value.F("extra", value.Struct(value.F("k", value.FromString("v"))))), sink.Value)

	require.NoError(t, d.SelectVariant(node.MustParsePath("$.mode"), 0))
	assertValue(t, value.Struct(
		value.F("mode", value.FromString("Light")),
		value.F("extra", value.Struct(value.F("k", value.FromString("v"))))), sink.Value)

	err = d.SetNumber(node.MustParsePath("$.zoom"), "x")
	assert.ErrorIs(t, err, node.ErrEdit)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	sys := filepath.Join(dir, "etc", "app.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(sys), 0o755))
	require.NoError(t, os.WriteFile(sys, []byte("name: sys\n"), 0o644))

	r := loadSchema(t)
	r.SourcePaths = []string{sys}
	d, err := New("app", r, WithHome(dir), WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	assertValue(t, value.Struct(value.F("name", value.FromString("sys"))), d.System())
	assert.True(t, d.User().IsEmpty())

	require.NoError(t, d.SetNumber(node.MustParsePath("$.zoom"), "7"))
	data, err := os.ReadFile(filepath.Join(dir, "app", "config.yaml"))
	require.NoError(t, err)
	written, err := codec.Decode(data)
	require.NoError(t, err)
	assertValue(t, value.Struct(value.F("zoom", value.FromI64(7)), value.F("name", value.FromString("sys"))), written)

	require.NoError(t, d.Reload())
	assertValue(t, written, d.User())
}

func TestPatch(t *testing.T) {
	sink := &Static{}
	d, err := New("app", loadSchema(t),
		WithSystem(),
		WithUser(&Static{Value: value.Struct(value.F("zoom", value.FromI64(4)))}),
		WithSink(sink))
	require.NoError(t, err)

	require.NoError(t, d.Patch([]byte(`{"mode": "Dark", "zoom": null}`), true))
	assertValue(t, value.Struct(value.F("mode", value.FromString("Dark"))), sink.Value)

	require.NoError(t, d.Patch([]byte(`[{"op": "add", "path": "/extra", "value": {"a": "b"}}]`), false))
	assertValue(t, value.Struct(
		value.F("mode", value.FromString("Dark")),
		value.F("extra", value.Struct(value.F("a", value.FromString("b"))))), sink.Value)

	assert.ErrorIs(t, d.Patch([]byte(`[{"op": "bogus"}]`), false), codec.ErrPatch)
}

func TestNoUserLayer(t *testing.T) {
	r, err := schema.Load([]byte(`{"type": "object", "properties": {"a": {"type": "string"}}}`))
	require.NoError(t, err)
	_, err = New("app", r)
	assert.ErrorIs(t, err, ErrNoUserLayer)
}

func TestOpenAll(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register("com.example.A", loadSchema(t)))
	require.NoError(t, reg.Register("com.example.B", loadSchema(t)))
	bad, err := schema.Load([]byte(`{"type": "object", "properties": {"a": false}}`))
	require.NoError(t, err)
	require.NoError(t, reg.Register("com.example.Bad", bad))

	docs, err := OpenAll(reg,
		WithLogger(testutil.NewTestLogger(t)),
		WithSystem(), WithUser(&Static{}), WithSink(&Static{}),
		WithMasked("com.example.A"))
	assert.ErrorIs(t, err, node.ErrSchema)
	require.Len(t, docs, 1)
	assert.Equal(t, "com.example.B", docs[0].AppID)
}

func TestDecode(t *testing.T) {
	d, err := New("app", loadSchema(t),
		WithSystem(),
		WithUser(&Static{Value: value.Struct(value.F("mode", value.FromString("Dark")))}),
		WithSink(&Static{}))
	require.NoError(t, err)

	var cfg struct {
		Zoom int     `yaml:"zoom"`
		Name *string `yaml:"name"`
		Mode string  `yaml:"mode"`
	}
	require.NoError(t, d.Decode(&cfg))
	assert.Equal(t, 3, cfg.Zoom)
	assert.Nil(t, cfg.Name)
	assert.Equal(t, "Dark", cfg.Mode)
}
