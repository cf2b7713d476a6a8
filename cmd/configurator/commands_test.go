package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/internal/testutil"
	"github.com/signadot/configurator/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "title": "App",
  "properties": {
    "zoom": {"type": "integer", "format": "uint8", "default": 3},
    "name": {"type": ["string", "null"], "default": null},
    "tags": {"type": "array", "items": {"type": "string"}}
  }
}`

type testEnv struct {
	dir  string
	main *MainConfig
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := e.path(name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (e *testEnv) readValue(t *testing.T, name string) value.Value {
	t.Helper()
	d, err := os.ReadFile(e.path(name))
	require.NoError(t, err)
	v, err := codec.Decode(d)
	require.NoError(t, err)
	return v
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{dir: t.TempDir()}
	e.main = &MainConfig{
		Settings: &Settings{
			Schema: e.writeFile(t, "app.json", testSchema),
			System: []string{e.writeFile(t, "system.yaml", "name: sys\n")},
			User:   e.writeFile(t, "user.yaml", "zoom: 7\n"),
		},
		log: testutil.NewTestLogger(t),
	}
	return e
}

func TestCompile(t *testing.T) {
	e := newTestEnv(t)
	buf := bytes.NewBuffer(nil)
	require.NoError(t, runCompile(&CompileConfig{MainConfig: e.main, Defaults: true}, buf))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "$: Object {3} # App", lines[0])
	assert.Contains(t, buf.String(), "  zoom: Number u8 3 default 3\n")
}

func TestCompileNoSchema(t *testing.T) {
	cfg := &CompileConfig{MainConfig: &MainConfig{Settings: &Settings{}}}
	assert.Error(t, runCompile(cfg, bytes.NewBuffer(nil)))
}

func TestShowLayers(t *testing.T) {
	e := newTestEnv(t)
	for _, tc := range []struct {
		layer string
		want  string
	}{
		{"system", "name: sys\n"},
		{"user", "zoom: 7\n"},
		{"full", "name: sys\nzoom: 7\n"},
	} {
		buf := bytes.NewBuffer(nil)
		require.NoError(t, runShow(&ShowConfig{MainConfig: e.main, Layer: tc.layer}, buf))
		assert.Equal(t, tc.want, buf.String(), tc.layer)
	}
	assert.Error(t, runShow(&ShowConfig{MainConfig: e.main, Layer: "other"}, bytes.NewBuffer(nil)))
}

func TestShowValues(t *testing.T) {
	e := newTestEnv(t)
	buf := bytes.NewBuffer(nil)
	require.NoError(t, runShow(&ShowConfig{MainConfig: e.main, Values: true}, buf))
	assert.Equal(t, "zoom: 7\nname: sys\n", buf.String())

	buf.Reset()
	require.NoError(t, runShow(&ShowConfig{MainConfig: e.main}, buf))
	assert.Contains(t, buf.String(), "  zoom: Number u8 7 * default 3\n")
}

func TestShowExpand(t *testing.T) {
	e := newTestEnv(t)
	e.writeFile(t, "user.yaml", "zoom: 7\ntags: [\"zoom is $[zoom]\"]\n")
	buf := bytes.NewBuffer(nil)
	require.NoError(t, runShow(&ShowConfig{MainConfig: e.main, Layer: "user", Expand: true}, buf))
	assert.Contains(t, buf.String(), "zoom is 7")
}

func TestWrite(t *testing.T) {
	e := newTestEnv(t)
	buf := bytes.NewBuffer(nil)
	require.NoError(t, runWrite(&WriteConfig{MainConfig: e.main, DryRun: true}, buf))
	assert.Equal(t, "+ $.name: \"sys\"\n", buf.String())
	assert.True(t, e.readValue(t, "user.yaml").Equal(value.Struct(value.F("zoom", value.FromI64(7)))))

	require.NoError(t, runWrite(&WriteConfig{MainConfig: e.main}, buf))
	want := value.Struct(value.F("zoom", value.FromI64(7)), value.F("name", value.FromString("sys")))
	got := e.readValue(t, "user.yaml")
	assert.True(t, want.Equal(got), got.String())
}

func TestWriteElsewhere(t *testing.T) {
	e := newTestEnv(t)
	e.main.Settings.Write = e.path("out/written.json")
	require.NoError(t, runWrite(&WriteConfig{MainConfig: e.main}, bytes.NewBuffer(nil)))
	d, err := os.ReadFile(e.path("out/written.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(d), "{"), string(d))
}

func TestSetPatch(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, runSet(&SetConfig{MainConfig: e.main, Merge: true}, nil, `{"zoom": 9}`))
	got := e.readValue(t, "user.yaml")
	zoom, _ := got.Lookup("zoom")
	assert.True(t, zoom.Equal(value.FromI64(9)), got.String())
	name, _ := got.Lookup("name")
	assert.True(t, name.Equal(value.FromString("sys")), got.String())

	require.NoError(t, runSet(&SetConfig{MainConfig: e.main}, nil, `[{"op": "remove", "path": "/name"}]`))
	got = e.readValue(t, "user.yaml")
	_, ok := got.Lookup("name")
	assert.False(t, ok, got.String())
}

func TestSetAt(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, runSet(&SetConfig{MainConfig: e.main, At: "$.tags"}, nil, "[a, b]"))
	got := e.readValue(t, "user.yaml")
	tags, _ := got.Lookup("tags")
	assert.True(t, tags.Equal(value.FromList(value.FromString("a"), value.FromString("b"))), got.String())

	assert.Error(t, runSet(&SetConfig{MainConfig: e.main, At: "tags"}, nil, "[a]"))
}

func TestSetFromFile(t *testing.T) {
	e := newTestEnv(t)
	cfg := &SetConfig{MainConfig: e.main, Merge: true, File: true}
	require.NoError(t, runSet(cfg, strings.NewReader(`{"zoom": 1}`), "-"))
	zoom, _ := e.readValue(t, "user.yaml").Lookup("zoom")
	assert.True(t, zoom.Equal(value.FromI64(1)))
}

func TestMerge(t *testing.T) {
	e := newTestEnv(t)
	a := e.writeFile(t, "a.yaml", "x: 1\ny: {p: 1, q: 2}\n")
	b := e.writeFile(t, "b.yaml", "y: {q: 3}\nz: true\n")
	buf := bytes.NewBuffer(nil)
	require.NoError(t, runMerge(&MergeConfig{MainConfig: e.main}, buf, nil, []string{a, b}))
	got, err := codec.Decode(buf.Bytes())
	require.NoError(t, err)
	want := value.Struct(
		value.F("x", value.FromI64(1)),
		value.F("y", value.Struct(value.F("p", value.FromI64(1)), value.F("q", value.FromI64(3)))),
		value.F("z", value.FromBool(true)),
	)
	assert.True(t, want.Equal(got), got.String())
}

func TestDiff(t *testing.T) {
	e := newTestEnv(t)
	a := e.writeFile(t, "a.yaml", "x: 1\ny: 2\n")
	b := e.writeFile(t, "b.yaml", "x: 1\ny: 3\n")
	cfg := &DiffConfig{MainConfig: e.main}

	buf := bytes.NewBuffer(nil)
	differs, err := runDiff(cfg, buf, nil, a, b)
	require.NoError(t, err)
	assert.True(t, differs)
	assert.Equal(t, "- $.y: 2\n+ $.y: 3\n", buf.String())

	buf.Reset()
	cfg.Reverse = true
	_, err = runDiff(cfg, buf, nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, "- $.y: 3\n+ $.y: 2\n", buf.String())

	buf.Reset()
	differs, err = runDiff(cfg, buf, strings.NewReader("x: 1\ny: 2\n"), a, "-")
	require.NoError(t, err)
	assert.False(t, differs)
	assert.Empty(t, buf.String())
}

func TestGet(t *testing.T) {
	e := newTestEnv(t)
	cfg := &GetConfig{MainConfig: e.main}

	buf := bytes.NewBuffer(nil)
	require.NoError(t, runGet(cfg, buf, nil, "name + '-x'", nil))
	assert.Equal(t, "sys-x\n", buf.String())

	a := e.writeFile(t, "a.yaml", "n: 2\n")
	b := e.writeFile(t, "b.yaml", "n: 5\n")
	buf.Reset()
	require.NoError(t, runGet(cfg, buf, nil, "n * 2", []string{a, b}))
	assert.Equal(t, "4\n---\n10\n", buf.String())

	assert.Error(t, runGet(cfg, buf, nil, "n +", []string{a}))
}
