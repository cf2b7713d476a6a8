package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/configurator/node"
	"github.com/signadot/configurator/schema"
	"github.com/signadot/configurator/value"
)

const testSchema = `{
  "type": "object",
  "properties": {
    "on": {"type": "boolean", "title": "Enabled"},
    "n": {"type": "integer", "format": "uint8", "default": 2},
    "s": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}}
  }
}`

func testTree(t *testing.T) *node.Container {
	t.Helper()
	r, err := schema.Load([]byte(testSchema))
	if err != nil {
		t.Fatal(err)
	}
	c, err := node.Compile(r)
	if err != nil {
		t.Fatal(err)
	}
	v := value.Struct(
		value.F("on", value.FromBool(true)),
		value.F("n", value.FromI64(5)),
		value.F("tags", value.FromList(value.FromString("a"))),
	)
	if err := c.ApplyValue(v, true); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestEncode(t *testing.T) {
	got := MustString(testTree(t))
	want := strings.Join([]string{
		`$: Object {4} *`,
		`  on: Bool true *`,
		`  n: Number u8 5 *`,
		`  s: String -`,
		`  tags: Array [1] *`,
		`    [0]: String "a" *`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEncodeOptions(t *testing.T) {
	c := testTree(t)
	got := MustString(c, Depth(1))
	if got != "$: Object {4} *" {
		t.Errorf("depth 1 gave %q", got)
	}
	got = MustString(c, EncodeDefaults(true), EncodeComments(true))
	for _, ln := range []string{
		"  on: Bool true * # Enabled",
		"  n: Number u8 5 * default 2",
	} {
		if !strings.Contains(got, ln+"\n") {
			t.Errorf("missing %q in\n%s", ln, got)
		}
	}
}

func TestEncodeColors(t *testing.T) {
	colors := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Kind: node.BoolKind, Attr: ValueColor}: func(s string, _ ...any) string { return "<" + s + ">" },
		},
	}
	buf := bytes.NewBuffer(nil)
	if err := Encode(testTree(t), buf, EncodeColors(colors)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "on: Bool <true> *\n") {
		t.Errorf("got\n%s", buf.String())
	}
}
