package encode

import (
	"strings"

	"github.com/signadot/configurator/node"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind node.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	KindColor
	ValueColor
	MarkColor
	CommentColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range node.Kinds() {
		able := Colorable{Kind: k, Attr: FieldColor}
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = KindColor
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = MarkColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = CommentColor
		colors.Map[able] = color.BlueString
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = node.NumberKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = node.NullKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Kind = node.BoolKind
	colors.Map[able] = color.CyanString

	able.Kind = node.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Kind = node.LiteralKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Kind = node.AnyKind
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k node.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k node.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
