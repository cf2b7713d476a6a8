package node

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	for _, p := range []string{
		"$",
		"$.a",
		"$.a.b[3]",
		"$.'a.b'[0].c",
		"$.a[*]",
		"$..",
		"$..b[*]",
		"$..'a.b'",
		"$.'it\\'s'",
	} {
		got, err := ParsePath(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if s := got.String(); s != p {
			t.Errorf("%s printed as %s", p, s)
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, p := range []string{"", "a", "$.", "$[x]", "$.a[", "$.'open", "$a"} {
		if _, err := ParsePath(p); !errors.Is(err, ErrPath) {
			t.Errorf("%q: got %v", p, err)
		}
	}
}

func TestPathSplit(t *testing.T) {
	parent, last, ok := MustParsePath("$.a[2].b").Split()
	if !ok {
		t.Fatal("no parent")
	}
	if parent.String() != "$.a[2]" || last.Field == nil || *last.Field != "b" {
		t.Errorf("split into %s and %s", parent, last)
	}
	if _, _, ok := RootPath().Split(); ok {
		t.Error("root has a parent")
	}
	p := RootPath().WithField("x").WithIndex(1)
	if p.String() != "$.x[1]" {
		t.Errorf("built %s", p)
	}
}
