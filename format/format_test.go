package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("ron"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromPath(t *testing.T) {
	tests := map[string]Format{
		"/etc/app/config.yaml": YAMLFormat,
		"settings.YML":         YAMLFormat,
		"x.json":               JSONFormat,
	}
	for path, want := range tests {
		got, err := FromPath(path)
		if err != nil || got != want {
			t.Errorf("FromPath(%q) = %v, %v", path, got, err)
		}
	}
	if _, err := FromPath("noext"); err == nil {
		t.Error("expected error for path without extension")
	}
}

func TestUnmarshalText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("JSON")); err != nil || f != JSONFormat {
		t.Errorf("got %v, %v", f, err)
	}
	if err := f.UnmarshalText([]byte("toml")); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
	if s := Format(7).String(); s != "<bad format 7>" {
		t.Errorf("got %q", s)
	}
}
