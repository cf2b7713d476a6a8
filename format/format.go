// Package format names the text encodings configuration layers are stored
// in. Which one a layer uses comes from the schema's format key, the
// settings of the command line tool or the file extension, in that order.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

// names lists the spellings accepted for each format, canonical first.
var names = [...][]string{
	YAMLFormat: {"yaml", "yml", "y"},
	JSONFormat: {"json", "j"},
}

func ParseFormat(v string) (Format, error) {
	v = strings.ToLower(v)
	for f, ns := range names {
		for _, n := range ns {
			if n == v {
				return Format(f), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath picks the format of a configuration file from its extension.
func FromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrBadFormat, path)
	}
	return ParseFormat(ext)
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(names) {
		return fmt.Sprintf("<bad format %d>", int(f))
	}
	return names[f][0]
}

// UnmarshalText lets settings name a format.
func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// IsJSON reports whether values are written as JSON. YAML is the default
// for layers written back.
func (f Format) IsJSON() bool { return f == JSONFormat }

func AllFormats() []Format {
	return []Format{YAMLFormat, JSONFormat}
}
