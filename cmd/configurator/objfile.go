package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/format"
	"github.com/signadot/configurator/value"
)

// readValue decodes the value file at path, or in when path is "-". The
// format comes from the settings, then from the path suffix.
func (cfg *MainConfig) readValue(in io.Reader, path string) (value.Value, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return value.Empty, err
		}
		defer f.Close()
		r = f
	} else {
		r = in
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return value.Empty, fmt.Errorf("error reading %q: %w", path, err)
	}
	ff := format.YAMLFormat
	switch {
	case cfg.Settings != nil && cfg.Settings.Format != "":
		if ff, err = format.ParseFormat(cfg.Settings.Format); err != nil {
			return value.Empty, err
		}
	case path != "-":
		if pf, err := format.FromPath(path); err == nil {
			ff = pf
		}
	}
	v, err := codec.Decode(d, codec.Format(ff))
	if err != nil {
		return value.Empty, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return v, nil
}

func (cfg *MainConfig) writeValue(w io.Writer, v value.Value) error {
	if v.IsEmpty() {
		return nil
	}
	return codec.EncodeTo(w, v, codec.Format(cfg.outFormat()))
}
