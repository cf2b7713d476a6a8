package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/format"
	"github.com/signadot/configurator/value"
)

// Source reads one layer of configuration. A missing layer reads as
// value.Empty.
type Source interface {
	Read() (value.Value, error)
}

// Sink receives the data written back from a tree.
type Sink interface {
	Write(v value.Value) error
}

// File is a Source and a Sink backed by a file in some format.
type File struct {
	Path   string
	Format format.Format
}

// NewFile returns a File reading and writing path in f, or in the format
// of the path suffix when f is empty.
func NewFile(path, f string) (*File, error) {
	var (
		ff  format.Format
		err error
	)
	if f != "" {
		ff, err = format.ParseFormat(f)
	} else {
		ff, err = format.FromPath(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Path: path, Format: ff}, nil
}

func (f *File) Read() (value.Value, error) {
	d, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return value.Empty, nil
	}
	if err != nil {
		return value.Empty, err
	}
	v, err := codec.Decode(d, codec.Format(f.Format))
	if err != nil {
		return value.Empty, fmt.Errorf("%s: %w", f.Path, err)
	}
	return v, nil
}

// Write replaces the file, creating its directory if needed.
func (f *File) Write(v value.Value) error {
	d, err := codec.Encode(v, codec.Format(f.Format))
	if err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.Path, d, 0o644)
}

func (f *File) String() string {
	return f.Path
}

// Static is an in-memory Source and Sink.
type Static struct {
	Value value.Value
}

func (s *Static) Read() (value.Value, error) { return s.Value, nil }

func (s *Static) Write(v value.Value) error {
	s.Value = v
	return nil
}
