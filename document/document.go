package document

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/format"
	"github.com/signadot/configurator/gomap"
	"github.com/signadot/configurator/node"
	"github.com/signadot/configurator/schema"
	"github.com/signadot/configurator/value"
)

var (
	ErrNothingToWrite = errors.New("nothing to write")
	ErrNoUserLayer    = errors.New("no user layer")
)

// Document is the configuration of one application: its compiled schema
// tree and the layers it is read from and written to.
type Document struct {
	AppID string
	Title string

	root   *schema.Root
	tree   *node.Container
	system []Source
	user   Source
	sink   Sink
	log    *slog.Logger

	systemValue value.Value
	userValue   value.Value
}

// New compiles the schema of appID, reads its system layers and reloads
// it.
func New(appID string, root *schema.Root, opts ...Option) (*Document, error) {
	o := makeOptions(opts)
	tree, err := node.Compile(root, o.compile...)
	if err != nil {
		return nil, err
	}
	d := &Document{
		AppID: appID,
		Title: appID[strings.LastIndexByte(appID, '.')+1:],
		root:  root,
		tree:  tree,
		log:   o.log.With("app", appID),
	}
	if err := d.layers(o); err != nil {
		return nil, err
	}
	if err := d.ReadSystem(); err != nil {
		return nil, err
	}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// layers sets up the sources and the sink from the options, falling back
// to the extension keys of the schema.
func (d *Document) layers(o *options) error {
	d.system, d.user, d.sink = o.system, o.user, o.sink
	if d.system != nil && d.user != nil && d.sink != nil {
		return nil
	}
	var homeFile *File
	if d.root.SourceHomePath != "" {
		p := d.root.SourceHomePath
		if !filepath.IsAbs(p) {
			home := o.home
			if home == "" {
				var err error
				if home, err = os.UserHomeDir(); err != nil {
					return err
				}
			}
			p = filepath.Join(home, p)
		}
		f, err := NewFile(p, d.root.Format)
		if err != nil {
			return err
		}
		homeFile = f
	}
	ff := format.YAMLFormat
	if homeFile != nil {
		ff = homeFile.Format
	} else if d.root.Format != "" {
		var err error
		if ff, err = format.ParseFormat(d.root.Format); err != nil {
			return err
		}
	}

	if d.system == nil {
		for _, p := range d.root.SourcePaths {
			d.system = append(d.system, &File{Path: p, Format: ff})
		}
	}
	if d.user == nil {
		if homeFile == nil {
			return fmt.Errorf("%w: %s has no %s", ErrNoUserLayer, d.AppID, schema.SourceHomePathKey)
		}
		d.user = homeFile
	}
	if d.sink == nil {
		switch {
		case d.root.WritePath != "":
			d.sink = &File{Path: d.root.WritePath, Format: ff}
		case homeFile != nil:
			d.sink = homeFile
		default:
			s, ok := d.user.(Sink)
			if !ok {
				return fmt.Errorf("%s: the user layer cannot be written to", d.AppID)
			}
			d.sink = s
		}
	}
	return nil
}

func (d *Document) Tree() *node.Container { return d.tree }
func (d *Document) Schema() *schema.Root  { return d.root }

// System returns the merged system layers as last read.
func (d *Document) System() value.Value { return d.systemValue }

// User returns the user layer as last read.
func (d *Document) User() value.Value { return d.userValue }

// Full returns the user layer merged over the system layers.
func (d *Document) Full() value.Value { return d.systemValue.Merge(d.userValue) }

// ReadSystem reads and merges the system layers in order.
func (d *Document) ReadSystem() error {
	res := value.Empty
	for _, src := range d.system {
		v, err := src.Read()
		if err != nil {
			return err
		}
		res = res.Merge(v)
	}
	d.systemValue = res
	d.log.Debug("read system layers", "layers", len(d.system), "value", res)
	return nil
}

// Reload reads the user layer and reconciles the tree with the merged
// layers. Everything present in a layer is marked modified.
func (d *Document) Reload() error {
	user, err := d.user.Read()
	if err != nil {
		return err
	}
	d.userValue = user
	full := d.Full()
	d.log.Debug("reload", "user", user, "full", full)

	d.tree.RemoveValueRec()
	if err := d.tree.ApplyValue(full, true); err != nil {
		return fmt.Errorf("%s: %w", d.AppID, err)
	}
	return nil
}

// Value returns the data to write back, if any.
func (d *Document) Value() (value.Value, bool) {
	return d.tree.ToValue()
}

// Decode stores the effective configuration, defaults included, in the Go
// value pointed to by p.
func (d *Document) Decode(p any, opts ...gomap.DecodeOption) error {
	v, ok := d.tree.Effective()
	if !ok {
		return nil
	}
	return gomap.Decode(v, p, opts...)
}

// WriteBack writes the modified data of the tree to the sink.
func (d *Document) WriteBack() error {
	v, ok := d.tree.ToValue()
	if !ok {
		return fmt.Errorf("%s: %w", d.AppID, ErrNothingToWrite)
	}
	if err := d.sink.Write(v); err != nil {
		return err
	}
	d.log.Info("wrote configuration", "sink", d.sink)
	return nil
}

// Edit runs f on the tree, then writes back if the tree is valid. An
// invalid tree, with a new entry still unset for instance, is kept as is
// until a later edit completes it.
func (d *Document) Edit(f func(tree *node.Container) error) error {
	if err := f(d.tree); err != nil {
		return err
	}
	if !d.tree.IsValid() {
		d.log.Debug("tree is incomplete, not writing")
		return nil
	}
	return d.WriteBack()
}

func (d *Document) SetBool(p *node.Path, b bool) error {
	return d.Edit(func(t *node.Container) error { return t.SetBool(p, b) })
}

func (d *Document) SetString(p *node.Path, s string) error {
	return d.Edit(func(t *node.Container) error { return t.SetString(p, s) })
}

func (d *Document) SetNumber(p *node.Path, s string) error {
	return d.Edit(func(t *node.Container) error { return t.SetNumber(p, s) })
}

func (d *Document) SetValue(p *node.Path, v value.Value) error {
	return d.Edit(func(t *node.Container) error { return t.SetValue(p, v) })
}

func (d *Document) SelectVariant(p *node.Path, i int) error {
	return d.Edit(func(t *node.Container) error { return t.SelectVariant(p, i) })
}

func (d *Document) ApplyDefault(p *node.Path) error {
	return d.Edit(func(t *node.Container) error { return t.ApplyDefault(p) })
}

func (d *Document) Remove(p *node.Path) error {
	return d.Edit(func(t *node.Container) error { return t.Remove(p) })
}

func (d *Document) AddEntry(p *node.Path, key string) error {
	return d.Edit(func(t *node.Container) error { return t.AddEntry(p, key) })
}

func (d *Document) AddElement(p *node.Path) error {
	return d.Edit(func(t *node.Container) error { return t.AddElement(p) })
}

func (d *Document) RenameKey(p *node.Path, from, to string) error {
	return d.Edit(func(t *node.Container) error { return t.RenameKey(p, from, to) })
}

// Patch edits the data to write back with a JSON patch, or with a JSON
// merge patch if merge is set, and reconciles the tree with the result.
func (d *Document) Patch(patch []byte, merge bool) error {
	cur, _ := d.tree.ToValue()
	var (
		next value.Value
		err  error
	)
	if merge {
		next, err = codec.MergePatch(cur, patch)
	} else {
		next, err = codec.ApplyJSONPatch(cur, patch)
	}
	if err != nil {
		return err
	}
	d.log.Debug("patch", "before", cur, "after", next)
	return d.Edit(func(t *node.Container) error {
		t.RemoveValueRec()
		return t.SetValue(node.RootPath(), next)
	})
}

// OpenAll opens a document for every schema of reg which is not masked.
// Documents which fail to open are reported together in the returned
// error; the others are returned.
func OpenAll(reg *schema.Registry, opts ...Option) ([]*Document, error) {
	o := makeOptions(opts)
	var (
		res  []*Document
		errs []error
	)
	for _, id := range reg.IDs() {
		if o.masked[id] {
			continue
		}
		d, err := New(id, reg.Lookup(id), opts...)
		if err != nil {
			o.log.Error("cannot open document", "app", id, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		res = append(res, d)
	}
	return res, errors.Join(errs...)
}
