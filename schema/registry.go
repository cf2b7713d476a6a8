package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry holds schemas keyed by application id.
type Registry struct {
	mu    sync.RWMutex
	roots map[string]*Root
}

func NewRegistry() *Registry {
	return &Registry{roots: map[string]*Root{}}
}

// Register adds a schema. An application id can be registered once.
func (r *Registry) Register(appID string, root *Root) error {
	if root == nil {
		return fmt.Errorf("cannot register nil schema")
	}
	if appID == "" {
		return fmt.Errorf("schema must have an application id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roots[appID]; exists {
		return fmt.Errorf("schema %q already registered", appID)
	}
	r.roots[appID] = root
	return nil
}

func (r *Registry) Lookup(appID string) *Root {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roots[appID]
}

// IDs returns the registered application ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]string, 0, len(r.roots))
	for k := range r.roots {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// AppID returns the application id of a schema file: its base name
// without the .json suffix.
func AppID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}

// LoadDir registers every *.json schema found in dir. Schemas which fail
// to load are skipped and reported together in the returned error.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		root, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.Register(AppID(path), root); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
