package omap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetKeepsPosition(t *testing.T) {
	m := New[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	if diff := cmp.Diff([]string{"b", "a"}, m.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("b"); v != 3 {
		t.Errorf("got %d want 3", v)
	}
}

func TestDelete(t *testing.T) {
	m := New[int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		m.Set(k, i)
	}
	if !m.Delete("b") {
		t.Fatal("expected b to be deleted")
	}
	if m.Delete("b") {
		t.Fatal("b deleted twice")
	}
	if diff := cmp.Diff([]string{"a", "c", "d"}, m.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if i := m.Index("d"); i != 2 {
		t.Errorf("index of d = %d, want 2", i)
	}
}

func TestDeleteFunc(t *testing.T) {
	m := New[int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		m.Set(k, i)
	}
	m.DeleteFunc(func(_ string, v int) bool { return v%2 == 1 })
	if diff := cmp.Diff([]string{"a", "c"}, m.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if v, ok := m.Get("c"); !ok || v != 2 {
		t.Errorf("c = %d, %v", v, ok)
	}
}

func TestRename(t *testing.T) {
	m := New[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	if m.Rename("a", "b") {
		t.Error("rename onto existing key succeeded")
	}
	if !m.Rename("a", "z") {
		t.Fatal("rename failed")
	}
	if diff := cmp.Diff([]string{"z", "b"}, m.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestNilMap(t *testing.T) {
	var m *Map[int]
	if m.Len() != 0 || m.Has("x") || m.Index("x") != -1 {
		t.Error("nil map should be empty")
	}
	for range m.All() {
		t.Error("nil map yielded an entry")
	}
	if c := m.Clone(nil); c.Len() != 0 {
		t.Error("clone of nil map not empty")
	}
}
