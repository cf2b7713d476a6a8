package libdiff

import (
	"slices"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

type Op int

const (
	// Equal only occurs in text edits.
	Equal Op = iota
	Insert
	Delete
	Replace
	// Nested diffs describe changes inside a value of unchanged kind.
	Nested
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	case Nested:
		return "nested"
	}
	return "<bad op>"
}

// Diff is the difference between two values.
//
// Insert carries To, Delete carries From and Replace both. A Nested diff
// holds one of Fields (structs and maps), Items (sequences, keyed by
// position in the edit stream), Elem (Some options) or Text (strings).
type Diff struct {
	Op   Op
	From value.Value
	To   value.Value

	Fields *omap.Map[*Diff]
	// the field orders, set when the common fields were reordered.
	FromOrder []string
	ToOrder   []string

	Items map[int]*Diff
	Elem  *Diff
	Text  []TextEdit
}

// TextEdit is one run of a text diff.
type TextEdit struct {
	Op   Op
	Text string
}

// Make returns the changes turning from into to, nil if they are equal.
func Make(from, to value.Value) *Diff {
	if from.Equal(to) {
		return nil
	}
	switch {
	case from.IsEmpty():
		return &Diff{Op: Insert, To: to}
	case to.IsEmpty():
		return &Diff{Op: Delete, From: from}
	case from.Kind != to.Kind || from.Name != to.Name:
		return replace(from, to)
	}
	switch from.Kind {
	case value.StructKind, value.MapKind:
		return diffKeyed(from, to)
	case value.ListKind, value.TupleKind, value.NamedTupleKind:
		return diffItems(from, to)
	case value.StringKind:
		return diffString(from, to)
	case value.OptionKind:
		if from.Elem != nil && to.Elem != nil {
			return &Diff{Op: Nested, Elem: Make(*from.Elem, *to.Elem)}
		}
	}
	return replace(from, to)
}

func replace(from, to value.Value) *Diff {
	return &Diff{Op: Replace, From: from, To: to}
}

// diffKeyed diffs the values of the common fields, records the removed
// and added fields and, by diffing the sequences of common field names,
// whether they were reordered.
func diffKeyed(from, to value.Value) *Diff {
	fromKeys, ok1 := from.Keys()
	toKeys, ok2 := to.Keys()
	if !ok1 || !ok2 {
		return replace(from, to)
	}
	res := &Diff{Op: Nested, Fields: omap.New[*Diff]()}
	for _, k := range fromKeys {
		fv, _ := from.Lookup(k)
		tv, ok := to.Lookup(k)
		if !ok {
			res.Fields.Set(k, &Diff{Op: Delete, From: fv})
			continue
		}
		if d := Make(fv, tv); d != nil {
			res.Fields.Set(k, d)
		}
	}
	for _, k := range toKeys {
		if _, ok := from.Lookup(k); !ok {
			tv, _ := to.Lookup(k)
			res.Fields.Set(k, &Diff{Op: Insert, To: tv})
		}
	}

	common := func(keys []string, other value.Value) []string {
		var res []string
		for _, k := range keys {
			if _, ok := other.Lookup(k); ok {
				res = append(res, k)
			}
		}
		return res
	}
	runes := map[string]rune{}
	fromRunes := keyRunes(runes, common(fromKeys, to))
	toRunes := keyRunes(runes, common(toKeys, from))
	for _, d := range diffpatch.New().DiffMainRunes(fromRunes, toRunes, false) {
		if d.Type != diffpatch.DiffEqual {
			res.FromOrder, res.ToOrder = fromKeys, toKeys
			break
		}
	}
	if res.Fields.Len() == 0 && res.ToOrder == nil {
		return nil
	}
	return res
}

func keyRunes(m map[string]rune, keys []string) []rune {
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
		}
		rs[i] = r
	}
	return rs
}

// diffItems diffs the sequences of item summaries. Items with equal
// summaries which still differ are diffed recursively; a deletion
// followed by an insertion becomes a replacement.
func diffItems(from, to value.Value) *Diff {
	m := map[string]rune{}
	fromRunes := summaryRunes(m, from.Items)
	toRunes := summaryRunes(m, to.Items)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	res := map[int]*Diff{}
	fi, ti, ri := 0, 0, 0
	lastDelete := -1
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffDelete:
			for range n {
				res[ri] = &Diff{Op: Delete, From: from.Items[fi]}
				lastDelete = ri
				ri++
				fi++
			}
		case diffpatch.DiffEqual:
			lastDelete = -1
			for range n {
				if di := Make(from.Items[fi], to.Items[ti]); di != nil {
					res[ri] = di
				}
				ri++
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				if lastDelete >= 0 && lastDelete == ri-1 {
					res[ri-1] = Make(res[ri-1].From, to.Items[ti])
					lastDelete = -1
					ti++
					continue
				}
				res[ri] = &Diff{Op: Insert, To: to.Items[ti]}
				ri++
				ti++
			}
			lastDelete = -1
		}
	}
	if len(res) == 0 {
		return nil
	}
	return &Diff{Op: Nested, Items: res}
}

func summaryRunes(m map[string]rune, items []value.Value) []rune {
	rs := make([]rune, len(items))
	for i, v := range items {
		s := summary(v)
		r, ok := m[s]
		if !ok {
			r = rune(len(m))
			m[s] = r
		}
		rs[i] = r
	}
	return rs
}

// summary identifies scalars by value and containers by shape, so that
// containers at the same place are diffed rather than replaced.
func summary(v value.Value) string {
	switch v.Kind {
	case value.StringKind:
		if strings.Contains(v.Str, "\n") {
			return "string/m"
		}
		return "string-" + v.Str
	case value.StructKind, value.MapKind, value.ListKind, value.TupleKind, value.NamedTupleKind:
		return v.Kind.String() + "-" + v.Name
	case value.OptionKind:
		if v.Elem != nil {
			return "some"
		}
	}
	return string(v.AppendKey(nil))
}

// diffString diffs text, falling back to a replacement when more than
// half of the shorter string changed.
func diffString(from, to value.Value) *Diff {
	multiLine := strings.Contains(from.Str, "\n") && strings.Contains(to.Str, "\n")
	diffs := diffpatch.New().DiffMain(from.Str, to.Str, multiLine)
	size := 0
	edits := make([]TextEdit, len(diffs))
	for i, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			edits[i] = TextEdit{Op: Equal, Text: d.Text}
		case diffpatch.DiffInsert:
			edits[i] = TextEdit{Op: Insert, Text: d.Text}
			size += len(d.Text)
		case diffpatch.DiffDelete:
			edits[i] = TextEdit{Op: Delete, Text: d.Text}
			size += len(d.Text)
		}
	}
	if size > min(len(from.Str), len(to.Str))/2 {
		return replace(from, to)
	}
	return &Diff{Op: Nested, Text: edits}
}

// Reverse returns the diff turning the target of d back into its
// source.
func Reverse(d *Diff) *Diff {
	if d == nil {
		return nil
	}
	res := &Diff{Op: d.Op, From: d.To, To: d.From}
	switch d.Op {
	case Insert:
		res.Op = Delete
	case Delete:
		res.Op = Insert
	case Nested:
		if d.Fields != nil {
			res.Fields = d.Fields.Clone(Reverse)
			res.FromOrder, res.ToOrder = d.ToOrder, d.FromOrder
		}
		if d.Items != nil {
			res.Items = make(map[int]*Diff, len(d.Items))
			for i, di := range d.Items {
				res.Items[i] = Reverse(di)
			}
		}
		res.Elem = Reverse(d.Elem)
		if d.Text != nil {
			res.Text = slices.Clone(d.Text)
			for i := range res.Text {
				switch res.Text[i].Op {
				case Insert:
					res.Text[i].Op = Delete
				case Delete:
					res.Text[i].Op = Insert
				}
			}
		}
	}
	return res
}
