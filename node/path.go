package node

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a container in a tree: '$' is the root, '.name' an object
// field and '[i]' an array element. Field names containing any of
// "'.*$[]" are quoted: $.'a.b'. Enums are transparent: a path continues
// into the selected variant.
//
// The wildcard steps '[*]' (every element) and '..' (every descendant)
// are only valid with [Container.List].
type Path struct {
	IndexAll bool
	Index    *int
	Field    *string
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	x := p
	afterSubtree := false
	for x != nil {
		switch {
		case x.Subtree:
			buf.WriteString("..")
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Field != nil:
			f := *x.Field
			if f == "" || strings.IndexAny(f, "'.*$[]") != -1 {
				f = "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
			}
			if !afterSubtree {
				buf.WriteByte('.')
			}
			buf.WriteString(f)
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
		if x.Subtree || x.IndexAll || x.Field != nil || x.Index != nil {
			afterSubtree = x.Subtree
		}
		x = x.Next
	}
	return buf.String()
}

// steps returns the non empty steps of p.
func (p *Path) steps() []*Path {
	var res []*Path
	for x := p; x != nil; x = x.Next {
		if x.Subtree || x.IndexAll || x.Field != nil || x.Index != nil {
			res = append(res, x)
		}
	}
	return res
}

func fromSteps(steps []*Path) *Path {
	root := &Path{}
	cur := root
	for _, s := range steps {
		n := &Path{IndexAll: s.IndexAll, Index: s.Index, Field: s.Field, Subtree: s.Subtree}
		cur.Next = n
		cur = n
	}
	return root
}

// WithField returns a copy of p extended with the field name.
func (p *Path) WithField(name string) *Path {
	return fromSteps(append(p.steps(), &Path{Field: &name}))
}

// WithIndex returns a copy of p extended with the element index.
func (p *Path) WithIndex(i int) *Path {
	return fromSteps(append(p.steps(), &Path{Index: &i}))
}

// Split returns the parent of p and its last step. The root has no
// parent.
func (p *Path) Split() (parent, last *Path, ok bool) {
	steps := p.steps()
	if len(steps) == 0 {
		return nil, nil, false
	}
	last = steps[len(steps)-1]
	return fromSteps(steps[:len(steps)-1]), &Path{Field: last.Field, Index: last.Index}, true
}

// IsRoot reports whether p addresses the root.
func (p *Path) IsRoot() bool {
	return len(p.steps()) == 0
}

func RootPath() *Path { return &Path{} }

func MustParsePath(p string) *Path {
	res, err := ParsePath(p)
	if err != nil {
		panic(err)
	}
	return res
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPath, p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	next := &Path{}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			next.Subtree = true
			parent.Next = next
			rest := frag[2:]
			if len(rest) > 0 && rest[0] != '.' && rest[0] != '[' {
				rest = "." + rest
			}
			return parseFrag(rest, next)
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		next.Field = &field
		parent.Next = next
		return parseFrag(rest, next)
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		next.IndexAll = all
		if !all {
			next.Index = &index
		}
		parent.Next = next
		return parseFrag(frag[i+2:], next)
	default:
		return fmt.Errorf("expected '.' or '['")
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if is == "*" {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		if i == 0 {
			return "", "", fmt.Errorf("empty field name")
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '\'' && !escaped:
			return string(res), frag[i+1:], nil
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}
