package schema

import (
	"fmt"
	"strings"
)

var refPrefixes = []string{"#/definitions/", "#/$defs/"}

// EscapeRef escapes a definition name for use as a JSON pointer token.
func EscapeRef(r string) string {
	if !strings.ContainsAny(r, "~/") {
		return r
	}
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(r)
}

// UnescapeRef reverses EscapeRef.
func UnescapeRef(e string) string {
	if !strings.Contains(e, "~") {
		return e
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(e)
}

// RefName returns the definition name a reference points to.
func RefName(ref string) (string, error) {
	for _, p := range refPrefixes {
		if name, ok := strings.CutPrefix(ref, p); ok && name != "" {
			return UnescapeRef(name), nil
		}
	}
	return "", fmt.Errorf("%w: unsupported reference %q", ErrSchema, ref)
}

// DefinitionRef returns the reference to the definition called name.
func DefinitionRef(name string) string {
	return refPrefixes[0] + EscapeRef(name)
}

// Resolve returns the definition a reference points to along with its
// name.
func (r *Root) Resolve(ref string) (string, *Schema, error) {
	name, err := RefName(ref)
	if err != nil {
		return "", nil, err
	}
	s, ok := r.Definitions.Get(name)
	if !ok || s == nil {
		return name, nil, fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}
	return name, s, nil
}
