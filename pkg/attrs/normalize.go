package attrs

import (
	"strings"
	"unicode"
)

// KeySet is the set of recognized camelCase property keys for one DTO type.
// Sets are configuration owned by the DTO packages, enumerated from each
// type's field list, and preserve declaration order for error rendering.
type KeySet struct {
	ordered []string
	index   map[string]struct{}
}

// NewKeySet builds a KeySet from keys, keeping their order.
func NewKeySet(keys ...string) KeySet {
	s := KeySet{
		ordered: make([]string, 0, len(keys)),
		index:   make(map[string]struct{}, len(keys)),
	}
	for _, k := range keys {
		if _, dup := s.index[k]; dup {
			continue
		}
		s.ordered = append(s.ordered, k)
		s.index[k] = struct{}{}
	}
	return s
}

// Has reports whether key belongs to the set.
func (s KeySet) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Keys returns the recognized keys in declaration order.
func (s KeySet) Keys() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Normalize rewrites every recognized snake_case key in m to its camelCase
// form and returns the result as a Map. When both spellings of one logical
// key are present the camelCase entry wins and the snake_case duplicate is
// dropped. Unrecognized keys pass through untouched; DTO construction
// ignores them later instead of rejecting them. The input map is never
// modified, and the pass is idempotent.
func Normalize(m map[string]any, keys KeySet) Map {
	out := make(Map, len(m))
	for k, v := range m {
		if !strings.Contains(k, "_") {
			out[k] = v
			continue
		}
		camel := CamelCase(k)
		if camel == k || !keys.Has(camel) {
			out[k] = v
			continue
		}
		// Precedence consults the source map, never the partially built
		// output, so map iteration order cannot change the result.
		if _, exists := m[camel]; exists {
			continue
		}
		out[camel] = v
	}
	return out
}

// CamelCase converts a snake_case key to camelCase: underscores start a new
// word, the first word stays lowercase and later words are capitalized.
func CamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	newWord := false
	first := true
	for _, r := range s {
		if r == '_' {
			if !first {
				newWord = true
			}
			continue
		}
		switch {
		case first:
			b.WriteRune(unicode.ToLower(r))
			first = false
		case newWord:
			b.WriteRune(unicode.ToUpper(r))
			newWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
