package wikidata

import (
	"regexp"
	"sort"
	"strings"
)

// entityIDPattern matches item, property and lexeme identifiers.
var entityIDPattern = regexp.MustCompile(`^[QPL][0-9]+$`)

// IsEntityID reports whether id looks like a Wikidata entity identifier.
func IsEntityID(id string) bool {
	return entityIDPattern.MatchString(id)
}

// EntityID strips an entity URI down to its trailing identifier segment,
// e.g. http://www.wikidata.org/entity/Q42 becomes Q42.
func EntityID(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// Mapping maps superseded identifiers to their canonical replacements.
// It lives for a single run and is applied once, never transitively.
type Mapping map[string]string

// Get returns the replacement for id, or id itself when it has none.
func (m Mapping) Get(id string) string {
	if replacement, ok := m[id]; ok {
		return replacement
	}
	return id
}

// Lookup returns the replacement for id and whether one exists.
func (m Mapping) Lookup(id string) (string, bool) {
	replacement, ok := m[id]
	return replacement, ok
}

// Len returns the number of superseded identifiers.
func (m Mapping) Len() int {
	return len(m)
}

// Keys returns the superseded identifiers in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
