package stats

import "strings"

// Resolver translates source-supplied player names into canonical roster
// names using the club's alias table. Lookup is case-insensitive on the
// source side; the stored canonical casing is returned as-is. A name with
// no alias resolves to itself — that is the common case, not an error.
type Resolver struct {
	aliases map[string]string
}

// NewResolver builds a Resolver from the alias table. Keys are lower-cased
// defensively in case the table was populated with mixed-case source names.
func NewResolver(aliases map[string]string) Resolver {
	m := make(map[string]string, len(aliases))
	for source, target := range aliases {
		m[strings.ToLower(source)] = target
	}
	return Resolver{aliases: m}
}

// Resolve maps a source name to the canonical roster name.
func (r Resolver) Resolve(name string) string {
	if target, ok := r.aliases[strings.ToLower(name)]; ok {
		return target
	}
	return name
}
