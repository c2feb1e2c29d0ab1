package locale

import "strings"

// Resolver finds the target language of an archive entry.
type Resolver interface {
	Resolve(entryPath string) (code string, ok bool)
}

// TableResolver resolves by plain substring containment against a Table.
type TableResolver struct {
	mappings []Mapping
}

// NewTableResolver creates a resolver over a snapshot of table.
func NewTableResolver(table Table) *TableResolver {
	return &TableResolver{mappings: table.Mappings()}
}

// Resolve returns the code of the first mapping, in table order, whose marker
// occurs anywhere in entryPath.
func (r *TableResolver) Resolve(entryPath string) (string, bool) {
	for _, m := range r.mappings {
		if m.Marker != "" && strings.Contains(entryPath, m.Marker) {
			return m.Code, true
		}
	}
	return "", false
}
