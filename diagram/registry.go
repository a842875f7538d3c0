// ABOUTME: Component type registry mapping identifier prefixes (DP, MC, F, ...) to category names.
// ABOUTME: Immutable after construction; TypeKey derives a node's prefix from its identifier.
package diagram

import (
	"sort"
	"unicode"
)

// ComponentType describes one registered category of diagram node.
type ComponentType struct {
	Key  string `yaml:"key" json:"key" validate:"required,alpha"`
	Name string `yaml:"name" json:"name" validate:"required"`
	// Terminal marks sink-style categories whose direct predecessors are shown
	// alongside the node in component listings.
	Terminal bool `yaml:"terminal" json:"terminal"`
}

// Registry is a fixed set of component types keyed by identifier prefix.
// The zero value is an empty registry.
type Registry struct {
	types map[string]ComponentType
}

// DefaultRegistry returns the built-in irrigation network component types.
func DefaultRegistry() *Registry {
	return NewRegistry(
		ComponentType{Key: "DP", Name: "Distribution Point"},
		ComponentType{Key: "MC", Name: "Canal"},
		ComponentType{Key: "ZT", Name: "Gate"},
		ComponentType{Key: "SW", Name: "Smart Water"},
		ComponentType{Key: "F", Name: "Field", Terminal: true},
	)
}

// NewRegistry builds a registry from the given types. Later entries with a
// duplicate key replace earlier ones.
func NewRegistry(types ...ComponentType) *Registry {
	r := &Registry{types: make(map[string]ComponentType, len(types))}
	for _, t := range types {
		r.types[t.Key] = t
	}
	return r
}

// Extend returns a new registry holding r's types plus extra. r is unchanged.
func (r *Registry) Extend(extra ...ComponentType) *Registry {
	all := make([]ComponentType, 0, r.Len()+len(extra))
	for _, k := range r.Keys() {
		all = append(all, r.types[k])
	}
	all = append(all, extra...)
	return NewRegistry(all...)
}

// Lookup returns the component type registered under key.
func (r *Registry) Lookup(key string) (ComponentType, bool) {
	if r == nil || key == "" {
		return ComponentType{}, false
	}
	t, ok := r.types[key]
	return t, ok
}

// Name returns the display name for key, or "Unknown" when unregistered.
func (r *Registry) Name(key string) string {
	if t, ok := r.Lookup(key); ok {
		return t.Name
	}
	return "Unknown"
}

// IsTerminal reports whether key names a terminal component type.
func (r *Registry) IsTerminal(key string) bool {
	t, ok := r.Lookup(key)
	return ok && t.Terminal
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.types))
	for k := range r.types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.types)
}

// TypeKey returns the maximal leading run of letters in id ("DP1" -> "DP").
// Identifiers that start with a digit or underscore have an empty key.
func TypeKey(id string) string {
	for i, ch := range id {
		if !unicode.IsLetter(ch) {
			return id[:i]
		}
	}
	return id
}
