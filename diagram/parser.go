// ABOUTME: Best-effort diagram parser extracting labeled components and directed edges from raw text.
// ABOUTME: Two regex passes over the whole text; unrecognized syntax is skipped, never reported as an error.
package diagram

import (
	"sort"
)

// Result is the output of one Parse call. Each call returns fresh values.
type Result struct {
	// Groups maps a registered type key to its member IDs, sorted.
	Groups map[string][]string
	// Labels maps every labeled node ID to its first non-empty label.
	Labels map[string]string
	// Unregistered holds labeled IDs whose type key is not registered, sorted.
	Unregistered []string
	// Edges holds every edge in encounter order, duplicates included.
	Edges []Edge

	registry *Registry
}

// Parser extracts components and edges using a fixed component registry.
type Parser struct {
	registry *Registry
}

// NewParser returns a parser that classifies nodes against reg. A nil reg
// means DefaultRegistry.
func NewParser(reg *Registry) *Parser {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Parser{registry: reg}
}

// Parse parses text with the default registry.
func Parse(text string) *Result {
	return NewParser(nil).Parse(text)
}

// Registry returns the registry the parser classifies against.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Parse extracts labeled nodes and edges from text. It never fails: malformed
// fragments simply contribute nothing.
func (p *Parser) Parse(text string) *Result {
	res := &Result{
		Groups:   make(map[string][]string),
		Labels:   make(map[string]string),
		registry: p.registry,
	}

	members := make(map[string]map[string]bool)
	unregistered := make(map[string]bool)
	for _, m := range LabeledNodePattern.FindAllStringSubmatch(text, -1) {
		id, label := m[1], m[2]
		if _, seen := res.Labels[id]; !seen && label != "" {
			res.Labels[id] = label
		}

		key := TypeKey(id)
		if _, ok := p.registry.Lookup(key); !ok {
			unregistered[id] = true
			continue
		}
		if members[key] == nil {
			members[key] = make(map[string]bool)
		}
		members[key][id] = true
	}

	for key, set := range members {
		res.Groups[key] = sortedSet(set)
	}
	res.Unregistered = sortedSet(unregistered)
	res.Edges = ScanEdges(text)
	return res
}

// Registry returns the registry the result was classified against.
func (r *Result) Registry() *Registry {
	if r.registry == nil {
		return DefaultRegistry()
	}
	return r.registry
}

// TypeKeys returns the keys of non-empty groups in sorted order.
func (r *Result) TypeKeys() []string {
	keys := make([]string, 0, len(r.Groups))
	for k, ids := range r.Groups {
		if len(ids) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ComponentCount returns the number of typed components across all groups.
func (r *Result) ComponentCount() int {
	n := 0
	for _, ids := range r.Groups {
		n += len(ids)
	}
	return n
}

// Connections renders the edges as explicit connection strings, in order.
func (r *Result) Connections() []string {
	conns := make([]string, 0, len(r.Edges))
	for _, e := range r.Edges {
		conns = append(conns, e.Connection())
	}
	return conns
}

// Graph builds a graph holding every labeled node and every edge endpoint.
// Duplicate edges collapse to one.
func (r *Result) Graph() *Graph {
	g := NewGraph()
	ids := make([]string, 0, len(r.Labels))
	for id := range r.Labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		g.AddNode(Node{ID: id, Label: r.Labels[id]})
	}
	for _, e := range r.Edges {
		g.AddEdge(e)
	}
	return g
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
