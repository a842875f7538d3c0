// ABOUTME: Presentation-ready component tree and counts built from a ParseResult.
// ABOUTME: Groups sort by type key, members by ID; terminal types list their direct predecessors.
package analysis

import (
	"fmt"
	"sort"
	"strings"
)

// TreeGroup is one component category with its members.
type TreeGroup struct {
	Key   string     `json:"key" yaml:"key"`
	Name  string     `json:"name" yaml:"name"`
	Items []TreeItem `json:"items" yaml:"items"`
}

// TreeItem is one component row.
type TreeItem struct {
	ID           string   `json:"id" yaml:"id"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"`
	Predecessors []string `json:"predecessors,omitempty" yaml:"predecessors,omitempty"`
}

// Details renders the label followed by the predecessor list, if any.
func (it TreeItem) Details() string {
	if len(it.Predecessors) == 0 {
		return it.Label
	}
	return fmt.Sprintf("%s (Connected to: %s)", it.Label, strings.Join(it.Predecessors, ", "))
}

// Tree builds the grouped component view. Only registered types appear.
func (r ParseResult) Tree() []TreeGroup {
	reg := r.Registry()
	preds := directPredecessors(r)

	var groups []TreeGroup
	for _, key := range sortedKeys(r.Groups) {
		ids := r.Groups[key]
		if len(ids) == 0 {
			continue
		}
		group := TreeGroup{Key: key, Name: reg.Name(key), Items: make([]TreeItem, 0, len(ids))}
		for _, id := range ids {
			item := TreeItem{ID: id, Label: r.Labels[id]}
			if reg.IsTerminal(key) {
				item.Predecessors = preds[id]
			}
			group.Items = append(group.Items, item)
		}
		groups = append(groups, group)
	}
	return groups
}

// ComponentCounts renders "Name: n" lines for each group in key order.
func (r ParseResult) ComponentCounts() string {
	var lines []string
	for _, g := range r.Tree() {
		lines = append(lines, fmt.Sprintf("%s: %d", g.Name, len(g.Items)))
	}
	return strings.Join(lines, "\n")
}

// directPredecessors maps each target to its distinct sources in edge order.
func directPredecessors(r ParseResult) map[string][]string {
	preds := make(map[string][]string)
	seen := make(map[string]bool)
	for _, e := range r.Edges {
		key := e.StableID()
		if seen[key] {
			continue
		}
		seen[key] = true
		preds[e.To] = append(preds[e.To], e.From)
	}
	return preds
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
