// ABOUTME: Graph model for parsed flow diagrams: typed nodes, directed edges, and lint diagnostics.
// ABOUTME: Graph values are built fresh per parse and expose sorted, deterministic traversal helpers.
package diagram

import (
	"sort"
)

// ConnectionArrow is the arrow used when rendering an edge as a connection string.
const ConnectionArrow = "--->"

// Node is a diagram component identified by an opaque, case-sensitive token.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// Type is the identifier's leading letter run. It is kept even when the
	// registry does not know it, so callers can tell untyped nodes apart.
	Type string `json:"type" yaml:"type"`
}

// Edge is a directed, unweighted connection between two node identifiers.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Connection renders the edge as an explicit connection string ("A--->B").
func (e Edge) Connection() string {
	return e.From + ConnectionArrow + e.To
}

// StableID returns "from->to", stable across parses of the same text.
func (e Edge) StableID() string {
	return e.From + "->" + e.To
}

// Diagnostic is an informational finding about a parsed diagram.
type Diagnostic struct {
	Severity string `json:"severity" yaml:"severity"` // "warning", "info"
	Message  string `json:"message" yaml:"message"`
	NodeID   string `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	EdgeID   string `json:"edge_id,omitempty" yaml:"edge_id,omitempty"`
	Rule     string `json:"rule" yaml:"rule"`
}

// Graph is a directed graph of diagram nodes. Every edge endpoint is present
// in Nodes and Edges holds no duplicate (From, To) pairs.
type Graph struct {
	Nodes map[string]*Node
	Edges []Edge

	out map[string][]string
	in  map[string][]string
}

// NewGraph returns an empty graph ready for AddNode/AddEdge.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		out:   make(map[string][]string),
		in:    make(map[string][]string),
	}
}

// AddNode inserts n, or fills in a missing label on an existing node with the
// same ID. An existing non-empty label is never replaced.
func (g *Graph) AddNode(n Node) *Node {
	if existing, ok := g.Nodes[n.ID]; ok {
		if existing.Label == "" {
			existing.Label = n.Label
		}
		return existing
	}
	if n.Type == "" {
		n.Type = TypeKey(n.ID)
	}
	node := &n
	g.Nodes[n.ID] = node
	return node
}

// AddEdge adds a directed edge, materializing both endpoints. It reports
// false when the same ordered pair was already present.
func (g *Graph) AddEdge(e Edge) bool {
	g.AddNode(Node{ID: e.From})
	g.AddNode(Node{ID: e.To})
	for _, to := range g.out[e.From] {
		if to == e.To {
			return false
		}
	}
	g.Edges = append(g.Edges, e)
	g.out[e.From] = append(g.out[e.From], e.To)
	g.in[e.To] = append(g.in[e.To], e.From)
	return true
}

// Node returns the node with the given ID, or nil if not found.
func (g *Graph) Node(id string) *Node {
	return g.Nodes[id]
}

// NodeIDs returns all node IDs in sorted order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Successors returns the direct targets of id in edge encounter order.
func (g *Graph) Successors(id string) []string {
	return append([]string(nil), g.out[id]...)
}

// Predecessors returns the direct sources of id in edge encounter order.
func (g *Graph) Predecessors(id string) []string {
	return append([]string(nil), g.in[id]...)
}

// InDegree returns the number of distinct sources pointing at id.
func (g *Graph) InDegree(id string) int { return len(g.in[id]) }

// OutDegree returns the number of distinct targets id points at.
func (g *Graph) OutDegree(id string) int { return len(g.out[id]) }

// Isolated returns the sorted IDs of nodes with no edges at all.
func (g *Graph) Isolated() []string {
	var ids []string
	for _, id := range g.NodeIDs() {
		if g.InDegree(id) == 0 && g.OutDegree(id) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
