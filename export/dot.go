// ABOUTME: Serializes a parsed diagram to Graphviz DOT text with discovered paths highlighted.
// ABOUTME: Output is deterministic: nodes sorted by ID, attributes sorted by key, edges in first-seen order.
package export

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/2389-research/flowtrace/analysis"
	"github.com/2389-research/flowtrace/diagram"
)

// Highlight colours for path overlays.
const (
	ColorStart = "#90EE90" // green
	ColorEnd   = "#FFB6C1" // red
	ColorPath  = "#ADD8E6" // blue
	ColorEdge  = "#1E88E5"
)

// DOT converts the parse result to a DOT digraph. When report is non-nil,
// start and end points are filled and edges on any discovered path are coloured.
func DOT(res analysis.ParseResult, report *analysis.PathReport) string {
	g := res.Graph()
	reg := res.Registry()

	starts, ends, onPath, pathEdges := overlay(report)

	var b strings.Builder
	b.WriteString("digraph flow {\n")
	b.WriteString("  graph [rankdir=LR]\n")
	b.WriteString("  node [shape=box]\n\n")

	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		attrs := map[string]string{}
		if n.Label != "" {
			attrs["label"] = n.Label
		}
		if _, ok := reg.Lookup(n.Type); ok {
			attrs["tooltip"] = reg.Name(n.Type)
		}
		switch {
		case starts[id]:
			attrs["style"], attrs["fillcolor"] = "filled", ColorStart
		case ends[id]:
			attrs["style"], attrs["fillcolor"] = "filled", ColorEnd
		case onPath[id]:
			attrs["style"], attrs["fillcolor"] = "filled", ColorPath
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&b, "  %s [%s]\n", quoteID(id), formatAttrs(attrs))
		} else {
			fmt.Fprintf(&b, "  %s\n", quoteID(id))
		}
	}

	if len(g.Nodes) > 0 && len(g.Edges) > 0 {
		b.WriteString("\n")
	}

	for _, e := range g.Edges {
		if pathEdges[e.StableID()] {
			fmt.Fprintf(&b, "  %s -> %s [color=%s, penwidth=2]\n", quoteID(e.From), quoteID(e.To), quoteValue(ColorEdge))
		} else {
			fmt.Fprintf(&b, "  %s -> %s\n", quoteID(e.From), quoteID(e.To))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// overlay indexes the nodes and edges that a report touches.
func overlay(report *analysis.PathReport) (starts, ends, onPath, pathEdges map[string]bool) {
	starts, ends = map[string]bool{}, map[string]bool{}
	onPath, pathEdges = map[string]bool{}, map[string]bool{}
	if report == nil {
		return
	}
	for _, id := range report.Endpoints.Starts {
		starts[id] = true
	}
	for _, id := range report.Endpoints.Ends {
		ends[id] = true
	}
	for _, paths := range report.Paths {
		for _, p := range paths {
			for i, id := range p {
				onPath[id] = true
				if i > 0 {
					pathEdges[diagram.Edge{From: p[i-1], To: id}.StableID()] = true
				}
			}
		}
	}
	return
}

// formatAttrs renders key=value pairs as a comma-separated list with sorted keys.
func formatAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, quoteValue(attrs[k])))
	}
	return strings.Join(parts, ", ")
}

// quoteID returns id bare when it is a plain DOT identifier, quoted otherwise.
func quoteID(id string) string {
	if id == "" {
		return `""`
	}
	for i, ch := range id {
		if ch == '_' || (ch < unicode.MaxASCII && unicode.IsLetter(ch)) {
			continue
		}
		if i > 0 && ch >= '0' && ch <= '9' {
			continue
		}
		return quoteValue(id)
	}
	return id
}

// quoteValue double-quotes val with DOT escaping, unless it is a bare
// lowercase word or a number.
func quoteValue(val string) string {
	if val == "" {
		return `""`
	}
	bare := true
	for _, ch := range val {
		if ch != '_' && !unicode.IsLower(ch) && !unicode.IsDigit(ch) {
			bare = false
			break
		}
	}
	if bare {
		return val
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, ch := range val {
		switch ch {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}
