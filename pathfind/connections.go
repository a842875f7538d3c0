// ABOUTME: Connection-string parsing and degree-based endpoint inference for path analysis.
// ABOUTME: Both are pure functions over text and connection lists so they can be tested in isolation.
package pathfind

import (
	"sort"

	"github.com/2389-research/flowtrace/diagram"
)

// Connection is one directed link between two node identifiers.
type Connection struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// String renders the connection in explicit connection-string form.
func (c Connection) String() string {
	return c.Source + diagram.ConnectionArrow + c.Target
}

// ExtractConnections parses one line of diagram text. Each arrow yields one
// pair, so "A-->B-->C" gives (A,B) and (B,C). A line without an arrow, or an
// arrow with no identifier on one side, contributes nothing for that arrow.
func ExtractConnections(line string) []Connection {
	segments := diagram.ArrowPattern.Split(diagram.MaskLabels(line), -1)
	if len(segments) < 2 {
		return nil
	}

	var conns []Connection
	for i := 0; i+1 < len(segments); i++ {
		src := diagram.TrailingIdentifier(segments[i])
		dst := diagram.LeadingIdentifier(segments[i+1])
		if src == "" || dst == "" {
			continue
		}
		conns = append(conns, Connection{Source: src, Target: dst})
	}
	return conns
}

// Endpoints holds the inferred start and end points of a connection set.
type Endpoints struct {
	Starts []string `json:"starts" yaml:"starts"`
	Ends   []string `json:"ends" yaml:"ends"`
}

// InferEndpoints derives endpoints from degree: a start is never a target and
// an end is never a source. Nodes absent from conns appear in neither list.
// Both lists are sorted.
func InferEndpoints(conns []Connection) Endpoints {
	hasIn := make(map[string]bool)
	hasOut := make(map[string]bool)
	var nodes []string
	seen := make(map[string]bool)
	for _, c := range conns {
		for _, id := range []string{c.Source, c.Target} {
			if !seen[id] {
				seen[id] = true
				nodes = append(nodes, id)
			}
		}
		hasOut[c.Source] = true
		hasIn[c.Target] = true
	}

	ep := Endpoints{Starts: []string{}, Ends: []string{}}
	for _, id := range nodes {
		if !hasIn[id] {
			ep.Starts = append(ep.Starts, id)
		}
		if !hasOut[id] {
			ep.Ends = append(ep.Ends, id)
		}
	}
	sort.Strings(ep.Starts)
	sort.Strings(ep.Ends)
	return ep
}

// dedupe drops repeated (source, target) pairs, keeping first-seen order.
func dedupe(conns []Connection) []Connection {
	seen := make(map[Connection]bool, len(conns))
	out := make([]Connection, 0, len(conns))
	for _, c := range conns {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
