// ABOUTME: Informational lint rules for parsed flow diagrams: cycles, self loops, typing, and connectivity.
// ABOUTME: Lint(g, reg) never blocks analysis; findings explain why paths or endpoints may be missing.
package validator

import (
	"fmt"
	"strings"

	"github.com/2389-research/flowtrace/diagram"
)

// Severity levels used by lint diagnostics.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Lint runs all lint rules on the graph and returns any diagnostics found,
// in rule order and then node order. A nil reg means DefaultRegistry.
func Lint(g *diagram.Graph, reg *diagram.Registry) []diagram.Diagnostic {
	if g == nil {
		return nil
	}
	if reg == nil {
		reg = diagram.DefaultRegistry()
	}

	var diags []diagram.Diagnostic

	diags = append(diags, checkNoEdges(g)...)
	diags = append(diags, checkSelfLoops(g)...)
	diags = append(diags, checkCycles(g)...)
	diags = append(diags, checkIsolated(g)...)
	diags = append(diags, checkUnregisteredTypes(g, reg)...)
	diags = append(diags, checkUnlabeled(g, reg)...)
	diags = append(diags, checkTerminalOutgoing(g, reg)...)
	diags = append(diags, checkTerminalUnfed(g, reg)...)

	return diags
}

// HasWarnings reports whether any diagnostic is a warning.
func HasWarnings(diags []diagram.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// checkNoEdges flags diagrams that declare nodes but connect none of them.
func checkNoEdges(g *diagram.Graph) []diagram.Diagnostic {
	if len(g.Nodes) == 0 || len(g.Edges) > 0 {
		return nil
	}
	return []diagram.Diagnostic{{
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("diagram declares %d node(s) but no connections", len(g.Nodes)),
		Rule:     "no_edges",
	}}
}

// checkSelfLoops flags edges where From == To.
func checkSelfLoops(g *diagram.Graph) []diagram.Diagnostic {
	var diags []diagram.Diagnostic
	for _, e := range g.Edges {
		if e.From == e.To {
			diags = append(diags, diagram.Diagnostic{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("self-loop on node %q", e.From),
				NodeID:   e.From,
				EdgeID:   e.StableID(),
				Rule:     "self_loop",
			})
		}
	}
	return diags
}

// checkCycles reports each cycle found by a three-colour DFS. Nodes on a
// cycle with no other entry or exit never become start or end points.
func checkCycles(g *diagram.Graph) []diagram.Diagnostic {
	const (
		white = iota
		grey
		black
	)

	color := make(map[string]int, len(g.Nodes))
	var stack []string
	var diags []diagram.Diagnostic

	var visit func(id string)
	visit = func(id string) {
		color[id] = grey
		stack = append(stack, id)
		for _, next := range g.Successors(id) {
			switch color[next] {
			case white:
				visit(next)
			case grey:
				if next == id {
					continue // reported by checkSelfLoops
				}
				cycle := cycleFrom(stack, next)
				diags = append(diags, diagram.Diagnostic{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("cycle %s", strings.Join(append(cycle, next), " -> ")),
					NodeID:   next,
					Rule:     "cycle",
				})
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
	}

	for _, id := range g.NodeIDs() {
		if color[id] == white {
			visit(id)
		}
	}
	return diags
}

// cycleFrom returns the tail of stack starting at id.
func cycleFrom(stack []string, id string) []string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == id {
			return append([]string(nil), stack[i:]...)
		}
	}
	return []string{id}
}

// checkIsolated flags declared nodes that take part in no connection.
func checkIsolated(g *diagram.Graph) []diagram.Diagnostic {
	if len(g.Edges) == 0 {
		return nil // covered by checkNoEdges
	}
	var diags []diagram.Diagnostic
	for _, id := range g.Isolated() {
		diags = append(diags, diagram.Diagnostic{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("node %q has no connections and is excluded from path analysis", id),
			NodeID:   id,
			Rule:     "isolated",
		})
	}
	return diags
}

// checkUnregisteredTypes flags nodes whose type key the registry does not know.
func checkUnregisteredTypes(g *diagram.Graph, reg *diagram.Registry) []diagram.Diagnostic {
	var diags []diagram.Diagnostic
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if _, ok := reg.Lookup(n.Type); ok {
			continue
		}
		msg := fmt.Sprintf("node %q has unregistered type %q", id, n.Type)
		if n.Type == "" {
			msg = fmt.Sprintf("node %q has no type prefix", id)
		}
		diags = append(diags, diagram.Diagnostic{
			Severity: SeverityInfo,
			Message:  msg,
			NodeID:   id,
			Rule:     "type_registered",
		})
	}
	return diags
}

// checkUnlabeled flags typed nodes that only ever appear as edge endpoints.
func checkUnlabeled(g *diagram.Graph, reg *diagram.Registry) []diagram.Diagnostic {
	var diags []diagram.Diagnostic
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n.Label != "" {
			continue
		}
		if _, ok := reg.Lookup(n.Type); !ok {
			continue
		}
		diags = append(diags, diagram.Diagnostic{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%s %q is connected but never declared with a label", reg.Name(n.Type), id),
			NodeID:   id,
			Rule:     "label_declared",
		})
	}
	return diags
}

// checkTerminalOutgoing flags terminal-type nodes that feed other nodes.
func checkTerminalOutgoing(g *diagram.Graph, reg *diagram.Registry) []diagram.Diagnostic {
	var diags []diagram.Diagnostic
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if !reg.IsTerminal(n.Type) || g.OutDegree(id) == 0 {
			continue
		}
		diags = append(diags, diagram.Diagnostic{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s %q has %d outgoing connection(s)", reg.Name(n.Type), id, g.OutDegree(id)),
			NodeID:   id,
			Rule:     "terminal_no_outgoing",
		})
	}
	return diags
}

// checkTerminalUnfed flags terminal-type nodes that nothing connects to.
func checkTerminalUnfed(g *diagram.Graph, reg *diagram.Registry) []diagram.Diagnostic {
	var diags []diagram.Diagnostic
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if !reg.IsTerminal(n.Type) || g.InDegree(id) > 0 {
			continue
		}
		diags = append(diags, diagram.Diagnostic{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s %q has no incoming connections", reg.Name(n.Type), id),
			NodeID:   id,
			Rule:     "terminal_fed",
		})
	}
	return diags
}
