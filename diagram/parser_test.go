// ABOUTME: Tests for the diagram parser covering grouping, labels, lenient typing, and idempotence.
// ABOUTME: Uses small Mermaid-style fixtures drawn from irrigation network diagrams.
package diagram

import (
	"reflect"
	"testing"
)

const networkDiagram = `flowchart TD
    DP1["Main Distribution"]
    MC1["Canal North"]
    MC2["Canal South"]
    ZT1["Gate 1"]
    F1["Field A"]
    F2["Field B"]
    X9["Unregistered Pump"]

    DP1 --> MC1
    DP1 ---> MC2
    MC1 --> ZT1 --> F1
    MC2 --> F2
    MC2 --> F2
`

func TestParseGroupsByType(t *testing.T) {
	res := Parse(networkDiagram)

	want := map[string][]string{
		"DP": {"DP1"},
		"MC": {"MC1", "MC2"},
		"ZT": {"ZT1"},
		"F":  {"F1", "F2"},
	}
	if !reflect.DeepEqual(res.Groups, want) {
		t.Errorf("Groups = %v, want %v", res.Groups, want)
	}
	if got := res.TypeKeys(); !reflect.DeepEqual(got, []string{"DP", "F", "MC", "ZT"}) {
		t.Errorf("TypeKeys = %v", got)
	}
	if res.ComponentCount() != 6 {
		t.Errorf("ComponentCount = %d, want 6", res.ComponentCount())
	}
}

func TestParseLabels(t *testing.T) {
	res := Parse(networkDiagram)

	if got := res.Labels["MC2"]; got != "Canal South" {
		t.Errorf("label MC2 = %q, want %q", got, "Canal South")
	}
	if got := res.Labels["X9"]; got != "Unregistered Pump" {
		t.Errorf("label X9 = %q, want %q", got, "Unregistered Pump")
	}
	if !reflect.DeepEqual(res.Unregistered, []string{"X9"}) {
		t.Errorf("Unregistered = %v, want [X9]", res.Unregistered)
	}
}

func TestParseFirstLabelWins(t *testing.T) {
	res := Parse(`F1["First"]` + "\n" + `F1["Second"]`)
	if got := res.Labels["F1"]; got != "First" {
		t.Errorf("label = %q, want %q", got, "First")
	}
	if got := res.Groups["F"]; !reflect.DeepEqual(got, []string{"F1"}) {
		t.Errorf("group F = %v, want [F1]", got)
	}
}

func TestParseEdgesKeepDuplicates(t *testing.T) {
	res := Parse(networkDiagram)

	want := []Edge{
		{"DP1", "MC1"},
		{"DP1", "MC2"},
		{"MC1", "ZT1"},
		{"ZT1", "F1"},
		{"MC2", "F2"},
		{"MC2", "F2"},
	}
	if !reflect.DeepEqual(res.Edges, want) {
		t.Errorf("Edges = %v, want %v", res.Edges, want)
	}
}

func TestParseEdgesWithoutLabels(t *testing.T) {
	res := Parse("A-->B\nB-->C")
	if len(res.Groups) != 0 {
		t.Errorf("expected no groups, got %v", res.Groups)
	}
	if len(res.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(res.Edges))
	}
}

func TestParseUnsupportedArrowIsSilent(t *testing.T) {
	res := Parse("A==>B")
	if len(res.Edges) != 0 {
		t.Errorf("expected no edges for ==>, got %v", res.Edges)
	}
}

func TestParseEmpty(t *testing.T) {
	res := Parse("")
	if len(res.Groups) != 0 || len(res.Labels) != 0 || len(res.Edges) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
	if g := res.Graph(); len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("expected empty graph, got %d nodes %d edges", len(g.Nodes), len(g.Edges))
	}
}

func TestParseIsIdempotent(t *testing.T) {
	p := NewParser(nil)
	first := p.Parse(networkDiagram)
	second := p.Parse(networkDiagram)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse is not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}

	// Mutating one result must not leak into the next.
	first.Groups["MC"][0] = "mutated"
	third := p.Parse(networkDiagram)
	if third.Groups["MC"][0] != "MC1" {
		t.Errorf("result state leaked across parses: %v", third.Groups["MC"])
	}
}

func TestParseCustomRegistry(t *testing.T) {
	reg := DefaultRegistry().Extend(ComponentType{Key: "X", Name: "Pump"})
	res := NewParser(reg).Parse(networkDiagram)
	if got := res.Groups["X"]; !reflect.DeepEqual(got, []string{"X9"}) {
		t.Errorf("group X = %v, want [X9]", got)
	}
	if len(res.Unregistered) != 0 {
		t.Errorf("Unregistered = %v, want none", res.Unregistered)
	}
}

func TestResultGraphMaterializesEndpoints(t *testing.T) {
	res := Parse(networkDiagram + "\nF2 --> Q7\n")
	g := res.Graph()

	if g.Node("Q7") == nil {
		t.Fatal("expected unlabeled edge endpoint Q7 to be materialized")
	}
	if g.Node("Q7").Type != "Q" {
		t.Errorf("Q7 type = %q, want %q", g.Node("Q7").Type, "Q")
	}
	if g.Node("X9") == nil {
		t.Error("expected unregistered labeled node X9 to be kept")
	}
	if g.Node("F1").Label != "Field A" {
		t.Errorf("F1 label = %q", g.Node("F1").Label)
	}
	// MC2 --> F2 appears twice in the text but once in the graph.
	if len(g.Edges) != 6 {
		t.Errorf("expected 6 unique edges, got %d: %v", len(g.Edges), g.Edges)
	}
	for _, e := range g.Edges {
		if g.Node(e.From) == nil || g.Node(e.To) == nil {
			t.Errorf("edge %s has a dangling endpoint", e.StableID())
		}
	}
}

func TestResultConnections(t *testing.T) {
	res := Parse("A --> B\nB -> C")
	want := []string{"A--->B", "B--->C"}
	if got := res.Connections(); !reflect.DeepEqual(got, want) {
		t.Errorf("Connections = %v, want %v", got, want)
	}
}
