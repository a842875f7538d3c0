// ABOUTME: Tests for the host-facing analysis entry points, component tree, and notices.
// ABOUTME: Exercises the full parse -> extract -> format flow on small irrigation diagrams.
package analysis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/2389-research/flowtrace/diagram"
)

const farmDiagram = `flowchart LR
    DP1["Main Intake"]
    MC1["Canal 1"]
    MC2["Canal 2"]
    ZT1["Gate 1"]
    F1["Field North"]
    F2["Field South"]

    DP1 --> MC1
    DP1 --> MC2
    MC1 ---> ZT1 --> F1
    MC2 --> F1
    MC2 --> F2
    MC2 --> F2
`

func TestParseDiagramBasics(t *testing.T) {
	res := ParseDiagram(farmDiagram)

	if got := res.Groups["F"]; !reflect.DeepEqual(got, []string{"F1", "F2"}) {
		t.Errorf("group F = %v", got)
	}
	if res.Labels["ZT1"] != "Gate 1" {
		t.Errorf("label ZT1 = %q", res.Labels["ZT1"])
	}
	if len(res.Edges) != 7 {
		t.Errorf("expected 7 raw edges, got %d", len(res.Edges))
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %+v", res.Diagnostics)
	}
	if res.Empty() {
		t.Error("result should not be empty")
	}
}

func TestParseDiagramIdempotent(t *testing.T) {
	a := New()
	if !reflect.DeepEqual(a.ParseDiagram(farmDiagram), a.ParseDiagram(farmDiagram)) {
		t.Error("ParseDiagram returned different results for identical text")
	}
}

func TestExtractPathsFarm(t *testing.T) {
	res := ParseDiagram(farmDiagram)
	report := ExtractPaths(res.Edges)

	if !reflect.DeepEqual(report.Endpoints.Starts, []string{"DP1"}) {
		t.Errorf("starts = %v", report.Endpoints.Starts)
	}
	if !reflect.DeepEqual(report.Endpoints.Ends, []string{"F1", "F2"}) {
		t.Errorf("ends = %v", report.Endpoints.Ends)
	}
	if len(report.Connections) != 6 {
		t.Errorf("expected 6 unique connections, got %v", report.Connections)
	}

	var got []string
	for _, p := range report.Paths["F1"] {
		got = append(got, p.String())
	}
	want := []string{"DP1 -> MC1 -> ZT1 -> F1", "DP1 -> MC2 -> F1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("paths to F1 = %v, want %v", got, want)
	}
	// (3 + 2 + 2) / 3
	if report.Stats.TotalPaths != 3 || report.Stats.AverageDisplay() != "2.3" {
		t.Errorf("stats = %+v", report.Stats)
	}
}

func TestExtractPathsNoArrows(t *testing.T) {
	res := ParseDiagram(`DP1["Only a node"]`)
	report := ExtractPaths(res.Edges)

	if report.Stats.TotalPaths != 0 {
		t.Errorf("TotalPaths = %d", report.Stats.TotalPaths)
	}
	if len(report.Endpoints.Starts) != 0 || len(report.Endpoints.Ends) != 0 {
		t.Errorf("endpoints = %+v", report.Endpoints)
	}
}

func TestExtractPathsNilEdges(t *testing.T) {
	report := ExtractPaths(nil)
	if report.Stats.TotalPaths != 0 || report.Stats.AverageSegments != 0 {
		t.Errorf("expected neutral stats, got %+v", report.Stats)
	}
	if !strings.Contains(FormatSummary(report), "no path found") {
		t.Errorf("summary = %q", FormatSummary(report))
	}
}

func TestFormatSummaryZeroValue(t *testing.T) {
	got := FormatSummary(PathReport{})
	if !strings.HasPrefix(got, "Path Analysis") {
		t.Errorf("FormatSummary(zero) = %q", got)
	}
}

func TestFormatSummaryFarm(t *testing.T) {
	report := ExtractPaths(ParseDiagram(farmDiagram).Edges)
	got := FormatSummary(report)

	want := `Path Analysis

=== End point F1 ===
  1. DP1 -> MC1 -> ZT1 -> F1 (3 segments)
  2. DP1 -> MC2 -> F1 (2 segments)

=== End point F2 ===
  1. DP1 -> MC2 -> F2 (2 segments)

Total paths: 3
Average path length: 2.3 segments
`
	if got != want {
		t.Errorf("FormatSummary mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestAnalyzerPathLimit(t *testing.T) {
	a := New(WithPathLimit(1))
	_, report := a.Analyze(farmDiagram)
	if report.Stats.TotalPaths != 1 || !report.Stats.Truncated {
		t.Errorf("stats = %+v", report.Stats)
	}
}

func TestAnalyzerCustomRegistry(t *testing.T) {
	reg := diagram.NewRegistry(diagram.ComponentType{Key: "P", Name: "Pump"})
	a := New(WithRegistry(reg))
	res := a.ParseDiagram(`P1["Pump"] F1["Field"]` + "\nP1 --> F1")

	if _, ok := res.Groups["F"]; ok {
		t.Error("F is not registered in the custom registry")
	}
	if !reflect.DeepEqual(res.Unregistered, []string{"F1"}) {
		t.Errorf("Unregistered = %v", res.Unregistered)
	}
	if a.Registry() != reg {
		t.Error("Registry() should return the configured registry")
	}
}

func TestTree(t *testing.T) {
	res := ParseDiagram(farmDiagram)
	tree := res.Tree()

	var keys []string
	for _, g := range tree {
		keys = append(keys, g.Key)
	}
	if !reflect.DeepEqual(keys, []string{"DP", "F", "MC", "ZT"}) {
		t.Fatalf("group keys = %v", keys)
	}

	fields := tree[1]
	if fields.Name != "Field" || len(fields.Items) != 2 {
		t.Fatalf("fields group = %+v", fields)
	}
	if got := fields.Items[0].Details(); got != "Field North (Connected to: ZT1, MC2)" {
		t.Errorf("F1 details = %q", got)
	}
	if got := fields.Items[1].Predecessors; !reflect.DeepEqual(got, []string{"MC2"}) {
		t.Errorf("F2 predecessors = %v", got)
	}

	canals := tree[2]
	if canals.Items[0].Predecessors != nil {
		t.Errorf("non-terminal types should not list predecessors: %v", canals.Items[0].Predecessors)
	}
	if canals.Items[0].Details() != "Canal 1" {
		t.Errorf("MC1 details = %q", canals.Items[0].Details())
	}
}

func TestComponentCounts(t *testing.T) {
	res := ParseDiagram(farmDiagram)
	want := "Distribution Point: 1\nField: 2\nCanal: 2\nGate: 1"
	if got := res.ComponentCounts(); got != want {
		t.Errorf("ComponentCounts = %q, want %q", got, want)
	}
}

func TestParseNotice(t *testing.T) {
	n := ParseNotice(ParseDiagram(farmDiagram))
	if n.Level != LevelInfo || !strings.Contains(n.Message, "Canal: 2") {
		t.Errorf("notice = %+v", n)
	}
	empty := ParseNotice(ParseDiagram(""))
	if !strings.Contains(empty.Message, "no registered components") {
		t.Errorf("empty notice = %+v", empty)
	}
}

func TestPathNotice(t *testing.T) {
	ok := PathNotice(ExtractPaths(ParseDiagram(farmDiagram).Edges))
	if ok.Level != LevelInfo {
		t.Errorf("level = %q", ok.Level)
	}
	for _, want := range []string{
		"Found paths to 2 out of 2 end points.",
		"Start points detected: DP1",
		"End points detected: F1, F2",
		"Total number of unique paths: 3",
		"Average path length: 2.3 segments",
	} {
		if !strings.Contains(ok.Message, want) {
			t.Errorf("notice missing %q:\n%s", want, ok.Message)
		}
	}

	cyc := PathNotice(ExtractPaths(ParseDiagram("A-->B-->A").Edges))
	if cyc.Level != LevelWarning || !strings.Contains(cyc.Message, "No valid paths found") {
		t.Errorf("cycle notice = %+v", cyc)
	}
}

func TestParseResultGraphFallback(t *testing.T) {
	r := ParseResult{Edges: []diagram.Edge{{From: "A", To: "B"}, {From: "A", To: "B"}}}
	g := r.Graph()
	if len(g.Edges) != 1 || len(g.Nodes) != 2 {
		t.Errorf("graph = %d nodes %d edges", len(g.Nodes), len(g.Edges))
	}
}
