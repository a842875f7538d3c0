// ABOUTME: Tests for per-line connection extraction and degree-based endpoint inference.
// ABOUTME: Covers chained arrows, whitespace tolerance, labels, and isolated/cyclic inputs.
package pathfind

import (
	"reflect"
	"testing"
)

func TestExtractConnections(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Connection
	}{
		{"no arrow", "graph TD", nil},
		{"empty", "", nil},
		{"connection string", "A--->B", []Connection{{"A", "B"}}},
		{"padded", "   A  -->  B   ", []Connection{{"A", "B"}}},
		{"single dash", "A->B", []Connection{{"A", "B"}}},
		{"chained", "A-->B-->C", []Connection{{"A", "B"}, {"B", "C"}}},
		{"chained mixed arrows", "A ---> B -> C ----> D", []Connection{{"A", "B"}, {"B", "C"}, {"C", "D"}}},
		{"labels", `DP1["Pump"] --> MC1["Canal A"] --> F1`, []Connection{{"DP1", "MC1"}, {"MC1", "F1"}}},
		{"arrow in label", `A["x-->y"] --> B`, []Connection{{"A", "B"}}},
		{"dangling arrow", "A -->", nil},
		{"edge label skipped", "A -->|flow| B", nil},
		{"double equals", "A ==> B", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractConnections(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractConnections(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestConnectionString(t *testing.T) {
	c := Connection{Source: "MC1", Target: "F2"}
	if c.String() != "MC1--->F2" {
		t.Errorf("String = %q", c.String())
	}
	if got := ExtractConnections(c.String()); !reflect.DeepEqual(got, []Connection{c}) {
		t.Errorf("round trip = %v", got)
	}
}

func TestInferEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		conns      []Connection
		wantStarts []string
		wantEnds   []string
	}{
		{"empty", nil, []string{}, []string{}},
		{"chain", []Connection{{"A", "B"}, {"B", "C"}}, []string{"A"}, []string{"C"}},
		{"disjoint", []Connection{{"X", "Y"}, {"A", "B"}}, []string{"A", "X"}, []string{"B", "Y"}},
		{"cycle", []Connection{{"A", "B"}, {"B", "A"}}, []string{}, []string{}},
		{"self loop", []Connection{{"A", "A"}}, []string{}, []string{}},
		{"diamond", []Connection{{"S", "A"}, {"S", "B"}, {"A", "T"}, {"B", "T"}}, []string{"S"}, []string{"T"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := InferEndpoints(tt.conns)
			if !reflect.DeepEqual(ep.Starts, tt.wantStarts) {
				t.Errorf("Starts = %v, want %v", ep.Starts, tt.wantStarts)
			}
			if !reflect.DeepEqual(ep.Ends, tt.wantEnds) {
				t.Errorf("Ends = %v, want %v", ep.Ends, tt.wantEnds)
			}
		})
	}
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	in := []Connection{{"A", "B"}, {"B", "C"}, {"A", "B"}, {"C", "A"}}
	want := []Connection{{"A", "B"}, {"B", "C"}, {"C", "A"}}
	if got := dedupe(in); !reflect.DeepEqual(got, want) {
		t.Errorf("dedupe = %v, want %v", got, want)
	}
}
