package pathfind

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomLines turns index pairs into connection strings over a small node
// alphabet so cycles and shared nodes are common.
func randomLines(pairs []int) []string {
	lines := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		lines = append(lines, fmt.Sprintf("N%d--->N%d", pairs[i], pairs[i+1]))
	}
	return lines
}

// TestPathInvariants verifies structural guarantees on arbitrary graphs.
func TestPathInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	nodeIndexes := gen.SliceOfN(16, gen.IntRange(0, 5))

	properties.Property("every path is simple and follows connections", prop.ForAll(
		func(pairs []int) bool {
			e := New(randomLines(pairs))
			ep := e.Endpoints()
			e.FindAllPaths(ep.Starts, ep.Ends)

			linked := make(map[Connection]bool)
			for _, c := range e.Connections() {
				linked[c] = true
			}
			for sink, paths := range e.Paths() {
				for _, p := range paths {
					if len(p) < 2 || p[len(p)-1] != sink {
						return false
					}
					seen := make(map[string]bool)
					for i, id := range p {
						if seen[id] {
							return false
						}
						seen[id] = true
						if i > 0 && !linked[Connection{Source: p[i-1], Target: id}] {
							return false
						}
					}
				}
			}
			return true
		},
		nodeIndexes,
	))

	properties.Property("starts have no incoming and ends no outgoing connections", prop.ForAll(
		func(pairs []int) bool {
			e := New(randomLines(pairs))
			ep := e.Endpoints()
			for _, c := range e.Connections() {
				for _, s := range ep.Starts {
					if c.Target == s {
						return false
					}
				}
				for _, end := range ep.Ends {
					if c.Source == end {
						return false
					}
				}
			}
			return true
		},
		nodeIndexes,
	))

	properties.Property("average is zero exactly when no paths exist", prop.ForAll(
		func(pairs []int) bool {
			e := New(randomLines(pairs))
			ep := e.Endpoints()
			e.FindAllPaths(ep.Starts, ep.Ends)
			st := e.Stats()
			if st.TotalPaths == 0 {
				return st.AverageSegments == 0
			}
			return st.AverageSegments >= 1
		},
		nodeIndexes,
	))

	properties.TestingRun(t)
}
