// ABOUTME: Deterministic text report and summary statistics for a discovered PathSet.
// ABOUTME: Sinks are listed in sorted order; unreachable sinks are reported as "no path found".
package pathfind

import (
	"fmt"
	"math"
	"strings"
)

// NoPathFound is the marker written for a sink with no discovered paths.
const NoPathFound = "no path found"

// Stats summarizes one FindAllPaths run.
type Stats struct {
	StartPoints        []string `json:"start_points" yaml:"start_points"`
	EndPoints          []string `json:"end_points" yaml:"end_points"`
	TotalPaths         int      `json:"total_paths" yaml:"total_paths"`
	EndPointsWithPaths int      `json:"end_points_with_paths" yaml:"end_points_with_paths"`
	// AverageSegments is the mean segment count over all paths, 0 when none.
	AverageSegments float64 `json:"average_segments" yaml:"average_segments"`
	Truncated       bool    `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// AverageDisplay formats AverageSegments rounded to one decimal place.
func (s Stats) AverageDisplay() string {
	return fmt.Sprintf("%.1f", s.AverageSegments)
}

// RoundedAverage returns AverageSegments rounded to one decimal place.
func (s Stats) RoundedAverage() float64 {
	return math.Round(s.AverageSegments*10) / 10
}

// ComputeStats derives summary statistics from a PathSet.
func ComputeStats(starts []string, paths PathSet) Stats {
	st := Stats{
		StartPoints: append([]string{}, starts...),
		EndPoints:   paths.Sinks(),
	}
	segments := 0
	for _, sink := range st.EndPoints {
		if len(paths[sink]) > 0 {
			st.EndPointsWithPaths++
		}
		for _, p := range paths[sink] {
			st.TotalPaths++
			segments += p.Segments()
		}
	}
	if st.TotalPaths > 0 {
		st.AverageSegments = float64(segments) / float64(st.TotalPaths)
	}
	return st
}

// Stats returns statistics for the most recent FindAllPaths call.
func (e *Extractor) Stats() Stats {
	st := ComputeStats(e.starts, e.paths)
	st.Truncated = e.truncated
	return st
}

// Summary renders the most recent PathSet as a human-readable report.
func (e *Extractor) Summary() string {
	return FormatPaths(e.paths, e.truncated)
}

// FormatPaths renders paths grouped by sink in sorted order, numbered from 1
// within each sink.
func FormatPaths(paths PathSet, truncated bool) string {
	var b strings.Builder
	b.WriteString("Path Analysis\n")

	sinks := paths.Sinks()
	if len(sinks) == 0 {
		b.WriteString("\n" + NoPathFound + ": no end points detected\n")
		return b.String()
	}

	for _, sink := range sinks {
		fmt.Fprintf(&b, "\n=== End point %s ===\n", sink)
		if len(paths[sink]) == 0 {
			b.WriteString("  " + NoPathFound + "\n")
			continue
		}
		for i, p := range paths[sink] {
			fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, p, pluralSegments(p.Segments()))
		}
	}

	st := ComputeStats(nil, paths)
	fmt.Fprintf(&b, "\nTotal paths: %d\n", st.TotalPaths)
	fmt.Fprintf(&b, "Average path length: %s segments\n", st.AverageDisplay())
	if truncated {
		b.WriteString("Path limit reached: results are incomplete\n")
	}
	return b.String()
}

func pluralSegments(n int) string {
	if n == 1 {
		return "1 segment"
	}
	return fmt.Sprintf("%d segments", n)
}
