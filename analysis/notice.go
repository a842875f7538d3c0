// ABOUTME: Post-analysis notices that hosts show after parsing and after path analysis.
// ABOUTME: Zero discovered paths is an informational outcome with its own warning wording, not an error.
package analysis

import (
	"fmt"
	"strings"
)

// Notice levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// Notice is a short titled message for a host to surface.
type Notice struct {
	Level   string `json:"level" yaml:"level"`
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
}

// ParseNotice summarizes a completed component analysis.
func ParseNotice(r ParseResult) Notice {
	counts := r.ComponentCounts()
	if counts == "" {
		counts = "(no registered components found)"
	}
	return Notice{
		Level:   LevelInfo,
		Title:   "Success",
		Message: "Component analysis completed!\n\nComponent counts:\n" + counts,
	}
}

// PathNotice summarizes a completed path analysis. A report with no paths
// yields a warning that names the detected endpoints.
func PathNotice(r PathReport) Notice {
	st := r.Stats
	if st.TotalPaths == 0 {
		return Notice{
			Level: LevelWarning,
			Title: "Analysis Complete",
			Message: fmt.Sprintf(
				"No valid paths found from detected source points (%s) to end points (%s).\n"+
					"Please check the diagnostic information for details.",
				strings.Join(r.Endpoints.Starts, ", "),
				strings.Join(r.Endpoints.Ends, ", "),
			),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found paths to %d out of %d end points.\n", st.EndPointsWithPaths, len(st.EndPoints))
	fmt.Fprintf(&b, "Start points detected: %s\n", strings.Join(r.Endpoints.Starts, ", "))
	fmt.Fprintf(&b, "End points detected: %s\n", strings.Join(r.Endpoints.Ends, ", "))
	fmt.Fprintf(&b, "Total number of unique paths: %d\n", st.TotalPaths)
	fmt.Fprintf(&b, "Average path length: %s segments", st.AverageDisplay())
	if st.Truncated {
		b.WriteString("\nPath limit reached: results are incomplete")
	}
	return Notice{Level: LevelInfo, Title: "Analysis Complete", Message: b.String()}
}
