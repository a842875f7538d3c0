// ABOUTME: Writes a parsed diagram back out as a normalized Mermaid flowchart.
// ABOUTME: Declarations are sorted by ID and each distinct edge appears once, so re-parsing is lossless.
package export

import (
	"fmt"
	"io"

	"github.com/2389-research/flowtrace/analysis"
)

// WriteMermaid writes res as a "flowchart LR" Mermaid document to w.
func WriteMermaid(w io.Writer, res analysis.ParseResult) error {
	g := res.Graph()

	if _, err := fmt.Fprintln(w, "flowchart LR"); err != nil {
		return err
	}
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n.Label == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "    %s[\"%s\"]\n", id, n.Label); err != nil {
			return err
		}
	}
	if len(g.Edges) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(w, "    %s --> %s\n", e.From, e.To); err != nil {
			return err
		}
	}
	return nil
}
