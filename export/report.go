// ABOUTME: Structured exports of a full analysis (components, paths, statistics) as JSON, YAML, or Markdown.
// ABOUTME: Uses gopkg.in/yaml.v3 for YAML and a deterministic section order for Markdown.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/2389-research/flowtrace/analysis"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatDOT      = "dot"
	FormatMermaid  = "mermaid"
)

// Formats lists every format accepted by Write, in help-text order.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatDOT, FormatMermaid}

// Document is the serializable form of one analysis.
type Document struct {
	Components []analysis.TreeGroup `json:"components" yaml:"components"`
	Edges      []string             `json:"edges" yaml:"edges"`
	Parse      analysis.ParseResult `json:"parse" yaml:"parse"`
	Report     *analysis.PathReport `json:"report,omitempty" yaml:"report,omitempty"`
	Notices    []analysis.Notice    `json:"notices" yaml:"notices"`
}

// NewDocument assembles a Document. report may be nil when paths were not analysed.
func NewDocument(res analysis.ParseResult, report *analysis.PathReport) Document {
	doc := Document{
		Components: res.Tree(),
		Parse:      res,
		Report:     report,
		Notices:    []analysis.Notice{analysis.ParseNotice(res)},
	}
	for _, e := range res.Graph().Edges {
		doc.Edges = append(doc.Edges, e.Connection())
	}
	if report != nil {
		doc.Notices = append(doc.Notices, analysis.PathNotice(*report))
	}
	return doc
}

// JSON marshals the document with two-space indentation.
func JSON(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML marshals the document as YAML.
func YAML(doc Document) ([]byte, error) {
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// Markdown renders the document as a Markdown report.
func Markdown(doc Document) string {
	var out strings.Builder

	out.WriteString("# Flow Analysis\n\n")
	out.WriteString("## Components\n\n")
	if len(doc.Components) == 0 {
		out.WriteString("_No registered components found._\n")
	}
	for _, g := range doc.Components {
		fmt.Fprintf(&out, "### %s (%d)\n\n", g.Name, len(g.Items))
		for _, it := range g.Items {
			if d := it.Details(); d != "" {
				fmt.Fprintf(&out, "- `%s`: %s\n", it.ID, d)
			} else {
				fmt.Fprintf(&out, "- `%s`\n", it.ID)
			}
		}
		out.WriteString("\n")
	}

	if len(doc.Parse.Diagnostics) > 0 {
		out.WriteString("## Diagnostics\n\n")
		for _, d := range doc.Parse.Diagnostics {
			fmt.Fprintf(&out, "- **%s** %s (`%s`)\n", d.Severity, d.Message, d.Rule)
		}
		out.WriteString("\n")
	}

	if doc.Report == nil {
		return out.String()
	}

	r := doc.Report
	out.WriteString("## Paths\n\n")
	fmt.Fprintf(&out, "- Start points: %s\n", joinOrNone(r.Endpoints.Starts))
	fmt.Fprintf(&out, "- End points: %s\n", joinOrNone(r.Endpoints.Ends))
	fmt.Fprintf(&out, "- Total paths: %d\n", r.Stats.TotalPaths)
	fmt.Fprintf(&out, "- Average path length: %s segments\n\n", r.Stats.AverageDisplay())

	for _, sink := range r.Paths.Sinks() {
		fmt.Fprintf(&out, "### %s\n\n", sink)
		if len(r.Paths[sink]) == 0 {
			out.WriteString("_no path found_\n\n")
			continue
		}
		for i, p := range r.Paths[sink] {
			fmt.Fprintf(&out, "%d. %s\n", i+1, strings.Join(p, " → "))
		}
		out.WriteString("\n")
	}
	return out.String()
}

// Write renders the analysis in format to w. The text format is the plain
// component listing followed by the path summary.
func Write(w io.Writer, format string, res analysis.ParseResult, report *analysis.PathReport) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, Text(res, report))
		return err
	case FormatJSON:
		data, err := JSON(NewDocument(res, report))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		data, err := YAML(NewDocument(res, report))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(NewDocument(res, report)))
		return err
	case FormatDOT:
		_, err := io.WriteString(w, DOT(res, report))
		return err
	case FormatMermaid:
		return WriteMermaid(w, res)
	default:
		return fmt.Errorf("unsupported format %q: supported formats are %s", format, strings.Join(Formats, ", "))
	}
}

// Text renders the component tree and, when present, the path summary.
func Text(res analysis.ParseResult, report *analysis.PathReport) string {
	var b strings.Builder
	tree := res.Tree()
	if len(tree) == 0 {
		b.WriteString("No registered components found.\n")
	}
	for _, g := range tree {
		fmt.Fprintf(&b, "%s (Total: %d)\n", g.Name, len(g.Items))
		for _, it := range g.Items {
			if d := it.Details(); d != "" {
				fmt.Fprintf(&b, "  %-8s %s\n", it.ID, d)
			} else {
				fmt.Fprintf(&b, "  %s\n", it.ID)
			}
		}
	}
	if report != nil {
		b.WriteString("\n")
		b.WriteString(analysis.FormatSummary(*report))
	}
	return b.String()
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
