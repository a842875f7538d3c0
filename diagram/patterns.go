// ABOUTME: The two regular expressions that define the accepted diagram grammar, kept as named units.
// ABOUTME: Labeled node declarations look like ID["text"]; edges are ID -+> ID with an optional inline label.
package diagram

import "regexp"

// MinArrowDashes is the fewest dashes accepted before '>' in an arrow.
// With one dash, "->", "-->" and "--->" are all edges; "==>" and ">" are not.
const MinArrowDashes = 1

// ArrowToken is the arrow grammar shared by the whole-text edge scan and the
// per-line connection splitter. It must stay in step with MinArrowDashes.
const ArrowToken = `-+>`

// identifier matches a node token: letters, digits and underscores.
const identifier = `[\p{L}\p{N}_]+`

// inlineLabel matches an optional ["..."] annotation attached to an identifier.
const inlineLabel = `(?:\["[^\]]*"\])?`

var (
	// LabeledNodePattern captures (id, label) from ID["label"]. The label is
	// taken verbatim: no escaping or unescaping is applied.
	LabeledNodePattern = regexp.MustCompile(`(` + identifier + `)\["([^\]]+)"\]`)

	// EdgePattern captures (source, target) from "A --> B", "A["x"]--->B" and
	// longer dash runs.
	EdgePattern = regexp.MustCompile(`(` + identifier + `)` + inlineLabel + `\s*` + ArrowToken + `\s*(` + identifier + `)`)

	// ArrowPattern splits a line into the segments between arrows.
	ArrowPattern = regexp.MustCompile(`\s*` + ArrowToken + `\s*`)

	labelBodyPattern  = regexp.MustCompile(`\["[^\]]*"\]`)
	leadingIDPattern  = regexp.MustCompile(`^\s*(` + identifier + `)`)
	trailingIDPattern = regexp.MustCompile(`(` + identifier + `)` + inlineLabel + `\s*$`)
)

// MaskLabels blanks the body of every ["..."] annotation so arrow-like text
// inside a label is never read as an edge.
func MaskLabels(text string) string {
	return labelBodyPattern.ReplaceAllString(text, `[""]`)
}

// LeadingIdentifier returns the identifier at the start of s, ignoring
// leading whitespace, or "" when s does not start with one.
func LeadingIdentifier(s string) string {
	m := leadingIDPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// TrailingIdentifier returns the identifier (with optional inline label)
// that ends s, or "" when there is none.
func TrailingIdentifier(s string) string {
	m := trailingIDPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// ScanEdges returns every edge in text in encounter order. The scan resumes at
// each match's target so chained arrows ("A-->B-->C") yield every link.
func ScanEdges(text string) []Edge {
	text = MaskLabels(text)
	var edges []Edge
	pos := 0
	for pos < len(text) {
		loc := EdgePattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		edges = append(edges, Edge{
			From: text[pos+loc[2] : pos+loc[3]],
			To:   text[pos+loc[4] : pos+loc[5]],
		})
		pos += loc[4]
	}
	return edges
}
