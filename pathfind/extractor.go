// ABOUTME: Exhaustive simple-path enumeration between start and end points of a connection set.
// ABOUTME: An Extractor is built per analysis; its PathSet is rebuilt on every FindAllPaths call.
package pathfind

import (
	"sort"
	"strings"
)

// Path is an ordered sequence of node identifiers with no repeats.
type Path []string

// Segments returns the number of edges traversed (node count - 1).
func (p Path) Segments() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// String joins the path with arrows: "A -> B -> C".
func (p Path) String() string {
	return strings.Join(p, " -> ")
}

// PathSet maps each end point to every simple path discovered to it.
type PathSet map[string][]Path

// Sinks returns the end points in sorted order.
func (ps PathSet) Sinks() []string {
	sinks := make([]string, 0, len(ps))
	for s := range ps {
		sinks = append(sinks, s)
	}
	sort.Strings(sinks)
	return sinks
}

// Total returns the number of paths across all sinks.
func (ps PathSet) Total() int {
	n := 0
	for _, paths := range ps {
		n += len(paths)
	}
	return n
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPathLimit stops enumeration once n paths have been collected. Zero or
// a negative n means no limit.
func WithPathLimit(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.limit = n
		}
	}
}

// Extractor enumerates simple paths over the connections it was built from.
// It is not safe for concurrent use; build one per analysis.
type Extractor struct {
	lines []string
	conns []Connection
	adj   map[string][]string

	limit     int
	paths     PathSet
	starts    []string
	ends      []string
	truncated bool
}

// New builds an extractor from raw connection expressions such as "A--->B".
// Lines may hold several chained arrows; repeated pairs are collapsed.
func New(connections []string, opts ...Option) *Extractor {
	e := &Extractor{
		lines: append([]string(nil), connections...),
		adj:   make(map[string][]string),
		paths: PathSet{},
	}
	for _, opt := range opts {
		opt(e)
	}

	var all []Connection
	for _, line := range connections {
		all = append(all, ExtractConnections(line)...)
	}
	e.conns = dedupe(all)
	for _, c := range e.conns {
		e.adj[c.Source] = append(e.adj[c.Source], c.Target)
	}
	return e
}

// ExtractConnections parses one line of text; see the package-level function.
func (e *Extractor) ExtractConnections(line string) []Connection {
	return ExtractConnections(line)
}

// Lines returns the raw connection expressions the extractor was built from.
func (e *Extractor) Lines() []string {
	return append([]string(nil), e.lines...)
}

// Connections returns the deduplicated connections in first-seen order.
func (e *Extractor) Connections() []Connection {
	return append([]Connection(nil), e.conns...)
}

// Endpoints infers start and end points from the full connection set.
func (e *Extractor) Endpoints() Endpoints {
	return InferEndpoints(e.conns)
}

// FindAllPaths replaces the PathSet with every simple path from each start
// to each end, skipping pairs where start == end. Every end gets an entry,
// empty when unreachable. Paths for a sink are ordered by start (as given)
// and then by depth-first discovery in connection order.
func (e *Extractor) FindAllPaths(starts, ends []string) {
	e.paths = PathSet{}
	e.truncated = false
	e.starts = append([]string(nil), starts...)
	e.ends = uniqueSorted(ends)

	for _, end := range e.ends {
		e.paths[end] = []Path{}
	}
	for _, end := range e.ends {
		for _, start := range e.starts {
			if start == end {
				continue
			}
			visited := map[string]bool{start: true}
			e.walk(start, end, visited, Path{start})
		}
	}
}

// walk extends path from node towards end without revisiting any node, so
// recursion depth is bounded by the number of nodes even when cycles exist.
func (e *Extractor) walk(node, end string, visited map[string]bool, path Path) {
	if e.truncated {
		return
	}
	if node == end {
		if e.limit > 0 && e.paths.Total() >= e.limit {
			e.truncated = true
			return
		}
		e.paths[end] = append(e.paths[end], append(Path(nil), path...))
		return
	}
	for _, next := range e.adj[node] {
		if visited[next] {
			continue
		}
		visited[next] = true
		e.walk(next, end, visited, append(path, next))
		delete(visited, next)
	}
}

// Paths returns the PathSet from the most recent FindAllPaths call.
func (e *Extractor) Paths() PathSet {
	return e.paths
}

// Truncated reports whether the last FindAllPaths stopped at the path limit.
func (e *Extractor) Truncated() bool {
	return e.truncated
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
