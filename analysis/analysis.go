// ABOUTME: Collaborator boundary for hosts: ParseDiagram, ExtractPaths, and FormatSummary.
// ABOUTME: Each call builds fresh parser and extractor instances, so results never share mutable state.
package analysis

import (
	"github.com/2389-research/flowtrace/diagram"
	"github.com/2389-research/flowtrace/diagram/validator"
	"github.com/2389-research/flowtrace/pathfind"
)

// ParseResult is the structured outcome of parsing one diagram text.
type ParseResult struct {
	Groups       map[string][]string  `json:"groups" yaml:"groups"`
	Labels       map[string]string    `json:"labels" yaml:"labels"`
	Unregistered []string             `json:"unregistered,omitempty" yaml:"unregistered,omitempty"`
	Edges        []diagram.Edge       `json:"edges" yaml:"edges"`
	Diagnostics  []diagram.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	registry *diagram.Registry
	graph    *diagram.Graph
}

// Registry returns the registry the result was classified against.
func (r ParseResult) Registry() *diagram.Registry {
	if r.registry == nil {
		return diagram.DefaultRegistry()
	}
	return r.registry
}

// Graph returns the graph built from the parse: every labeled node and edge
// endpoint, with duplicate edges collapsed.
func (r ParseResult) Graph() *diagram.Graph {
	if r.graph == nil {
		g := diagram.NewGraph()
		for _, e := range r.Edges {
			g.AddEdge(e)
		}
		return g
	}
	return r.graph
}

// Empty reports whether the parse found nothing at all.
func (r ParseResult) Empty() bool {
	return len(r.Labels) == 0 && len(r.Edges) == 0
}

// PathReport is the structured outcome of one path analysis.
type PathReport struct {
	Connections []string           `json:"connections" yaml:"connections"`
	Endpoints   pathfind.Endpoints `json:"endpoints" yaml:"endpoints"`
	Paths       pathfind.PathSet   `json:"paths" yaml:"paths"`
	Stats       pathfind.Stats     `json:"stats" yaml:"stats"`
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRegistry classifies components against reg instead of the default.
func WithRegistry(reg *diagram.Registry) Option {
	return func(a *Analyzer) {
		if reg != nil {
			a.registry = reg
		}
	}
}

// WithPathLimit caps the number of paths collected per analysis.
func WithPathLimit(n int) Option {
	return func(a *Analyzer) {
		a.pathLimit = n
	}
}

// Analyzer holds immutable settings shared by analysis calls. It keeps no
// per-call state and is safe for concurrent use.
type Analyzer struct {
	registry  *diagram.Registry
	pathLimit int
}

// New returns an Analyzer using the default registry and no path limit.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{registry: diagram.DefaultRegistry()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Registry returns the analyzer's component registry.
func (a *Analyzer) Registry() *diagram.Registry {
	return a.registry
}

// ParseDiagram parses text into component groups, labels, edges, and lint
// diagnostics. Empty text yields an empty result.
func (a *Analyzer) ParseDiagram(text string) ParseResult {
	res := diagram.NewParser(a.registry).Parse(text)
	g := res.Graph()
	return ParseResult{
		Groups:       res.Groups,
		Labels:       res.Labels,
		Unregistered: res.Unregistered,
		Edges:        res.Edges,
		Diagnostics:  validator.Lint(g, a.registry),
		registry:     a.registry,
		graph:        g,
	}
}

// ExtractPaths deduplicates edges, infers endpoints, and enumerates every
// simple path from each start to each end. No edges yields a neutral report.
func (a *Analyzer) ExtractPaths(edges []diagram.Edge) PathReport {
	lines := make([]string, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, e.Connection())
	}

	ex := pathfind.New(lines, pathfind.WithPathLimit(a.pathLimit))
	ep := ex.Endpoints()
	ex.FindAllPaths(ep.Starts, ep.Ends)

	conns := ex.Connections()
	rendered := make([]string, 0, len(conns))
	for _, c := range conns {
		rendered = append(rendered, c.String())
	}
	return PathReport{
		Connections: rendered,
		Endpoints:   ep,
		Paths:       ex.Paths(),
		Stats:       ex.Stats(),
	}
}

// Analyze parses text and runs path analysis on the resulting edges.
func (a *Analyzer) Analyze(text string) (ParseResult, PathReport) {
	res := a.ParseDiagram(text)
	return res, a.ExtractPaths(res.Edges)
}

// ParseDiagram parses text with the default registry.
func ParseDiagram(text string) ParseResult {
	return New().ParseDiagram(text)
}

// ExtractPaths runs path analysis over edges with no path limit.
func ExtractPaths(edges []diagram.Edge) PathReport {
	return New().ExtractPaths(edges)
}

// FormatSummary renders a report as the display string shown to users.
func FormatSummary(r PathReport) string {
	paths := r.Paths
	if paths == nil {
		paths = pathfind.PathSet{}
	}
	return pathfind.FormatPaths(paths, r.Stats.Truncated)
}
