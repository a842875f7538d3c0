// ABOUTME: flowtrace HTTP server exposing diagram parsing, path analysis, and HTML reports behind a chi router.
// ABOUTME: Every request builds its own analyzer, so no parse or path state is shared between calls.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/2389-research/flowtrace/analysis"
	"github.com/2389-research/flowtrace/diagram"
	"github.com/2389-research/flowtrace/export"
	"github.com/2389-research/flowtrace/pathfind"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New()

// Server is the flowtrace HTTP API.
type Server struct {
	registry  *diagram.Registry
	pathLimit int
	metrics   *Metrics
	router    chi.Router
	addr      string
}

// ServerConfig holds the configuration for the web server.
type ServerConfig struct {
	Addr     string            // listen address (default: "127.0.0.1:2389")
	Registry *diagram.Registry // component types (default: built-in)
	MaxPaths int               // path limit per analysis, 0 for none
}

// NewServer creates a Server and sets up routing.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:2389"
	}
	if cfg.Registry == nil {
		cfg.Registry = diagram.DefaultRegistry()
	}
	s := &Server{
		registry:  cfg.Registry,
		pathLimit: cfg.MaxPaths,
		metrics:   NewMetrics(),
		addr:      cfg.Addr,
	}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully. A clean shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("web shutdown error=%v", err)
		}
	}()

	log.Printf("web listen addr=%s", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogger(s.metrics))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/paths", s.handlePaths)
		r.Post("/analyze", s.handleAnalyze)
	})
	r.Post("/report", s.handleReport)

	return r
}

// newAnalyzer returns a fresh analyzer for one request.
func (s *Server) newAnalyzer() *analysis.Analyzer {
	return analysis.New(
		analysis.WithRegistry(s.registry),
		analysis.WithPathLimit(s.pathLimit),
	)
}

type diagramRequest struct {
	Text string `json:"text"`
}

type pathsRequest struct {
	Connections []string       `json:"connections" validate:"max=10000,dive,max=4096"`
	Edges       []diagram.Edge `json:"edges" validate:"max=10000"`
}

type parseResponse struct {
	Result     analysis.ParseResult `json:"result"`
	Components []analysis.TreeGroup `json:"components"`
	Notice     analysis.Notice      `json:"notice"`
}

type pathsResponse struct {
	Report  analysis.PathReport `json:"report"`
	Summary string              `json:"summary"`
	Notice  analysis.Notice     `json:"notice"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleParse classifies the components of a diagram.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res := s.newAnalyzer().ParseDiagram(req.Text)
	s.metrics.AnalysesTotal.WithLabelValues("parse").Inc()

	writeJSON(w, http.StatusOK, parseResponse{
		Result:     res,
		Components: res.Tree(),
		Notice:     analysis.ParseNotice(res),
	})
}

// handlePaths runs path analysis over raw connection lines and/or edges.
func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	var req pathsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	edges := append([]diagram.Edge(nil), req.Edges...)
	for _, line := range req.Connections {
		for _, c := range pathfind.ExtractConnections(line) {
			edges = append(edges, diagram.Edge{From: c.Source, To: c.Target})
		}
	}

	report := s.newAnalyzer().ExtractPaths(edges)
	s.recordReport(report)

	writeJSON(w, http.StatusOK, pathsResponse{
		Report:  report,
		Summary: analysis.FormatSummary(report),
		Notice:  analysis.PathNotice(report),
	})
}

// handleAnalyze parses a diagram and runs path analysis in one call.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res, report := s.newAnalyzer().Analyze(req.Text)
	s.metrics.AnalysesTotal.WithLabelValues("parse").Inc()
	s.recordReport(report)

	writeJSON(w, http.StatusOK, export.NewDocument(res, &report))
}

// handleReport renders the Markdown analysis report as an HTML page.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res, report := s.newAnalyzer().Analyze(req.Text)
	s.metrics.AnalysesTotal.WithLabelValues("report").Inc()
	s.recordReport(report)

	body, err := markdownToHTML(export.Markdown(export.NewDocument(res, &report)))
	if err != nil {
		log.Printf("web report render error=%v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := reportPage.Execute(w, body); err != nil {
		log.Printf("web report write error=%v", err)
	}
}

func (s *Server) recordReport(report analysis.PathReport) {
	s.metrics.AnalysesTotal.WithLabelValues("paths").Inc()
	s.metrics.RecordPaths(report.Stats.TotalPaths, report.Stats.Truncated)
}

var reportPage = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Flow Analysis</title>
</head>
<body>
{{.}}
</body>
</html>
`))

// markdownToHTML converts Markdown to HTML with goldmark. Raw HTML in the
// input is not rendered.
func markdownToHTML(input string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(input), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// decodeRequest reads a JSON body into dst and validates it. On failure it
// writes the error response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if isMaxBytesError(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return false
	}
	return true
}

func isMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web encode error=%v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
