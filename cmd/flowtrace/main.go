// ABOUTME: CLI entrypoint for flowtrace with report, lint, TUI, and server modes.
// ABOUTME: Wires config loading, the analysis core, exporters, the HTTP API, and signal handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/flowtrace/analysis"
	"github.com/2389-research/flowtrace/config"
	"github.com/2389-research/flowtrace/diagram/validator"
	"github.com/2389-research/flowtrace/export"
	"github.com/2389-research/flowtrace/tui"
	"github.com/2389-research/flowtrace/web"
)

var version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// cliConfig holds all CLI configuration parsed from flags and positional arguments.
type cliConfig struct {
	serverMode  bool
	port        int
	tuiMode     bool
	showPaths   bool
	lintOnly    bool
	format      string
	configPath  string
	maxPaths    int
	showVersion bool
	diagramFile string
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if cfg.showVersion {
		fmt.Printf("flowtrace %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseFlags parses command-line arguments into a cliConfig.
func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig

	fs := flag.NewFlagSet("flowtrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.serverMode, "server", false, "Start HTTP server mode")
	fs.IntVar(&cfg.port, "port", 0, "Server port (default: from config, else 2389)")
	fs.BoolVar(&cfg.tuiMode, "tui", false, "Explore the diagram in an interactive terminal UI")
	fs.BoolVar(&cfg.showPaths, "paths", false, "Run path analysis after parsing")
	fs.BoolVar(&cfg.lintOnly, "lint", false, "Print diagnostics only; exit 1 when warnings are found")
	fs.StringVar(&cfg.format, "format", export.FormatText, "Output format: "+strings.Join(export.Formats, ", "))
	fs.StringVar(&cfg.configPath, "config", os.Getenv("FLOWTRACE_CONFIG"), "Config file (default: $XDG_CONFIG_HOME/flowtrace/config.yaml)")
	fs.IntVar(&cfg.maxPaths, "max-paths", -1, "Stop after this many paths (default: from config, else unlimited)")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(stderr, version)
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if fs.NArg() > 0 {
		cfg.diagramFile = fs.Arg(0)
	}

	return cfg, nil
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg cliConfig) int {
	settings, err := config.Load(cfg.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if cfg.port > 0 {
		settings.Server.Port = cfg.port
	}
	if cfg.maxPaths >= 0 {
		settings.MaxPaths = cfg.maxPaths
	}

	if cfg.serverMode {
		return runServer(settings)
	}

	if cfg.diagramFile == "" {
		printHelp(stderr, version)
		return 0
	}

	source, err := readDiagram(cfg.diagramFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	opts := []analysis.Option{
		analysis.WithRegistry(settings.Registry()),
		analysis.WithPathLimit(settings.MaxPaths),
	}

	switch {
	case cfg.tuiMode:
		return runTUI(cfg.diagramFile, source, opts)
	case cfg.lintOnly:
		return lintDiagram(source, opts)
	default:
		return report(cfg, source, opts)
	}
}

// readDiagram reads a diagram file, or stdin when path is "-".
func readDiagram(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read diagram: %w", err)
	}
	return string(data), nil
}

// report parses the diagram, optionally runs path analysis, and writes the
// result in the requested format.
func report(cfg cliConfig, source string, opts []analysis.Option) int {
	a := analysis.New(opts...)
	res := a.ParseDiagram(source)

	var pr *analysis.PathReport
	if cfg.showPaths {
		r := a.ExtractPaths(res.Edges)
		pr = &r
	}

	if err := export.Write(stdout, cfg.format, res, pr); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// lintDiagram prints diagnostics and fails when any are warnings.
func lintDiagram(source string, opts []analysis.Option) int {
	res := analysis.New(opts...).ParseDiagram(source)

	for _, d := range res.Diagnostics {
		fmt.Fprintf(stderr, "[%s] %s", d.Severity, d.Message)
		if d.NodeID != "" {
			fmt.Fprintf(stderr, " (node: %s)", d.NodeID)
		}
		if d.EdgeID != "" {
			fmt.Fprintf(stderr, " (edge: %s)", d.EdgeID)
		}
		fmt.Fprintln(stderr)
	}

	if validator.HasWarnings(res.Diagnostics) {
		fmt.Fprintln(stderr, "Diagram has warnings.")
		return 1
	}

	fmt.Fprintln(stdout, "Diagram is clean.")
	return 0
}

// runTUI opens the interactive explorer for one diagram.
func runTUI(path, source string, opts []analysis.Option) int {
	model := tui.NewAppModel(filepath.Base(path), source, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runServer starts the HTTP API and blocks until interrupted.
func runServer(settings config.Config) int {
	server := web.NewServer(web.ServerConfig{
		Addr:     settings.Addr(),
		Registry: settings.Registry(),
		MaxPaths: settings.MaxPaths,
	})

	// Set up context with signal handling for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("server start addr=%s max_paths=%d types=%d", settings.Addr(), settings.MaxPaths, settings.Registry().Len())
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
