// ABOUTME: Help display for the flowtrace CLI with grouped flags, examples, and config location.
// ABOUTME: Provides printHelp for usage output and configStatus for the resolved config file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/2389-research/flowtrace/config"
	"github.com/2389-research/flowtrace/export"
)

// printHelp writes a formatted help message to w, including usage patterns,
// grouped flags, examples, and the config file status.
func printHelp(w io.Writer, ver string) {
	fmt.Fprintf(w, "flowtrace %s: component and path analysis for flow diagrams\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  flowtrace [flags] <diagram.mmd>      List components")
	fmt.Fprintln(w, "  flowtrace -paths <diagram.mmd>       List components and every start-to-end path")
	fmt.Fprintln(w, "  flowtrace -lint <diagram.mmd>        Print diagnostics only")
	fmt.Fprintln(w, "  flowtrace -tui <diagram.mmd>         Explore interactively")
	fmt.Fprintln(w, "  flowtrace -server [-port 2389]       Start HTTP API server")
	fmt.Fprintln(w, "  Use - as the file name to read from stdin.")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Analysis Flags:")
	fmt.Fprintln(w, "  -paths                Run path analysis after parsing")
	fmt.Fprintf(w, "  -format <fmt>         %s (default: text)\n", strings.Join(export.Formats, ", "))
	fmt.Fprintln(w, "  -max-paths <n>        Stop after n paths (default: unlimited)")
	fmt.Fprintln(w, "  -lint                 Print diagnostics; exit 1 on warnings")
	fmt.Fprintln(w, "  -tui                  Interactive terminal UI (p analyze, tab switch, q quit)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Server Flags:")
	fmt.Fprintln(w, "  -server               Start HTTP server mode")
	fmt.Fprintln(w, "  -port <port>          Server port (default: 2389)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -config <file>        Config file (env: FLOWTRACE_CONFIG)")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  flowtrace network.mmd")
	fmt.Fprintln(w, "  flowtrace -paths -format markdown network.mmd")
	fmt.Fprintln(w, "  flowtrace -paths -format dot network.mmd | dot -Tsvg > network.svg")
	fmt.Fprintln(w, "  cat network.mmd | flowtrace -paths -")
	fmt.Fprintln(w, "  flowtrace -server -port 8080")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config:")
	fmt.Fprintf(w, "  %s\n", configStatus())
}

// configStatus describes the default config file and whether it exists.
func configStatus() string {
	path, err := config.DefaultPath()
	if err != nil {
		return "[unavailable] " + err.Error()
	}
	if _, err := os.Stat(path); err != nil {
		return path + " [not found]"
	}
	return path + " [found]"
}
