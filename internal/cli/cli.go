package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Args are the command-line arguments controlling a smoke run.
// Keep this small for now — add fields as packages need them.
type Args struct {
	// BaseURL is the application under test. Empty means "start the
	// bundled demo app in-process and run against that".
	BaseURL string

	// Backend selects the session backend (chromedp or static).
	Backend string

	// ConfigPath points at a YAML config file; empty uses defaults plus
	// environment overrides.
	ConfigPath string

	// Environment is recorded with the run (e.g. "local", "staging").
	Environment string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns Args. Use in tests by
// passing arbitrary slices. The function is deterministic and does not
// read os.Args.
func ParseArgs(args []string) (*Args, error) {
	fs := flag.NewFlagSet("gowebtest", flag.ContinueOnError)
	var (
		baseURL     = fs.String("base-url", "", "Application under test (empty=start bundled demo app)")
		backend     = fs.String("backend", "", "Session backend: chromedp|static (empty=use config)")
		configPath  = fs.String("config", "", "Path to YAML config file")
		environment = fs.String("env", "local", "Environment label recorded with the run")
	)

	// Keep Parse from writing to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if b := strings.TrimSpace(*backend); b != "" && b != "chromedp" && b != "static" {
		return nil, fmt.Errorf("unknown backend %q", b)
	}

	return &Args{
		BaseURL:     strings.TrimSpace(*baseURL),
		Backend:     strings.TrimSpace(*backend),
		ConfigPath:  strings.TrimSpace(*configPath),
		Environment: *environment,
		RawArgs:     args,
	}, nil
}
