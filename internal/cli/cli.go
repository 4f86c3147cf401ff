package cli

import (
	"flag"
	"fmt"
	"strings"
)

// CLIArgs are the command-line arguments for the daemon.
type CLIArgs struct {
	// ConfigPath points at a TOML config file; empty means defaults.
	ConfigPath string

	// ListenAddr overrides the config file's listen address when non-empty.
	ListenAddr string

	// StorageRoot overrides where the registry database lives.
	StorageRoot string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("bakerd", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "Path to a TOML config file")
		listenAddr  = fs.String("listen", "", "HTTP listen address (overrides config)")
		storageRoot = fs.String("storage", "", "Storage root directory (overrides config)")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(nil)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}

	return &CLIArgs{
		ConfigPath:  strings.TrimSpace(*configPath),
		ListenAddr:  strings.TrimSpace(*listenAddr),
		StorageRoot: strings.TrimSpace(*storageRoot),
		RawArgs:     args,
	}, nil
}
