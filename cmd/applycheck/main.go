package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/applycheck/internal/config"
	"github.com/dusk-indust/applycheck/internal/mcptools"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Rewrites    string
	Placements  string
	Report      string
	Workers     int
	SampleLimit int
	Verbose     bool
	ServeMCP    bool
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

// errVerificationFailed marks a completed run whose report did not pass.
// Distinguished from input-contract errors so the release script can tell
// "the batch is bad" (exit 1) from "the invocation is broken" (exit 2).
var errVerificationFailed = errors.New("verification failed")

func main() {
	err := run(os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, errVerificationFailed):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("applycheck", flag.ContinueOnError)
	fs.StringVar(&flags.Rewrites, "rewrites", "", "path to the rewrite table JSON")
	fs.StringVar(&flags.Placements, "placements", "", "path to the placement log CSV")
	fs.StringVar(&flags.Report, "report", "", "path for the JSON report artifact")
	fs.IntVar(&flags.Workers, "workers", 0, "parallel reconciliation shards (0 = serial)")
	fs.IntVar(&flags.SampleLimit, "sample-limit", 0, "max diagnostic samples per failing category (0 = default)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server for agent integration")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	if flags.ServeMCP {
		server := mcptools.NewVerifyMCPServer()
		return mcptools.RunVerifyMCPServerStdio(context.Background(), server)
	}

	if fs.Arg(0) == "fingerprint" {
		return runFingerprint(fs.Args()[1:])
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyConfigDefaults(&flags, cfg)

	return runVerify(flags)
}

// applyConfigDefaults fills unset flags from the project config file.
func applyConfigDefaults(flags *cliFlags, cfg *config.ProjectConfig) {
	if flags.Rewrites == "" {
		flags.Rewrites = cfg.Rewrites
	}
	if flags.Placements == "" {
		flags.Placements = cfg.Placements
	}
	if flags.Report == "" {
		flags.Report = cfg.Report
	}
	if flags.Workers == 0 {
		flags.Workers = cfg.Workers
	}
	if flags.SampleLimit == 0 {
		flags.SampleLimit = cfg.SampleLimit
	}
	if cfg.Verbose {
		flags.Verbose = true
	}
}
