package verify

import (
	"context"
	"fmt"

	"github.com/dusk-indust/applycheck/internal/input"
	"github.com/dusk-indust/applycheck/internal/reconcile"
	"github.com/dusk-indust/applycheck/internal/report"
)

// Options configures one verification run.
type Options struct {
	RewritesPath   string
	PlacementsPath string
	ReportPath     string // empty: no JSON artifact
	SampleLimit    int    // <= 0: report.DefaultSampleLimit
	Workers        int    // <= 1: serial
}

// Run loads both inputs, reconciles the whole batch, and builds the report.
// Input-contract failures return an error before any verification logic runs;
// verification findings never do — they land in the report, which is written
// in full even when the batch fails.
func Run(ctx context.Context, opts Options) (*report.Report, error) {
	if opts.RewritesPath == "" {
		return nil, fmt.Errorf("rewrite table path is required")
	}
	if opts.PlacementsPath == "" {
		return nil, fmt.Errorf("placement log path is required")
	}

	records, err := input.LoadRewriteTable(opts.RewritesPath)
	if err != nil {
		return nil, err
	}
	observations, err := input.LoadPlacementLog(opts.PlacementsPath)
	if err != nil {
		return nil, err
	}

	engine := reconcile.NewEngine(records)
	findings, err := engine.RunParallel(ctx, observations, opts.Workers)
	if err != nil {
		return nil, err
	}

	rep := report.Build(findings, len(records), opts.SampleLimit)
	if opts.ReportPath != "" {
		if err := rep.WriteJSON(opts.ReportPath); err != nil {
			return nil, err
		}
	}
	return rep, nil
}
