package main

import (
	"context"
	"log"
	"os"

	"github.com/dusk-indust/applycheck/internal/verify"
)

func runVerify(flags cliFlags) error {
	if flags.Verbose {
		log.Printf("verifying %s against %s (workers=%d)", flags.Rewrites, flags.Placements, flags.Workers)
	}

	rep, err := verify.Run(context.Background(), verify.Options{
		RewritesPath:   flags.Rewrites,
		PlacementsPath: flags.Placements,
		ReportPath:     flags.Report,
		SampleLimit:    flags.SampleLimit,
		Workers:        flags.Workers,
	})
	if err != nil {
		return err
	}

	rep.WriteSummary(os.Stdout)
	if flags.Verbose && flags.Report != "" {
		log.Printf("report written to %s", flags.Report)
	}

	if !rep.Passed {
		return errVerificationFailed
	}
	return nil
}
