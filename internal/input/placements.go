package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dusk-indust/applycheck/internal/reconcile"
	"github.com/dusk-indust/applycheck/internal/textnorm"
)

// Placement-log column names. The log is written by the placement step; a
// missing required column is a pipeline contract break and fails before any
// row is processed.
const (
	colParagraphID = "paragraph_id"
	colFingerprint = "observed_fingerprint"
	colMatchType   = "match_type"
	colCompanionID = "companion_paragraph_id" // optional
)

// LoadPlacementLog reads the placement log CSV and yields one Observation per
// row. The header row is validated first; per-row problems (an unknown
// match_type) are still input-contract errors because the log is machine
// written and a malformed row means the writer is broken.
func LoadPlacementLog(path string) ([]reconcile.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("placement log %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("placement log %s: reading header: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{colParagraphID, colFingerprint, colMatchType} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("placement log %s: missing required column %q", path, required)
		}
	}
	companionIdx, hasCompanion := cols[colCompanionID]

	var observations []reconcile.Observation
	for row := 2; ; row++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("placement log %s: row %d: %w", path, row, err)
		}

		matchType := reconcile.MatchType(rec[cols[colMatchType]])
		if matchType != reconcile.MatchExact && matchType != reconcile.MatchFuzzy {
			return nil, fmt.Errorf("placement log %s: row %d: unknown match_type %q", path, row, rec[cols[colMatchType]])
		}

		obs := reconcile.Observation{
			ParagraphID: rec[cols[colParagraphID]],
			Fingerprint: textnorm.Fingerprint(rec[cols[colFingerprint]]),
			MatchType:   matchType,
		}
		if hasCompanion && companionIdx < len(rec) {
			obs.CompanionID = rec[companionIdx]
		}
		observations = append(observations, obs)
	}
	return observations, nil
}
