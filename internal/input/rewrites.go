package input

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dusk-indust/applycheck/internal/reconcile"
)

// rewriteTable mirrors the canonical rewrite document: a single object keyed
// by "paragraphs".
type rewriteTable struct {
	Paragraphs []rewriteEntry `json:"paragraphs"`
}

type rewriteEntry struct {
	ParagraphID   string `json:"paragraphId"`
	RewrittenText string `json:"rewrittenText"`
}

// LoadRewriteTable reads the source-of-truth rewrite table. Every failure
// here is an input-contract error: it names the artifact and fails before
// any verification logic runs.
func LoadRewriteTable(path string) ([]reconcile.RewriteRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rewrite table %s: %w", path, err)
	}

	var table rewriteTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("rewrite table %s: malformed JSON: %w", path, err)
	}
	if table.Paragraphs == nil {
		return nil, fmt.Errorf("rewrite table %s: missing required key %q", path, "paragraphs")
	}

	seen := make(map[string]bool, len(table.Paragraphs))
	records := make([]reconcile.RewriteRecord, 0, len(table.Paragraphs))
	for i, entry := range table.Paragraphs {
		if entry.ParagraphID == "" {
			return nil, fmt.Errorf("rewrite table %s: paragraph %d has an empty paragraphId", path, i)
		}
		if seen[entry.ParagraphID] {
			return nil, fmt.Errorf("rewrite table %s: duplicate paragraphId %q", path, entry.ParagraphID)
		}
		seen[entry.ParagraphID] = true
		records = append(records, reconcile.RewriteRecord{
			ParagraphID:   entry.ParagraphID,
			RewrittenText: entry.RewrittenText,
		})
	}
	return records, nil
}
