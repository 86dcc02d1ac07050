package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/applycheck/internal/textnorm"
	"github.com/dusk-indust/applycheck/internal/verify"
)

// VerifyService handles MCP tool calls. It exists so the agent driving the
// rewrite pipeline can gate promotion on verification without shelling out.
type VerifyService struct{}

// NewVerifyService creates a VerifyService.
func NewVerifyService() *VerifyService {
	return &VerifyService{}
}

// VerifyBatch runs a full verification pass over the two input artifacts.
// Input-contract problems (missing file, missing column) surface as tool
// errors; verification findings come back in the counts, never as errors.
func (s *VerifyService) VerifyBatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyBatchInput,
) (*mcp.CallToolResult, VerifyBatchOutput, error) {
	rep, err := verify.Run(ctx, verify.Options{
		RewritesPath:   input.RewritesPath,
		PlacementsPath: input.PlacementsPath,
		ReportPath:     input.ReportPath,
		SampleLimit:    input.SampleLimit,
		Workers:        input.Workers,
	})
	if err != nil {
		return nil, VerifyBatchOutput{}, err
	}

	counts := make(map[string]int, len(rep.Counts))
	for outcome, n := range rep.Counts {
		counts[string(outcome)] = n
	}
	return nil, VerifyBatchOutput{
		Passed:           rep.Passed,
		Counts:           counts,
		SourceRecords:    rep.SourceRecords,
		Checked:          rep.Checked,
		ReportPath:       input.ReportPath,
		AlgorithmVersion: rep.AlgorithmVersion,
	}, nil
}

// FingerprintText normalizes and fingerprints one text with the shared
// placement contract. Used to spot-check the placement side for drift.
func (s *VerifyService) FingerprintText(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FingerprintTextInput,
) (*mcp.CallToolResult, FingerprintTextOutput, error) {
	return nil, FingerprintTextOutput{
		Normalized:       textnorm.Normalize(input.Text),
		Fingerprint:      string(textnorm.ComputeFingerprint(input.Text)),
		AlgorithmVersion: textnorm.AlgorithmVersion,
	}, nil
}
