package mcptools

// --- MCP Tool Input/Output Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// VerifyBatchInput is the input for the verify_batch MCP tool.
type VerifyBatchInput struct {
	RewritesPath   string `json:"rewritesPath" jsonschema:"absolute path to the rewrite table JSON (keyed by paragraphs)"`
	PlacementsPath string `json:"placementsPath" jsonschema:"absolute path to the placement log CSV"`
	ReportPath     string `json:"reportPath,omitempty" jsonschema:"where to write the JSON report artifact (optional)"`
	SampleLimit    int    `json:"sampleLimit,omitempty" jsonschema:"maximum diagnostic samples per failing category (default: 10)"`
	Workers        int    `json:"workers,omitempty" jsonschema:"parallel reconciliation shards (default: 1)"`
}

// VerifyBatchOutput is the result of the verify_batch MCP tool.
type VerifyBatchOutput struct {
	Passed           bool           `json:"passed"`
	Counts           map[string]int `json:"counts"`
	SourceRecords    int            `json:"sourceRecords"`
	Checked          int            `json:"checked"`
	ReportPath       string         `json:"reportPath,omitempty"`
	AlgorithmVersion string         `json:"algorithmVersion"`
}

// FingerprintTextInput is the input for the fingerprint_text MCP tool.
type FingerprintTextInput struct {
	Text string `json:"text" jsonschema:"raw text to normalize and fingerprint with the shared contract"`
}

// FingerprintTextOutput is the result of the fingerprint_text MCP tool.
type FingerprintTextOutput struct {
	Normalized       string `json:"normalized"`
	Fingerprint      string `json:"fingerprint"`
	AlgorithmVersion string `json:"algorithmVersion"`
}
