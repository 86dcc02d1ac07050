package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewVerifyMCPServer creates an MCP server with the 2 verification tools
// registered: verify_batch and fingerprint_text.
func NewVerifyMCPServer() *mcp.Server {
	svc := NewVerifyService()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "applycheck",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify_batch",
		Description: "Verify that every rewritten paragraph was placed intact, exactly once. Takes the rewrite table and placement log paths, returns pass/fail with per-outcome counts.",
	}, svc.VerifyBatch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fingerprint_text",
		Description: "Normalize and fingerprint a text with the shared placement contract. Use to spot-check the placement side for algorithm drift.",
	}, svc.FingerprintText)

	return server
}

// RunVerifyMCPServerStdio runs the MCP server on stdio transport, blocking
// until stdin is closed or the context is cancelled.
func RunVerifyMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
