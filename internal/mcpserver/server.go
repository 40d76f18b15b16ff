// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the spec-to-server pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	mcpadapter "github.com/gacabartosz/mcp-universal-adapter"
)

const serverInstructions = `mcp-adapt MCP server — turns OpenAPI 3.x documents into runnable MCP server projects.

Tools:
- parse_spec — load a document and preview the MCP surface it would produce (tool names, parameters, auth).
- generate_server — run the full pipeline: parse, normalize, generate, optionally write, and validate.
- list_targets — list the supported target languages and their artifact sets.

Spec inputs: every spec argument is an object with exactly one of file (path on disk), url (http/https), or content (inline JSON or YAML).

Configuration: defaults are configurable via MCP_ADAPT_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- MCP_ADAPT_MAX_INLINE_SIZE (default: 10485760) — max inline spec content size in bytes
- MCP_ADAPT_MAX_ARTIFACT_BYTES (default: 262144) — max artifact content returned inline per file
- MCP_ADAPT_HTTP_TIMEOUT (default: 30s) — timeout for fetching specs from URLs
- MCP_ADAPT_ALLOW_PRIVATE_IPS (default: false) — allow fetching specs from private/loopback addresses

URL inputs resolve through an SSRF guard: requests to private, loopback, and link-local addresses are refused unless MCP_ADAPT_ALLOW_PRIVATE_IPS is set.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "mcp-adapt", Version: mcpadapter.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_spec",
		Description: "Parse an OpenAPI 3.x document and summarize the MCP server it would produce: API title, version, base URL, auth mechanism, credential environment variables, and one entry per generated tool (name, method, path, parameter count). Use this to preview a spec before generating.",
	}, handleParseSpec)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_server",
		Description: "Generate a complete MCP server project from an OpenAPI 3.x document. Targets: python (FastMCP) or go (official MCP SDK); default python. Artifacts are written to output_dir when given, otherwise the run stays in memory. Set include_content=true to return artifact contents inline (capped per file by MCP_ADAPT_MAX_ARTIFACT_BYTES). Every run validates the artifact set and reports the result.",
	}, handleGenerateServer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_targets",
		Description: "List the supported target languages and the artifact set each one generates.",
	}, handleListTargets)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
