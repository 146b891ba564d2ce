// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes oasbind capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbind"
)

const serverInstructions = `oasbind MCP server — classifies API description schemas and resolves cross-cutting policies into code-generation descriptors.

Tools:
- describe: bind a document and return its descriptor summary (schema nodes, handlers, unions, issues)
- policies: bind a document and return the resolved cache, retry, rate limit, and security policies

Documents are provided per call by file path or inline content; nothing is cached between calls.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasbind", Version: oasbind.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe",
		Description: "Bind an API description document and return its descriptor summary: classified schema types with kinds, handler descriptors per operation, polymorphic union configurations, and binding issues. Use include_deprecated=true to bind deprecated schemas and operations as well.",
	}, handleDescribe)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "policies",
		Description: "Bind an API description document and return the cross-cutting policies resolved from its extension cascade: cache policies, retry/resilience policies, rate limiter names, and security policies derived from scope requirements.",
	}, handlePolicies)
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
