// Package contexttools registers the MCP tools for kubeconfig context
// discovery and switching.
package contexttools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/aadarshjain/kubectl-mcp-server/internal/server"
)

// RegisterContextTools registers the context management tools with the MCP
// server.
func RegisterContextTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listClustersTool := mcp.NewTool("list_clusters",
		mcp.WithDescription("List all available Kubernetes clusters and contexts from the kubeconfig file, "+
			"including which context is currently active"),
	)

	s.AddTool(listClustersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListClusters(ctx, request, sc)
	})

	switchContextTool := mcp.NewTool("switch_context",
		mcp.WithDescription("Switch the active Kubernetes context to connect to a different cluster. "+
			"Subsequent operations are directed at the new context."),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("Name of the kubeconfig context to switch to. Use list_clusters to see available contexts."),
		),
	)

	s.AddTool(switchContextTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSwitchContext(ctx, request, sc)
	})

	return nil
}
