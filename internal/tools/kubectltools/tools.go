// Package kubectltools registers the MCP tools that execute kubectl
// commands, in two trust tiers: an unrestricted tool with full kubectl
// privileges, and a read-only tool gated by the command classifier.
package kubectltools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/aadarshjain/kubectl-mcp-server/internal/server"
)

// RegisterKubectlTools registers the command execution tools with the MCP
// server.
func RegisterKubectlTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	runCommandTool := mcp.NewTool("run_kubectl_command",
		mcp.WithDescription("Execute any kubectl command with full privileges (use with caution). "+
			"WARNING: this tool can perform destructive operations such as delete, apply, patch and scale; "+
			"it runs with the same permissions as the server's kubectl configuration. "+
			"Use run_kubectl_command_ro for safe, read-only information gathering."),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The complete kubectl command to execute. Must start with \"kubectl\". "+
				"Example: \"kubectl scale deployment nginx --replicas=3\""),
		),
	)

	s.AddTool(runCommandTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRunKubectlCommand(ctx, request, sc)
	})

	runCommandROTool := mcp.NewTool("run_kubectl_command_ro",
		mcp.WithDescription("Execute read-only kubectl commands safely for information gathering. "+
			"Allowed operations: get, describe, explain, config view, config get-contexts, version, "+
			"api-resources, cluster-info. Mutating operations (delete, update, patch, apply, create, "+
			"replace, edit, scale, cordon, drain, taint, --overwrite flags) are blocked."),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The kubectl command to execute. Must start with \"kubectl\" and be a "+
				"read-only operation. Example: \"kubectl get pods -n default\""),
		),
	)

	s.AddTool(runCommandROTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRunKubectlCommandRO(ctx, request, sc)
	})

	return nil
}
