package kubectltools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aadarshjain/kubectl-mcp-server/internal/kubectl"
	"github.com/aadarshjain/kubectl-mcp-server/internal/server"
)

// Fixed error strings returned to callers. These are part of the tool
// contract and must not be reworded.
const (
	errMissingPrefix = "Error: Command must start with 'kubectl'"
	errReadOnlyOnly  = "Error: Only read-only kubectl commands are allowed (get, describe, etc.)"
)

// handleRunKubectlCommand executes a command under the unrestricted tier.
// Only the invocation prefix is checked before forwarding.
func handleRunKubectlCommand(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return runCommand(ctx, request, sc, "run_kubectl_command", kubectl.TierUnrestricted)
}

// handleRunKubectlCommandRO executes a command under the read-only tier.
// The classifier verdict is enforced before any process is spawned.
func handleRunKubectlCommandRO(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return runCommand(ctx, request, sc, "run_kubectl_command_ro", kubectl.TierReadOnly)
}

func runCommand(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, tool string, tier kubectl.TrustTier) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	command, ok := args["command"].(string)
	if !ok || command == "" {
		sc.Metrics().RecordToolInvocation(tool, "error")
		return mcp.NewToolResultError("command is required"), nil
	}

	result, err := sc.Executor().Execute(ctx, command, tier)
	if err != nil {
		sc.Metrics().RecordToolInvocation(tool, "error")
		switch {
		case errors.Is(err, kubectl.ErrMissingKubectlPrefix):
			return mcp.NewToolResultError(errMissingPrefix), nil
		case errors.Is(err, kubectl.ErrPolicyDenied):
			return mcp.NewToolResultError(errReadOnlyOnly), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
	}

	if !result.Succeeded {
		sc.Logger().Error("kubectl command failed", "tier", tier.String(), "exit_code", result.ExitCode)
		sc.Metrics().RecordToolInvocation(tool, "error")
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", result.Stderr)), nil
	}

	sc.Metrics().RecordToolInvocation(tool, "success")
	return mcp.NewToolResultText(result.Stdout), nil
}
