package contexttools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aadarshjain/kubectl-mcp-server/internal/server"
)

// clusterEntry is one row of the list_clusters response.
type clusterEntry struct {
	Name    string `json:"name"`
	Cluster string `json:"cluster"`
}

// listClustersResponse is the wire shape of the list_clusters result.
type listClustersResponse struct {
	Clusters      []clusterEntry `json:"clusters"`
	ActiveContext string         `json:"active_context"`
}

// switchContextResponse is the wire shape of the switch_context result.
type switchContextResponse struct {
	Message string `json:"message"`
}

// handleListClusters returns all kubeconfig contexts and the active one.
func handleListClusters(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	contexts, err := sc.K8sClient().ListContexts(ctx)
	if err != nil {
		sc.Metrics().RecordToolInvocation("list_clusters", "error")
		return mcp.NewToolResultError(fmt.Sprintf("Error listing clusters: %v", err)), nil
	}

	response := listClustersResponse{Clusters: []clusterEntry{}}
	for _, info := range contexts {
		response.Clusters = append(response.Clusters, clusterEntry{Name: info.Name, Cluster: info.Cluster})
		if info.Current {
			response.ActiveContext = info.Name
		}
	}

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		sc.Metrics().RecordToolInvocation("list_clusters", "error")
		return mcp.NewToolResultError(fmt.Sprintf("Error marshaling clusters: %v", err)), nil
	}

	sc.Metrics().RecordToolInvocation("list_clusters", "success")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleSwitchContext validates and switches the active context.
func handleSwitchContext(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	contextName, ok := args["context"].(string)
	if !ok || contextName == "" {
		sc.Metrics().RecordToolInvocation("switch_context", "error")
		return mcp.NewToolResultError("context is required"), nil
	}

	if err := sc.K8sClient().SwitchContext(ctx, contextName); err != nil {
		sc.Logger().Error("failed to switch context", "context", contextName, "error", err)
		sc.Metrics().RecordToolInvocation("switch_context", "error")
		return mcp.NewToolResultError(fmt.Sprintf("Error switching context to %s: %v", contextName, err)), nil
	}

	jsonData, err := json.Marshal(switchContextResponse{
		Message: fmt.Sprintf("Switched to context: %s", contextName),
	})
	if err != nil {
		sc.Metrics().RecordToolInvocation("switch_context", "error")
		return mcp.NewToolResultError(fmt.Sprintf("Error marshaling response: %v", err)), nil
	}

	sc.Metrics().RecordToolInvocation("switch_context", "success")
	return mcp.NewToolResultText(string(jsonData)), nil
}
