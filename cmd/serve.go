package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		kubeconfigPath string
		kubeContext    string
		kubectlPath    string
		execTimeout    time.Duration

		logLevel  string
		logFormat string
		debugMode bool

		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string

		// Metrics options
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the kubectl MCP server",
		Long: `Start the MCP server exposing kubeconfig context management and gated
kubectl command execution via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

The run_kubectl_command tool performs zero safety checks beyond requiring
the 'kubectl' invocation prefix: it runs with the full privileges of the
server's kubectl configuration and ambient credentials. Operators who want
callers restricted to information gathering should instruct them to use
run_kubectl_command_ro, which enforces a read-only command policy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := ServeConfig{
				KubeconfigPath:  kubeconfigPath,
				KubeContext:     kubeContext,
				KubectlPath:     kubectlPath,
				ExecTimeout:     execTimeout,
				LogLevel:        logLevel,
				LogFormat:       logFormat,
				DebugMode:       debugMode,
				Transport:       transport,
				HTTPAddr:        httpAddr,
				SSEEndpoint:     sseEndpoint,
				MessageEndpoint: messageEndpoint,
				HTTPEndpoint:    httpEndpoint,
				MetricsAddr:     metricsAddr,
			}
			return runServe(config)
		},
	}

	// Kubernetes flags
	cmd.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to the kubeconfig file (default: standard loading rules)")
	cmd.Flags().StringVar(&kubeContext, "context", "", "Initial kubeconfig context (default: the kubeconfig's current-context)")

	// Executor flags
	cmd.Flags().StringVar(&kubectlPath, "kubectl-path", "", "Path to the kubectl binary (default: resolve from PATH)")
	cmd.Flags().DurationVar(&execTimeout, "exec-timeout", 60*time.Second, "Timeout for a single kubectl invocation")

	// Logging flags
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&logFormat, "log-format", "json", "Log format: json or text")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (shorthand for --log-level=debug)")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Metrics flags
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address for the Prometheus scrape endpoint (empty disables metrics)")

	return cmd
}
