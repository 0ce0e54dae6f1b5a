package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/aadarshjain/kubectl-mcp-server/internal/instrumentation"
	"github.com/aadarshjain/kubectl-mcp-server/internal/k8s"
	"github.com/aadarshjain/kubectl-mcp-server/internal/kubectl"
	"github.com/aadarshjain/kubectl-mcp-server/internal/logging"
	"github.com/aadarshjain/kubectl-mcp-server/internal/server"
	"github.com/aadarshjain/kubectl-mcp-server/internal/tools/contexttools"
	"github.com/aadarshjain/kubectl-mcp-server/internal/tools/kubectltools"
)

// serverName identifies the MCP server to clients.
const serverName = "kubectl-mcp-server"

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Kubernetes settings
	KubeconfigPath string
	KubeContext    string

	// Executor settings
	KubectlPath string
	ExecTimeout time.Duration

	// Logging settings
	LogLevel  string
	LogFormat string
	DebugMode bool

	// Transport settings
	Transport       string
	HTTPAddr        string
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// Metrics settings
	MetricsAddr string
}

// Validate checks the configuration for values that cannot work.
func (c ServeConfig) Validate() error {
	switch c.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("invalid transport %q: must be %s, %s or %s",
			c.Transport, transportStdio, transportSSE, transportStreamableHTTP)
	}

	if c.ExecTimeout < 0 {
		return fmt.Errorf("exec-timeout must not be negative, got %s", c.ExecTimeout)
	}

	switch c.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log format %q: must be json or text", c.LogFormat)
	}

	return nil
}

// runServe wires the dependencies and runs the MCP server until the
// transport stops or a shutdown signal arrives.
func runServe(config ServeConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	level := config.LogLevel
	if config.DebugMode {
		level = "debug"
	}
	logger := logging.NewAdapter(logging.NewLogger(level, config.LogFormat))

	var metrics *instrumentation.Metrics
	if config.MetricsAddr != "" {
		metrics = instrumentation.NewMetrics()
	}

	k8sClient, err := k8s.NewClient(&k8s.ClientConfig{
		KubeconfigPath: config.KubeconfigPath,
		Context:        config.KubeContext,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	executor, err := kubectl.NewExecutor(&kubectl.ExecutorConfig{
		KubectlPath:    config.KubectlPath,
		KubeconfigPath: config.KubeconfigPath,
		Timeout:        config.ExecTimeout,
		Logger:         logger,
		Metrics:        metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create kubectl executor: %w", err)
	}

	serverConfig := server.NewDefaultConfig()
	serverConfig.ServerName = serverName
	serverConfig.Version = rootCmd.Version
	serverConfig.KubeConfigPath = config.KubeconfigPath
	serverConfig.DefaultContext = config.KubeContext
	serverConfig.KubectlPath = config.KubectlPath
	serverConfig.ExecTimeout = config.ExecTimeout
	serverConfig.LogLevel = level
	serverConfig.LogFormat = config.LogFormat
	serverConfig.MetricsAddr = config.MetricsAddr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := server.NewServerContext(ctx,
		server.WithK8sClient(k8sClient),
		server.WithExecutor(executor),
		server.WithLogger(logger),
		server.WithConfig(serverConfig),
		server.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := sc.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", "error", err)
		}
	}()

	mcpSrv := mcpserver.NewMCPServer(serverName, rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := contexttools.RegisterContextTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register context tools: %w", err)
	}
	if err := kubectltools.RegisterKubectlTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register kubectl tools: %w", err)
	}

	if metrics != nil {
		metricsServer := startMetricsServer(config.MetricsAddr, metrics, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("starting MCP server", "transport", config.Transport)

	switch config.Transport {
	case transportSSE:
		return runSSEServer(ctx, mcpSrv, config.HTTPAddr, config.SSEEndpoint, config.MessageEndpoint, logger)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(ctx, mcpSrv, sc, config.HTTPAddr, config.HTTPEndpoint, logger)
	default:
		return runStdioServer(mcpSrv)
	}
}

// startMetricsServer serves the Prometheus scrape endpoint on its own
// listener, separate from the MCP transport.
func startMetricsServer(addr string, metrics *instrumentation.Metrics, logger server.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Info("metrics server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	return srv
}
