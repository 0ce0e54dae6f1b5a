package server

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/aadarshjain/kubectl-mcp-server/internal/instrumentation"
	"github.com/aadarshjain/kubectl-mcp-server/internal/k8s"
	"github.com/aadarshjain/kubectl-mcp-server/internal/kubectl"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithK8sClient sets the kubeconfig client for the ServerContext.
func WithK8sClient(client k8s.Client) Option {
	return func(sc *ServerContext) error {
		if client == nil {
			return ErrMissingK8sClient
		}
		sc.k8sClient = client
		return nil
	}
}

// WithExecutor sets the kubectl command executor.
func WithExecutor(executor *kubectl.Executor) Option {
	return func(sc *ServerContext) error {
		if executor == nil {
			return ErrMissingExecutor
		}
		sc.executor = executor
		return nil
	}
}

// WithLogger sets the logger for the ServerContext.
func WithLogger(logger Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithServerName sets the server name in the configuration.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(sc *ServerContext) error {
		sc.metrics = metrics
		return nil
	}
}

// Error definitions for ServerContext validation.
var (
	ErrMissingK8sClient = errors.New("kubernetes client is required")
	ErrMissingExecutor  = errors.New("kubectl executor is required")
	ErrMissingLogger    = errors.New("logger is required")
	ErrMissingConfig    = errors.New("configuration is required")
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// Kubernetes settings
	KubeConfigPath string `json:"kubeConfigPath"`
	DefaultContext string `json:"defaultContext"`

	// Executor settings
	KubectlPath string        `json:"kubectlPath"`
	ExecTimeout time.Duration `json:"execTimeout"`

	// Logging settings
	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`

	// Metrics settings
	MetricsAddr string `json:"metricsAddr"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:  "kubectl-mcp-server",
		Version:     "0.1.0",
		ExecTimeout: kubectl.DefaultTimeout,
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// DefaultLogger is a simple logger wrapping the standard library logger.
// It is replaced by the slog adapter once the serve command has parsed its
// logging flags.
type DefaultLogger struct {
	logger *log.Logger
}

// NewDefaultLogger creates a new default logger with standard error output.
func NewDefaultLogger() Logger {
	return &DefaultLogger{
		logger: log.New(os.Stderr, "[kubectl-mcp-server] ", log.LstdFlags),
	}
}

// Debug logs a debug message.
func (l *DefaultLogger) Debug(msg string, args ...interface{}) {
	l.logger.Println(append([]interface{}{"[DEBUG]", msg}, args...)...)
}

// Info logs an informational message.
func (l *DefaultLogger) Info(msg string, args ...interface{}) {
	l.logger.Println(append([]interface{}{"[INFO]", msg}, args...)...)
}

// Warn logs a warning message.
func (l *DefaultLogger) Warn(msg string, args ...interface{}) {
	l.logger.Println(append([]interface{}{"[WARN]", msg}, args...)...)
}

// Error logs an error message.
func (l *DefaultLogger) Error(msg string, args ...interface{}) {
	l.logger.Println(append([]interface{}{"[ERROR]", msg}, args...)...)
}
