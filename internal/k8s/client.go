package k8s

import (
	"context"

	"k8s.io/apimachinery/pkg/version"
)

// Client defines the interface for kubeconfig context operations and the
// minimal cluster introspection the server needs for readiness checks.
type Client interface {
	// ListContexts returns all contexts defined in the kubeconfig.
	ListContexts(ctx context.Context) ([]ContextInfo, error)

	// GetCurrentContext returns the currently active context.
	GetCurrentContext(ctx context.Context) (*ContextInfo, error)

	// SwitchContext changes the active context and reinitializes the
	// API client handles that depend on it.
	SwitchContext(ctx context.Context, contextName string) error

	// ServerVersion queries the API server of the active context.
	ServerVersion(ctx context.Context) (*version.Info, error)
}

// ContextInfo describes one kubeconfig context.
type ContextInfo struct {
	Name      string `json:"name"`
	Cluster   string `json:"cluster"`
	User      string `json:"user"`
	Namespace string `json:"namespace"`
	Current   bool   `json:"current"`
}

// Logger is the logging interface the client accepts.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// ClientConfig holds configuration for the kubeconfig client.
type ClientConfig struct {
	// KubeconfigPath is an explicit kubeconfig location. Empty selects
	// the standard loading rules (KUBECONFIG env var, ~/.kube/config).
	KubeconfigPath string

	// Context overrides the kubeconfig's current-context on startup.
	Context string

	Logger Logger
}
