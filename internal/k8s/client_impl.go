package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// kubeconfigClient implements Client on top of a loaded kubeconfig.
//
// The active context and the clientset derived from it are the only
// mutable state. Both are swapped together under the same lock, so a
// reader never observes a context paired with a stale clientset.
type kubeconfigClient struct {
	config *ClientConfig

	mu             sync.RWMutex
	kubeconfigData *clientcmdapi.Config
	currentContext string
	clientset      kubernetes.Interface
}

// NewClient loads the kubeconfig and initializes API client handles for
// the active context.
func NewClient(config *ClientConfig) (Client, error) {
	if config == nil {
		return nil, fmt.Errorf("client configuration is required")
	}

	c := &kubeconfigClient{config: config}

	if err := c.loadKubeconfig(); err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	if config.Context != "" {
		c.currentContext = config.Context
	} else {
		c.currentContext = c.kubeconfigData.CurrentContext
	}

	if _, exists := c.kubeconfigData.Contexts[c.currentContext]; !exists {
		return nil, fmt.Errorf("context %q does not exist in kubeconfig", c.currentContext)
	}

	clientset, err := c.buildClientset(c.currentContext)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize clients for context %q: %w", c.currentContext, err)
	}
	c.clientset = clientset

	if config.Logger != nil {
		config.Logger.Info("kubernetes API clients initialized", "context", c.currentContext)
	}

	return c, nil
}

// loadKubeconfig loads the kubeconfig from the configured path or the
// default loading rules.
func (c *kubeconfigClient) loadKubeconfig() error {
	{
		kconf := os.Getenv("KUBECONFIG")
		if strings.HasPrefix(kconf, "~/") {
			uhd, _ := os.UserHomeDir()
			kconf = filepath.Join(uhd, kconf[2:])
		}

		if kconf != "" && c.config.KubeconfigPath == "" {
			c.config.KubeconfigPath = kconf
		}
	}

	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if c.config.KubeconfigPath != "" {
		loadingRules.ExplicitPath = c.config.KubeconfigPath
	}

	config := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		&clientcmd.ConfigOverrides{},
	)

	rawConfig, err := config.RawConfig()
	if err != nil {
		return err
	}
	c.kubeconfigData = &rawConfig

	return nil
}

// buildClientset constructs a clientset for the named context. It does not
// mutate the client; callers swap the result in under the lock.
func (c *kubeconfigClient) buildClientset(contextName string) (kubernetes.Interface, error) {
	restConfig, err := c.restConfigFor(contextName)
	if err != nil {
		return nil, err
	}
	return kubernetes.NewForConfig(restConfig)
}

func (c *kubeconfigClient) restConfigFor(contextName string) (*rest.Config, error) {
	clientConfig := clientcmd.NewNonInteractiveClientConfig(
		*c.kubeconfigData,
		contextName,
		&clientcmd.ConfigOverrides{},
		nil,
	)
	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build rest config for context %q: %w", contextName, err)
	}
	return restConfig, nil
}

// ListContexts returns all contexts from the kubeconfig, sorted by name,
// with the active one flagged. The kubeconfig is never mutated.
func (c *kubeconfigClient) ListContexts(ctx context.Context) ([]ContextInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var contexts []ContextInfo
	for contextName, contextInfo := range c.kubeconfigData.Contexts {
		contexts = append(contexts, ContextInfo{
			Name:      contextName,
			Cluster:   contextInfo.Cluster,
			User:      contextInfo.AuthInfo,
			Namespace: contextInfo.Namespace,
			Current:   contextName == c.currentContext,
		})
	}

	sort.Slice(contexts, func(i, j int) bool { return contexts[i].Name < contexts[j].Name })

	return contexts, nil
}

// GetCurrentContext returns the active context.
func (c *kubeconfigClient) GetCurrentContext(ctx context.Context) (*ContextInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	contextInfo, exists := c.kubeconfigData.Contexts[c.currentContext]
	if !exists {
		return nil, fmt.Errorf("current context %q does not exist", c.currentContext)
	}

	return &ContextInfo{
		Name:      c.currentContext,
		Cluster:   contextInfo.Cluster,
		User:      contextInfo.AuthInfo,
		Namespace: contextInfo.Namespace,
		Current:   true,
	}, nil
}

// SwitchContext validates contextName against the kubeconfig and atomically
// swaps the active context together with a freshly built clientset. On any
// failure the previous context and handles remain in effect.
func (c *kubeconfigClient) SwitchContext(ctx context.Context, contextName string) error {
	c.mu.RLock()
	_, exists := c.kubeconfigData.Contexts[contextName]
	c.mu.RUnlock()
	if !exists {
		return fmt.Errorf("context %q does not exist in kubeconfig", contextName)
	}

	clientset, err := c.buildClientset(contextName)
	if err != nil {
		return fmt.Errorf("failed to reinitialize clients for context %q: %w", contextName, err)
	}

	c.mu.Lock()
	c.currentContext = contextName
	c.clientset = clientset
	c.mu.Unlock()

	if c.config.Logger != nil {
		c.config.Logger.Info("switched kubernetes context", "context", contextName)
	}

	return nil
}

// ServerVersion queries the API server of the active context. Used by the
// readiness probe on HTTP transports.
func (c *kubeconfigClient) ServerVersion(ctx context.Context) (*version.Info, error) {
	c.mu.RLock()
	clientset := c.clientset
	c.mu.RUnlock()

	info, err := clientset.Discovery().ServerVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to get server version: %w", err)
	}
	return info, nil
}
