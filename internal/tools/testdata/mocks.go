// Package testdata provides mock implementations for testing tool
// handlers.
package testdata

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/version"

	"github.com/aadarshjain/kubectl-mcp-server/internal/k8s"
)

// MockLogger implements the logging interfaces with no-ops.
type MockLogger struct{}

func (m *MockLogger) Debug(msg string, args ...interface{}) {}
func (m *MockLogger) Info(msg string, args ...interface{})  {}
func (m *MockLogger) Warn(msg string, args ...interface{})  {}
func (m *MockLogger) Error(msg string, args ...interface{}) {}

// MockK8sClient implements k8s.Client against in-memory context data.
type MockK8sClient struct {
	Contexts []k8s.ContextInfo
	Active   string

	ListErr    error
	SwitchErr  error
	VersionErr error

	SwitchCalls []string
}

// ListContexts returns the configured contexts with the active one flagged.
func (m *MockK8sClient) ListContexts(ctx context.Context) ([]k8s.ContextInfo, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	contexts := make([]k8s.ContextInfo, len(m.Contexts))
	for i, info := range m.Contexts {
		info.Current = info.Name == m.Active
		contexts[i] = info
	}
	return contexts, nil
}

// GetCurrentContext returns the active context.
func (m *MockK8sClient) GetCurrentContext(ctx context.Context) (*k8s.ContextInfo, error) {
	for _, info := range m.Contexts {
		if info.Name == m.Active {
			info.Current = true
			return &info, nil
		}
	}
	return nil, fmt.Errorf("current context %q does not exist", m.Active)
}

// SwitchContext validates the name against the configured contexts and
// updates the active one.
func (m *MockK8sClient) SwitchContext(ctx context.Context, contextName string) error {
	m.SwitchCalls = append(m.SwitchCalls, contextName)
	if m.SwitchErr != nil {
		return m.SwitchErr
	}
	for _, info := range m.Contexts {
		if info.Name == contextName {
			m.Active = contextName
			return nil
		}
	}
	return fmt.Errorf("context %q does not exist in kubeconfig", contextName)
}

// ServerVersion returns a fixed version or the configured error.
func (m *MockK8sClient) ServerVersion(ctx context.Context) (*version.Info, error) {
	if m.VersionErr != nil {
		return nil, m.VersionErr
	}
	return &version.Info{GitVersion: "v1.30.0"}, nil
}
