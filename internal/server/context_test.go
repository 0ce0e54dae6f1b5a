package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadarshjain/kubectl-mcp-server/internal/instrumentation"
	"github.com/aadarshjain/kubectl-mcp-server/internal/kubectl"
	"github.com/aadarshjain/kubectl-mcp-server/internal/tools/testdata"
)

func newTestExecutor(t *testing.T) *kubectl.Executor {
	t.Helper()
	executor, err := kubectl.NewExecutor(&kubectl.ExecutorConfig{})
	require.NoError(t, err)
	return executor
}

func TestNewServerContext(t *testing.T) {
	sc, err := NewServerContext(context.Background(),
		WithK8sClient(&testdata.MockK8sClient{}),
		WithExecutor(newTestExecutor(t)),
		WithLogger(&testdata.MockLogger{}),
	)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.NotNil(t, sc.K8sClient())
	assert.NotNil(t, sc.Executor())
	assert.NotNil(t, sc.Logger())
	assert.NotNil(t, sc.Context())
	assert.Nil(t, sc.Metrics())

	// Defaults apply when no config option is given.
	config := sc.Config()
	require.NotNil(t, config)
	assert.Equal(t, "kubectl-mcp-server", config.ServerName)
	assert.Equal(t, kubectl.DefaultTimeout, config.ExecTimeout)
}

func TestNewServerContext_MissingDependencies(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name: "missing k8s client",
			opts: []Option{
				WithExecutor(newTestExecutor(t)),
				WithLogger(&testdata.MockLogger{}),
			},
			wantErr: ErrMissingK8sClient,
		},
		{
			name: "missing executor",
			opts: []Option{
				WithK8sClient(&testdata.MockK8sClient{}),
				WithLogger(&testdata.MockLogger{}),
			},
			wantErr: ErrMissingExecutor,
		},
		{
			name: "nil config option",
			opts: []Option{
				WithK8sClient(&testdata.MockK8sClient{}),
				WithExecutor(newTestExecutor(t)),
				WithConfig(nil),
			},
			wantErr: ErrMissingConfig,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, err := NewServerContext(context.Background(), tc.opts...)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, sc)
		})
	}
}

func TestWithConfig_ClonesInput(t *testing.T) {
	config := NewDefaultConfig()
	config.ServerName = "custom-name"

	sc, err := NewServerContext(context.Background(),
		WithK8sClient(&testdata.MockK8sClient{}),
		WithExecutor(newTestExecutor(t)),
		WithLogger(&testdata.MockLogger{}),
		WithConfig(config),
	)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	config.ServerName = "mutated-after-construction"
	assert.Equal(t, "custom-name", sc.Config().ServerName)
}

func TestWithServerName(t *testing.T) {
	sc, err := NewServerContext(context.Background(),
		WithK8sClient(&testdata.MockK8sClient{}),
		WithExecutor(newTestExecutor(t)),
		WithLogger(&testdata.MockLogger{}),
		WithServerName("renamed"),
	)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Equal(t, "renamed", sc.Config().ServerName)
}

func TestWithMetrics(t *testing.T) {
	metrics := instrumentation.NewMetrics()

	sc, err := NewServerContext(context.Background(),
		WithK8sClient(&testdata.MockK8sClient{}),
		WithExecutor(newTestExecutor(t)),
		WithLogger(&testdata.MockLogger{}),
		WithMetrics(metrics),
	)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Same(t, metrics, sc.Metrics())
}

func TestShutdown_IsIdempotentAndCancelsContext(t *testing.T) {
	sc, err := NewServerContext(context.Background(),
		WithK8sClient(&testdata.MockK8sClient{}),
		WithExecutor(newTestExecutor(t)),
		WithLogger(&testdata.MockLogger{}),
	)
	require.NoError(t, err)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("context should be canceled after shutdown")
	}

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
}

func TestConfigClone_NilReceiver(t *testing.T) {
	var config *Config
	assert.Nil(t, config.Clone())
}
