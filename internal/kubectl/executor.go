package kubectl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/aadarshjain/kubectl-mcp-server/internal/instrumentation"
)

// TrustTier is the caller-declared execution mode for a single invocation.
type TrustTier int

const (
	// TierUnrestricted trusts the caller completely: only the invocation
	// prefix is validated before the command is forwarded. This is a
	// deliberate high-privilege path.
	TierUnrestricted TrustTier = iota

	// TierReadOnly consults the Classifier and refuses to spawn a process
	// for any command it does not allow.
	TierReadOnly
)

// String returns the tier name used in logs and metric labels.
func (t TrustTier) String() string {
	switch t {
	case TierUnrestricted:
		return "unrestricted"
	case TierReadOnly:
		return "read-only"
	default:
		return "unknown"
	}
}

// Sentinel errors for the two denial classes. Tool handlers match on these
// to produce their fixed user-facing error strings.
var (
	// ErrMissingKubectlPrefix indicates a malformed command that does not
	// start with the kubectl invocation prefix.
	ErrMissingKubectlPrefix = errors.New("command must start with 'kubectl'")

	// ErrPolicyDenied indicates the read-only policy rejected the command.
	ErrPolicyDenied = errors.New("command denied by read-only policy")
)

// DefaultTimeout bounds a single kubectl invocation when no timeout is
// configured.
const DefaultTimeout = 60 * time.Second

// ExecutionResult captures the outcome of one forwarded command.
type ExecutionResult struct {
	Stdout    string `json:"stdout"`
	Stderr    string `json:"stderr"`
	ExitCode  int    `json:"exitCode"`
	Succeeded bool   `json:"succeeded"`
}

// Logger is the minimal logging interface the executor needs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// ExecutorConfig holds configuration for the command executor.
type ExecutorConfig struct {
	// KubectlPath overrides the binary used for the leading "kubectl"
	// token. Empty means resolve "kubectl" from PATH.
	KubectlPath string

	// KubeconfigPath, when set, is exported as KUBECONFIG to the child
	// process. The subprocess otherwise inherits the ambient environment
	// and credentials.
	KubeconfigPath string

	// Timeout bounds each invocation. Zero selects DefaultTimeout.
	Timeout time.Duration

	Logger  Logger
	Metrics *instrumentation.Metrics
}

// Executor forwards gated command strings to the kubectl binary.
type Executor struct {
	kubectlPath    string
	kubeconfigPath string
	timeout        time.Duration
	logger         Logger
	metrics        *instrumentation.Metrics
}

// NewExecutor creates an executor from the given configuration.
func NewExecutor(config *ExecutorConfig) (*Executor, error) {
	if config == nil {
		return nil, fmt.Errorf("executor configuration is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Executor{
		kubectlPath:    config.KubectlPath,
		kubeconfigPath: config.KubeconfigPath,
		timeout:        timeout,
		logger:         config.Logger,
		metrics:        config.Metrics,
	}, nil
}

// Execute runs command under the given trust tier.
//
// Exactly one subprocess is spawned per call that passes its tier's check,
// zero otherwise. A denial is reported through the returned error
// (ErrMissingKubectlPrefix or ErrPolicyDenied); subprocess failures are
// never errors — they come back as a result with Succeeded=false.
func (e *Executor) Execute(ctx context.Context, command string, tier TrustTier) (*ExecutionResult, error) {
	if !strings.HasPrefix(command, Prefix) {
		e.metrics.RecordExecution(tier.String(), "rejected")
		return nil, ErrMissingKubectlPrefix
	}

	if tier == TierReadOnly {
		verdict := Classify(command)
		if !verdict.Allowed {
			if e.logger != nil {
				e.logger.Info("command denied by read-only policy", "reason", verdict.Reason)
			}
			e.metrics.RecordPolicyDenial(verdict.Reason)
			e.metrics.RecordExecution(tier.String(), "denied")
			return nil, fmt.Errorf("%w: %s", ErrPolicyDenied, verdict.Reason)
		}
	}

	// The literal command text is tokenized on whitespace; no shell is
	// involved, so shell metacharacters reach kubectl as plain arguments.
	argv := strings.Fields(command)
	binary := argv[0]
	if e.kubectlPath != "" {
		binary = e.kubectlPath
	}

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, binary, argv[1:]...)
	if e.kubeconfigPath != "" {
		cmd.Env = append(os.Environ(), "KUBECONFIG="+e.kubeconfigPath)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := &ExecutionResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case err == nil:
		result.Succeeded = true
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Launch failure: the binary could not be started at all.
			result.ExitCode = -1
			result.Stderr = err.Error()
		}
	}

	if e.logger != nil {
		e.logger.Debug("kubectl command finished",
			"tier", tier.String(),
			"exit_code", result.ExitCode,
			"succeeded", result.Succeeded,
			"duration", duration.String(),
		)
	}

	outcome := "failure"
	if result.Succeeded {
		outcome = "success"
	}
	e.metrics.RecordExecution(tier.String(), outcome)
	e.metrics.ObserveCommandDuration(duration)

	return result, nil
}
