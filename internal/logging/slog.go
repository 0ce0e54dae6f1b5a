// Package logging provides slog construction and shared log attribute
// helpers so attribute names stay consistent across the codebase.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Common log attribute keys.
const (
	KeyTool      = "tool"
	KeyTier      = "tier"
	KeyContext   = "context"
	KeyOperation = "operation"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewLogger builds an slog.Logger writing to stderr. Stdout is reserved
// for the stdio MCP transport and must never receive log output.
func NewLogger(level, format string) *slog.Logger {
	return NewLoggerTo(os.Stderr, level, format)
}

// NewLoggerTo builds an slog.Logger writing to w.
func NewLoggerTo(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to an slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Tool returns a slog attribute for the tool name.
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// Tier returns a slog attribute for the trust tier.
func Tier(tier string) slog.Attr {
	return slog.String(KeyTier, tier)
}

// Context returns a slog attribute for the kubeconfig context name.
func Context(name string) slog.Attr {
	return slog.String(KeyContext, name)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Adapter exposes a *slog.Logger through the Debug/Info/Warn/Error
// interface used by the server, k8s and kubectl packages.
type Adapter struct {
	logger *slog.Logger
}

// NewAdapter wraps logger in an Adapter.
func NewAdapter(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

func (a *Adapter) Debug(msg string, args ...interface{}) { a.logger.Debug(msg, args...) }
func (a *Adapter) Info(msg string, args ...interface{})  { a.logger.Info(msg, args...) }
func (a *Adapter) Warn(msg string, args ...interface{})  { a.logger.Warn(msg, args...) }
func (a *Adapter) Error(msg string, args ...interface{}) { a.logger.Error(msg, args...) }
