// Package kubectl implements the command classification and execution
// gating engine for kubectl command strings.
//
// The Classifier is a pure function that decides whether a command is
// permitted under the read-only trust tier. The Executor enforces that
// decision: a command that fails classification never reaches a
// subprocess. Unrestricted-tier execution performs only the invocation
// prefix check and forwards the command as-is; callers opting into that
// tier accept full kubectl privileges.
package kubectl
