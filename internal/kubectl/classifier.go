package kubectl

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"mvdan.cc/sh/v3/syntax"
)

// Prefix is the invocation prefix every well-formed command must carry:
// the literal name of the kubectl binary followed by a space.
const Prefix = "kubectl "

// readOnlyPrefixes lists the operation bodies that are permitted under the
// read-only tier. Matching is prefix-based: "get pods -n default" matches
// "get". Multi-word entries match literally including the space, so
// "config delete-context" does not alias to the allowed "config" family.
var readOnlyPrefixes = []string{
	"get",
	"describe",
	"explain",
	"config view",
	"config get-contexts",
	"version",
	"api-resources",
	"cluster-info",
}

// writeTerms lists terms that indicate a mutating operation. The scan is a
// substring search over the whole operation body, not just the leading
// token, so a write verb smuggled after a read verb is still caught.
//
// Substring matching is inherited behavior and carries a known risk: a
// resource literally named "update-service" in a get command is rejected
// even though the command only reads. The tokenized alternative is
// documented in DESIGN.md; the scan is kept as-is rather than silently
// changed.
var writeTerms = []string{
	"delete",
	"update",
	"patch",
	"apply",
	"create",
	"replace",
	"edit",
	"scale",
	"cordon",
	"drain",
	"taint",
	"label --overwrite",
	"annotate --overwrite",
}

var titleCaser = cases.Title(language.English)

// Verdict is the outcome of classifying a command under the read-only
// policy. A Verdict is never mutated once produced.
type Verdict struct {
	Allowed bool
	Reason  string
}

func allowed() Verdict {
	return Verdict{Allowed: true}
}

func denied(reason string) Verdict {
	return Verdict{Allowed: false, Reason: reason}
}

// Classify decides whether command may run under the read-only tier.
//
// Classification depends only on the command text: no I/O, no hidden
// state. Calling Classify twice on the same string yields the same
// Verdict.
func Classify(command string) Verdict {
	if !strings.HasPrefix(command, Prefix) {
		return denied("command must start with the 'kubectl' prefix")
	}

	body := command[len(Prefix):]

	// Deny-list scan runs unconditionally and takes precedence over any
	// allow-list match.
	for _, term := range writeTerms {
		if strings.Contains(body, term) {
			verb := strings.Fields(term)[0]
			return denied(fmt.Sprintf("%s operations are not allowed in read-only mode", titleCaser.String(verb)))
		}
	}

	if isCompound(body) {
		return denied("compound or chained commands are not allowed in read-only mode")
	}

	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(body, prefix) {
			return allowed()
		}
	}

	// Deny-by-default: an operation outside the allow list is treated as
	// mutating, never as unknown-but-permitted.
	return denied("operation is not in the read-only allow list")
}

// isCompound reports whether body contains shell structure beyond a single
// plain command: multiple statements, pipes, logical chaining, background
// execution, redirections, or command substitution. Such commands are
// rejected under the read-only tier regardless of verb content, since the
// verb scan cannot reason about what the extra structure would run.
//
// Unparseable input counts as compound.
func isCompound(body string) bool {
	file, err := syntax.NewParser().Parse(strings.NewReader(body), "")
	if err != nil {
		return true
	}
	if len(file.Stmts) != 1 {
		return true
	}

	compound := false
	syntax.Walk(file, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.BinaryCmd:
			compound = true
		case *syntax.CmdSubst:
			compound = true
		case *syntax.Redirect:
			compound = true
		case *syntax.Stmt:
			if n.Background || n.Coprocess {
				compound = true
			}
		}
		return !compound
	})
	return compound
}
