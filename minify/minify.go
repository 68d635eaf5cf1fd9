package minify

import (
	js "github.com/jsonschema-go/core"
	"github.com/jsonschema-go/core/internal/traverse"
)

func init() {
	js.RegisterMinimizer(Minimize)
}

// Trace observes a rule firing during minimization, receiving the schema
// node immediately before and after the rewrite. It is an optional
// instrumentation seam (§10.2); the default driver passes a nil Trace and
// incurs no overhead from it.
type Trace func(rule string, before, after *js.Schema)

// Minimize rewrites s into a structurally smaller, semantically
// equivalent schema by applying the driver of §4.5 with no tracing.
func Minimize(s *js.Schema) (*js.Schema, error) {
	return MinimizeWithTrace(s, nil)
}

// MinimizeWithTrace is Minimize with an optional Trace callback invoked on
// every accepted rewrite, in both the per-node fixed-point loop and across
// the whole depth-first pass.
func MinimizeWithTrace(s *js.Schema, trace Trace) (*js.Schema, error) {
	if s == nil {
		return nil, &js.ArgumentError{Name: "s"}
	}
	return traverse.Transform(s, func(node *js.Schema) *js.Schema {
		return minimizeNode(node, trace)
	}), nil
}

// minimizeNode applies the rule set to a single already-children-minimized
// node until a full pass leaves it unchanged, per the §4.5 driver: each
// accepted rewrite restarts the scan from the first rule, and the
// reference-equality fast path skips the DeepEquals comparison whenever a
// rule declines by returning its input unchanged.
func minimizeNode(s *js.Schema, trace Trace) *js.Schema {
	for {
		changedThisPass := false
		for _, rule := range Rules {
			next := rule.Apply(s)
			if next == s {
				continue
			}
			if js.DeepEquals(next.ToValue(), s.ToValue()) {
				continue
			}
			if trace != nil {
				trace(rule.Name, s, next)
			}
			s = next
			changedThisPass = true
			break
		}
		if !changedThisPass {
			return s
		}
	}
}
