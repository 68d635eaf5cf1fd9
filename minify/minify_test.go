package minify_test

import (
	"testing"

	js "github.com/jsonschema-go/core"
	"github.com/jsonschema-go/core/minify"
)

func TestMinimize_FixedPointAcrossMultipleRules(t *testing.T) {
	// allOf-in-allOf flattening exposes a duplicate, which then gets deduped
	// — two different rules must both fire before this reaches a fixed point.
	s := parseSchema(t, `{
		"allOf": [
			{"allOf": [{"type": "string"}]},
			{"type": "string"}
		]
	}`)
	out, err := minify.Minimize(s)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if len(out.AllOf) != 1 {
		t.Fatalf("Minimize: len(AllOf) = %d, want 1 after flatten+dedupe", len(out.AllOf))
	}
}

func TestMinimize_RecursesIntoChildren(t *testing.T) {
	s := parseSchema(t, `{
		"properties": {
			"child": {"allOf": [{}, {"type": "string"}]}
		}
	}`)
	out, err := minify.Minimize(s)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	child, ok := out.Properties.Get("child")
	if !ok {
		t.Fatalf("Minimize dropped properties.child entirely")
	}
	if len(child.AllOf) != 1 {
		t.Fatalf("Minimize did not simplify properties.child: AllOf = %v", child.AllOf)
	}
}

func TestMinimize_NilArgument(t *testing.T) {
	if _, err := minify.Minimize(nil); err == nil {
		t.Fatalf("Minimize(nil): got nil error, want ArgumentError")
	}
}

func TestMinimizeWithTrace_ObservesRewrites(t *testing.T) {
	s := parseSchema(t, `{"allOf": [{"type": "string"}, {"type": "string"}]}`)
	var fired []string
	_, err := minify.MinimizeWithTrace(s, func(rule string, before, after *js.Schema) {
		fired = append(fired, rule)
	})
	if err != nil {
		t.Fatalf("MinimizeWithTrace: %v", err)
	}
	found := false
	for _, r := range fired {
		if r == "RemoveDuplicateAllOf" {
			found = true
		}
	}
	if !found {
		t.Fatalf("MinimizeWithTrace: trace = %v, want it to include RemoveDuplicateAllOf", fired)
	}
}

func TestMinimize_IsIdempotent(t *testing.T) {
	s := parseSchema(t, `{
		"type": "object",
		"allOf": [{"type": "object"}, {"allOf": [{"oneOf": [{"const": 1}]}]}]
	}`)
	once, err := minify.Minimize(s)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	twice, err := minify.Minimize(once)
	if err != nil {
		t.Fatalf("Minimize (second pass): %v", err)
	}
	if !js.DeepEquals(once.ToValue(), twice.ToValue()) {
		t.Fatalf("Minimize is not idempotent: once=%v twice=%v", once.ToValue(), twice.ToValue())
	}
}
