package minify_test

import (
	"testing"

	js "github.com/jsonschema-go/core"
	"github.com/jsonschema-go/core/minify"
)

func parseSchema(t *testing.T, doc string) *js.Schema {
	t.Helper()
	s, err := js.ParseSchemaJSON([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSchemaJSON(%s): %v", doc, err)
	}
	return s
}

func TestRemoveDuplicateAllOf(t *testing.T) {
	s := parseSchema(t, `{"allOf": [{"type": "string"}, {"type": "string"}]}`)
	out := minify.RemoveDuplicateAllOf(s)
	if len(out.AllOf) != 1 {
		t.Fatalf("RemoveDuplicateAllOf: len(AllOf) = %d, want 1", len(out.AllOf))
	}
}

func TestRemoveDuplicateAllOf_NoChangeReturnsSameSchema(t *testing.T) {
	s := parseSchema(t, `{"allOf": [{"type": "string"}, {"type": "number"}]}`)
	out := minify.RemoveDuplicateAllOf(s)
	if out != s {
		t.Fatalf("RemoveDuplicateAllOf with no duplicates did not return the identical schema pointer")
	}
}

func TestRemoveDuplicateOneOf(t *testing.T) {
	s := parseSchema(t, `{"oneOf": [{"type": "string"}, {"type": "string"}, {"type": "number"}]}`)
	out := minify.RemoveDuplicateOneOf(s)
	if len(out.OneOf) != 1 || out.AllOf == nil {
		t.Fatalf("RemoveDuplicateOneOf: OneOf = %v, AllOf = %v, want one remaining member plus a not-guard",
			out.OneOf, out.AllOf)
	}
}

func TestRemoveDuplicateOneOf_EmptyRemainderIsConstantFalse(t *testing.T) {
	s := parseSchema(t, `{"oneOf": [{"type": "string"}, {"type": "string"}]}`)
	out := minify.RemoveDuplicateOneOf(s)
	if out.OneOf != nil {
		t.Fatalf("RemoveDuplicateOneOf: OneOf = %v, want nil once every member was a duplicate", out.OneOf)
	}
	if len(out.AllOf) != 2 {
		t.Fatalf("RemoveDuplicateOneOf: len(AllOf) = %d, want 2 (constant-false guard + not-guard)", len(out.AllOf))
	}
}

func TestRemoveDuplicateEnum(t *testing.T) {
	s := parseSchema(t, `{"enum": [1, 2, 1, 3]}`)
	out := minify.RemoveDuplicateEnum(s)
	if len(out.Enum) != 3 {
		t.Fatalf("RemoveDuplicateEnum: len(Enum) = %d, want 3", len(out.Enum))
	}
}

func TestRemoveEmptySchemaFromAllOf(t *testing.T) {
	s := parseSchema(t, `{"allOf": [{}, {"type": "string"}]}`)
	out := minify.RemoveEmptySchemaFromAllOf(s)
	if len(out.AllOf) != 1 {
		t.Fatalf("RemoveEmptySchemaFromAllOf: len(AllOf) = %d, want 1", len(out.AllOf))
	}
}

func TestRemoveEmptySchemaFromAllOf_AllRemoved(t *testing.T) {
	s := parseSchema(t, `{"allOf": [{}, true]}`)
	out := minify.RemoveEmptySchemaFromAllOf(s)
	if out.AllOf != nil {
		t.Fatalf("RemoveEmptySchemaFromAllOf: AllOf = %v, want nil when every member is vacuously true", out.AllOf)
	}
}

func TestRemoveOneOfIfEmptySchemaAllowed(t *testing.T) {
	s := parseSchema(t, `{"oneOf": [{}, {"type": "string"}]}`)
	out := minify.RemoveOneOfIfEmptySchemaAllowed(s)
	if out.OneOf != nil {
		t.Fatalf("RemoveOneOfIfEmptySchemaAllowed: OneOf = %v, want nil", out.OneOf)
	}
}

func TestRemoveEnumIfConst(t *testing.T) {
	s := parseSchema(t, `{"const": 1, "enum": [1, 2, 3]}`)
	out := minify.RemoveEnumIfConst(s)
	if out.Enum != nil {
		t.Fatalf("RemoveEnumIfConst: Enum = %v, want nil", out.Enum)
	}
}

func TestRemoveEnumIfConst_NoChangeWhenConstNotInEnum(t *testing.T) {
	s := parseSchema(t, `{"const": 9, "enum": [1, 2, 3]}`)
	out := minify.RemoveEnumIfConst(s)
	if out != s {
		t.Fatalf("RemoveEnumIfConst changed a schema where const is absent from enum")
	}
}

func TestPromoteOnlyAllOfInAllOf(t *testing.T) {
	s := parseSchema(t, `{"allOf": [{"allOf": [{"type": "string"}, {"minLength": 1}]}]}`)
	out := minify.PromoteOnlyAllOfInAllOf(s)
	if len(out.AllOf) != 2 {
		t.Fatalf("PromoteOnlyAllOfInAllOf: len(AllOf) = %d, want 2 (flattened)", len(out.AllOf))
	}
}

func TestPromoteAllOfWithOneOfToOneOfIfOneOfIsEmpty(t *testing.T) {
	s := parseSchema(t, `{"allOf": [{"oneOf": [{"type": "string"}, {"type": "number"}]}]}`)
	out := minify.PromoteAllOfWithOneOfToOneOfIfOneOfIsEmpty(s)
	if len(out.OneOf) != 2 || out.AllOf != nil {
		t.Fatalf("PromoteAllOfWithOneOfToOneOfIfOneOfIsEmpty: OneOf=%v AllOf=%v", out.OneOf, out.AllOf)
	}
}

func TestRemoveTypeOnlyAllOfIfParentIsSame(t *testing.T) {
	s := parseSchema(t, `{"type": "string", "allOf": [{"type": "string"}, {"minLength": 1}]}`)
	out := minify.RemoveTypeOnlyAllOfIfParentIsSame(s)
	if len(out.AllOf) != 1 {
		t.Fatalf("RemoveTypeOnlyAllOfIfParentIsSame: len(AllOf) = %d, want 1", len(out.AllOf))
	}
}
