package jsonschema_test

import (
	"testing"

	js "github.com/jsonschema-go/core"
)

func TestSchemaFromValue_BooleanSchemas(t *testing.T) {
	s, err := js.SchemaFromValue(js.NewBool(true))
	if err != nil {
		t.Fatalf("SchemaFromValue(true): %v", err)
	}
	if s.Valid == nil || !*s.Valid {
		t.Fatalf("SchemaFromValue(true): Valid = %v, want non-nil true", s.Valid)
	}

	s, err = js.SchemaFromValue(js.NewBool(false))
	if err != nil {
		t.Fatalf("SchemaFromValue(false): %v", err)
	}
	if s.Valid == nil || *s.Valid {
		t.Fatalf("SchemaFromValue(false): Valid = %v, want non-nil false", s.Valid)
	}
}

func TestSchemaFromValue_RejectsNonObjectNonBoolean(t *testing.T) {
	if _, err := js.SchemaFromValue(js.NewString("nope")); err == nil {
		t.Fatalf("SchemaFromValue(string): got nil error, want SchemaConstructionError")
	}
}

func TestSchemaFromValue_ToValue_RoundTrip(t *testing.T) {
	doc := []byte(`{
		"type": ["object", "null"],
		"properties": {"name": {"type": "string", "minLength": 1}},
		"required": ["name"],
		"additionalProperties": false,
		"minimum": 0,
		"exclusiveMaximum": 100,
		"x-vendor-ext": "kept"
	}`)
	s, err := js.ParseSchemaJSON(doc)
	if err != nil {
		t.Fatalf("ParseSchemaJSON: %v", err)
	}

	v1, err := js.ParseJSON(doc)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	v2 := s.ToValue()
	if !js.DeepEquals(v1, v2) {
		t.Fatalf("ToValue() did not round-trip: got %v", v2)
	}

	if s.ExtensionData == nil || !s.ExtensionData.Has("x-vendor-ext") {
		t.Fatalf("unknown keyword %q was not preserved in ExtensionData", "x-vendor-ext")
	}
}

func TestSchemaFromValue_DependenciesBothShapes(t *testing.T) {
	doc := []byte(`{
		"dependencies": {
			"credit_card": ["billing_address"],
			"shipping": {"required": ["address"]}
		}
	}`)
	s, err := js.ParseSchemaJSON(doc)
	if err != nil {
		t.Fatalf("ParseSchemaJSON: %v", err)
	}
	cc, ok := s.Dependencies.Get("credit_card")
	if !ok || cc.Kind != js.DependencyNames || len(cc.Names) != 1 || cc.Names[0] != "billing_address" {
		t.Fatalf("dependencies.credit_card = %+v, want a name-list dependency on billing_address", cc)
	}
	sh, ok := s.Dependencies.Get("shipping")
	if !ok || sh.Kind != js.DependencySchema || sh.Schema == nil {
		t.Fatalf("dependencies.shipping = %+v, want a schema dependency", sh)
	}
}

func TestSchemaFromValue_ItemsSingleVsTuple(t *testing.T) {
	single, err := js.ParseSchemaJSON([]byte(`{"items": {"type": "string"}}`))
	if err != nil {
		t.Fatalf("ParseSchemaJSON (single): %v", err)
	}
	if single.Items.Single == nil || single.Items.Tuple != nil {
		t.Fatalf("single-form items parsed as %+v", single.Items)
	}

	tuple, err := js.ParseSchemaJSON([]byte(`{"items": [{"type": "string"}, {"type": "number"}]}`))
	if err != nil {
		t.Fatalf("ParseSchemaJSON (tuple): %v", err)
	}
	if tuple.Items.Tuple == nil || len(tuple.Items.Tuple) != 2 || tuple.Items.Single != nil {
		t.Fatalf("tuple-form items parsed as %+v", tuple.Items)
	}
}

func TestSchema_EffectiveDraft(t *testing.T) {
	s, err := js.ParseSchemaJSON([]byte(`{"$schema": "http://json-schema.org/draft-04/schema#"}`))
	if err != nil {
		t.Fatalf("ParseSchemaJSON: %v", err)
	}
	if s.EffectiveDraft() != js.Draft4 {
		t.Fatalf("EffectiveDraft() = %v, want Draft4", s.EffectiveDraft())
	}

	noVersion, err := js.ParseSchemaJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseSchemaJSON: %v", err)
	}
	if noVersion.EffectiveDraft() != js.Draft7 {
		t.Fatalf("EffectiveDraft() with no $schema = %v, want Draft7", noVersion.EffectiveDraft())
	}
}
