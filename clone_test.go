package jsonschema_test

import (
	"testing"

	js "github.com/jsonschema-go/core"
)

func TestClone_IsDeepEqualButNotIdentical(t *testing.T) {
	s, err := js.ParseSchemaJSON([]byte(`{"properties": {"a": {"type": "string"}}}`))
	if err != nil {
		t.Fatalf("ParseSchemaJSON: %v", err)
	}
	c := js.Clone(s)
	if c == s {
		t.Fatalf("Clone returned the same pointer as the input")
	}
	a, _ := s.Properties.Get("a")
	ca, _ := c.Properties.Get("a")
	if a == ca {
		t.Fatalf("Clone shared sub-schema identity for properties.a")
	}
	if !js.DeepEquals(s.ToValue(), c.ToValue()) {
		t.Fatalf("Clone is not structurally deep-equal to its input")
	}
}

func TestClone_Nil(t *testing.T) {
	if js.Clone(nil) != nil {
		t.Fatalf("Clone(nil) did not return nil")
	}
}
