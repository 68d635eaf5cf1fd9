package jsonschema

// Clone returns a deep copy of s that shares no sub-schema identity with
// s, per §4.3: it serializes s to the JSON value model and parses the
// result back into a fresh schema tree. Reduction rules use Clone to
// obtain a safe mutable local copy before applying a rewrite.
func Clone(s *Schema) *Schema {
	if s == nil {
		return nil
	}
	clone, err := SchemaFromValue(s.ToValue())
	if err != nil {
		// ToValue always produces a value SchemaFromValue can parse back;
		// a failure here means ToValue and SchemaFromValue have drifted
		// out of sync, which is a bug in this package, not a caller error.
		panic(err)
	}
	return clone
}
