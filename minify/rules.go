// Package minify implements the reduction rules of §4.4 and the
// fixed-point minimizer driver of §4.5: a depth-first traversal (built on
// internal/traverse) composed with repeated rule application until a pass
// produces no change.
package minify

import js "github.com/jsonschema-go/core"

// Rule is a named, pure schema->schema rewrite encoding one of the
// equivalences of §4.4. Apply must return its input unchanged
// (reference-equal) when no rewrite applies, and otherwise a new,
// deep-cloned schema with the rewrite applied.
type Rule struct {
	Name  string
	Apply func(*js.Schema) *js.Schema
}

// Rules is the mandated rule set of §4.4, in the order the driver applies
// them on every pass.
var Rules = []Rule{
	{"RemoveDuplicateAllOf", RemoveDuplicateAllOf},
	{"RemoveDuplicateAnyOf", RemoveDuplicateAnyOf},
	{"RemoveDuplicateOneOf", RemoveDuplicateOneOf},
	{"RemoveDuplicateEnum", RemoveDuplicateEnum},
	{"RemoveEmptySchemaFromAllOf", RemoveEmptySchemaFromAllOf},
	{"RemoveOneOfIfEmptySchemaAllowed", RemoveOneOfIfEmptySchemaAllowed},
	{"RemoveEnumIfConst", RemoveEnumIfConst},
	{"PromoteOnlyAllOfInAllOf", PromoteOnlyAllOfInAllOf},
	{"PromoteAllOfWithOneOfToOneOfIfOneOfIsEmpty", PromoteAllOfWithOneOfToOneOfIfOneOfIsEmpty},
	{"RemoveTypeOnlyAllOfIfParentIsSame", RemoveTypeOnlyAllOfIfParentIsSame},
}

// RemoveDuplicateAllOf dedupes "allOf" under DeepEquals on each member's
// serialized form, keeping the first occurrence.
func RemoveDuplicateAllOf(s *js.Schema) *js.Schema {
	_, changed := dedupeSchemas(s.AllOf)
	if !changed {
		return s
	}
	out := js.Clone(s)
	out.AllOf, _ = dedupeSchemas(out.AllOf)
	return out
}

// RemoveDuplicateAnyOf is RemoveDuplicateAllOf's counterpart for "anyOf".
func RemoveDuplicateAnyOf(s *js.Schema) *js.Schema {
	_, changed := dedupeSchemas(s.AnyOf)
	if !changed {
		return s
	}
	out := js.Clone(s)
	out.AnyOf, _ = dedupeSchemas(out.AnyOf)
	return out
}

// RemoveDuplicateOneOf rewrites "oneOf" once a member appears more than
// once. Unlike allOf/anyOf, "exactly one" is not idempotent under plain
// deduplication: a document matching the duplicated member already
// contributes two matches under the original schema, which invalidates
// it regardless of the rest, so dropping the extra copies outright would
// flip that document from invalid to valid. The sound rewrite instead
// pulls every occurrence of the duplicated member out of "oneOf" and
// forbids it at the parent via "not", leaving the remaining members to
// decide "exactly one" among themselves; an empty remainder gets an
// explicit constant-false member rather than vanishing, since "oneOf"
// with nothing left to match is unconditionally invalid, not
// unconstrained.
func RemoveDuplicateOneOf(s *js.Schema) *js.Schema {
	_, dup := firstDuplicatedSchema(s.OneOf)
	if dup == nil {
		return s
	}
	out := js.Clone(s)
	dupVal := dup.ToValue()
	var rest []*js.Schema
	var guard *js.Schema
	for _, c := range out.OneOf {
		if js.DeepEquals(c.ToValue(), dupVal) {
			if guard == nil {
				guard = c
			}
			continue
		}
		rest = append(rest, c)
	}
	out.OneOf = rest
	if len(rest) == 0 {
		out.AllOf = append(out.AllOf, falseSchema())
	}
	out.AllOf = append(out.AllOf, &js.Schema{Not: guard})
	return out
}

// firstDuplicatedSchema returns the index and value of the first member
// of list that also occurs earlier in list under DeepEquals, or (-1, nil)
// if every member is distinct.
func firstDuplicatedSchema(list []*js.Schema) (int, *js.Schema) {
	seen := make([]js.Value, 0, len(list))
	for i, c := range list {
		cv := c.ToValue()
		for _, sv := range seen {
			if js.DeepEquals(sv, cv) {
				return i, c
			}
		}
		seen = append(seen, cv)
	}
	return -1, nil
}

func falseSchema() *js.Schema {
	f := false
	return &js.Schema{Valid: &f}
}

// RemoveDuplicateEnum dedupes "enum" under DeepEquals, keeping the first
// occurrence.
func RemoveDuplicateEnum(s *js.Schema) *js.Schema {
	_, changed := dedupeValues(s.Enum)
	if !changed {
		return s
	}
	out := js.Clone(s)
	out.Enum, _ = dedupeValues(out.Enum)
	return out
}

func dedupeSchemas(list []*js.Schema) ([]*js.Schema, bool) {
	if len(list) < 2 {
		return list, false
	}
	seen := make([]js.Value, 0, len(list))
	out := make([]*js.Schema, 0, len(list))
	changed := false
	for _, c := range list {
		cv := c.ToValue()
		dup := false
		for _, sv := range seen {
			if js.DeepEquals(sv, cv) {
				dup = true
				break
			}
		}
		if dup {
			changed = true
			continue
		}
		seen = append(seen, cv)
		out = append(out, c)
	}
	return out, changed
}

func dedupeValues(list []js.Value) ([]js.Value, bool) {
	if len(list) < 2 {
		return list, false
	}
	out := make([]js.Value, 0, len(list))
	changed := false
	for _, v := range list {
		dup := false
		for _, sv := range out {
			if js.DeepEquals(sv, v) {
				dup = true
				break
			}
		}
		if dup {
			changed = true
			continue
		}
		out = append(out, v)
	}
	return out, changed
}

// RemoveEmptySchemaFromAllOf drops members of "allOf" that serialize to
// "{}" or whose Valid field is true.
func RemoveEmptySchemaFromAllOf(s *js.Schema) *js.Schema {
	if !anySchema(s.AllOf, isVacuouslyTrue) {
		return s
	}
	out := js.Clone(s)
	kept := out.AllOf[:0:0]
	for _, c := range out.AllOf {
		if isVacuouslyTrue(c) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		out.AllOf = nil
	} else {
		out.AllOf = kept
	}
	return out
}

func isVacuouslyTrue(s *js.Schema) bool {
	if s.Valid != nil && *s.Valid {
		return true
	}
	return isEmptyObjectSchema(s)
}

func isEmptyObjectSchema(s *js.Schema) bool {
	v := s.ToValue()
	return v.Kind() == js.KindObject && v.Len() == 0
}

func anySchema(list []*js.Schema, pred func(*js.Schema) bool) bool {
	for _, c := range list {
		if pred(c) {
			return true
		}
	}
	return false
}

// RemoveOneOfIfEmptySchemaAllowed resolves "oneOf" once a member is
// vacuously true (serializes to "{}", or is the literal boolean schema
// true). Such a member always contributes a match, so "exactly one"
// collapses to a deterministic condition on what's left: with exactly
// one vacuously-true member, the oneOf is valid iff none of the other
// members match (and unconstrained if there are no other members);
// with two or more, every document already gets at least two matches
// from the true members alone, so the whole oneOf is unconditionally
// invalid regardless of the rest.
func RemoveOneOfIfEmptySchemaAllowed(s *js.Schema) *js.Schema {
	if !anySchema(s.OneOf, isVacuouslyTrue) {
		return s
	}
	out := js.Clone(s)
	trueCount := 0
	var rest []*js.Schema
	for _, c := range out.OneOf {
		if isVacuouslyTrue(c) {
			trueCount++
		} else {
			rest = append(rest, c)
		}
	}
	out.OneOf = nil
	switch {
	case trueCount >= 2:
		out.AllOf = append(out.AllOf, falseSchema())
	case len(rest) > 0:
		for _, r := range rest {
			out.AllOf = append(out.AllOf, &js.Schema{Not: r})
		}
	}
	return out
}

// RemoveEnumIfConst clears "enum" when "const" is set, "enum" has more
// than one member, and "enum" contains "const" — the enum constraint is
// then implied by the const constraint.
func RemoveEnumIfConst(s *js.Schema) *js.Schema {
	if s.Const == nil || len(s.Enum) <= 1 {
		return s
	}
	found := false
	for _, v := range s.Enum {
		if js.DeepEquals(v, *s.Const) {
			found = true
			break
		}
	}
	if !found {
		return s
	}
	out := js.Clone(s)
	out.Enum = nil
	return out
}

// onlyPopulatedFieldIs reports whether s's serialized form is a JSON
// object with exactly one key, and that key is name.
func onlyPopulatedFieldIs(s *js.Schema, name string) bool {
	v := s.ToValue()
	if v.Kind() != js.KindObject {
		return false
	}
	keys := v.Keys()
	return len(keys) == 1 && keys[0] == name
}

// PromoteOnlyAllOfInAllOf replaces, within "allOf", any child whose only
// populated field is its own "allOf" with the contents of that nested
// "allOf", flattening one level of allOf-in-allOf nesting per pass.
func PromoteOnlyAllOfInAllOf(s *js.Schema) *js.Schema {
	changed := false
	for _, c := range s.AllOf {
		if onlyPopulatedFieldIs(c, "allOf") {
			changed = true
			break
		}
	}
	if !changed {
		return s
	}
	out := js.Clone(s)
	var flat []*js.Schema
	for _, c := range out.AllOf {
		if onlyPopulatedFieldIs(c, "allOf") {
			flat = append(flat, c.AllOf...)
		} else {
			flat = append(flat, c)
		}
	}
	out.AllOf = flat
	return out
}

// PromoteAllOfWithOneOfToOneOfIfOneOfIsEmpty lifts a single allOf child's
// "oneOf" into the parent when the parent's own "oneOf" is empty and that
// child has no other populated field.
func PromoteAllOfWithOneOfToOneOfIfOneOfIsEmpty(s *js.Schema) *js.Schema {
	if len(s.OneOf) != 0 || len(s.AllOf) != 1 {
		return s
	}
	if !onlyPopulatedFieldIs(s.AllOf[0], "oneOf") {
		return s
	}
	out := js.Clone(s)
	out.OneOf = out.AllOf[0].OneOf
	out.AllOf = nil
	return out
}

// RemoveTypeOnlyAllOfIfParentIsSame drops, from "allOf", any member whose
// only populated field is a "type" identical to the parent's own "type".
func RemoveTypeOnlyAllOfIfParentIsSame(s *js.Schema) *js.Schema {
	if len(s.Type) == 0 || len(s.AllOf) == 0 {
		return s
	}
	changed := false
	for _, c := range s.AllOf {
		if isRedundantTypeOnly(c, s.Type) {
			changed = true
			break
		}
	}
	if !changed {
		return s
	}
	out := js.Clone(s)
	var kept []*js.Schema
	for _, c := range out.AllOf {
		if isRedundantTypeOnly(c, out.Type) {
			continue
		}
		kept = append(kept, c)
	}
	out.AllOf = kept
	return out
}

func isRedundantTypeOnly(c *js.Schema, parentType []js.TypeName) bool {
	if !onlyPopulatedFieldIs(c, "type") {
		return false
	}
	return typeSetEqual(c.Type, parentType)
}

func typeSetEqual(a, b []js.TypeName) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[js.TypeName]int, len(a))
	for _, t := range a {
		counts[t]++
	}
	for _, t := range b {
		counts[t]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}
