// Package traverse implements the generic schema-traversal/transformation
// framework of §4.2: a walker that visits every sub-schema field of a
// schema AST and rebuilds a transformed copy — the substrate the minimizer
// (package minify) is built on. A Visitor has a single hook, VisitSchema,
// called once per schema node; Base implements it as the identity rebuild,
// recursing into sub-schema fields through the Walker's helper methods
// (WalkList, WalkMap, WalkItems, WalkBoolOrSchema, WalkDependencies).
// Those helpers are not hooks: there is no per-field override, so a
// Visitor changes how a field is handled only by implementing VisitSchema
// for the whole node.
package traverse

import js "github.com/jsonschema-go/core"

// Visitor supplies the one hook a Walker calls while rebuilding a schema:
// VisitSchema, once per node. It has no separate per-field hooks.
type Visitor interface {
	// VisitSchema is called once per schema node (including the root) and
	// returns its replacement. The default implementation (Base) allocates
	// a fresh schema, recurses into every sub-schema field via the
	// Walker's helper methods, and returns the rebuilt copy.
	VisitSchema(w *Walker, s *js.Schema) *js.Schema
}

// Walker drives a traversal. The zero Walker is not usable; use New.
type Walker struct {
	visitor Visitor
}

// New returns a Walker that dispatches to v for every schema node it
// visits, starting from the root.
func New(v Visitor) *Walker {
	return &Walker{visitor: v}
}

// Walk rebuilds s by dispatching to the configured Visitor. A nil s walks
// to nil.
func (w *Walker) Walk(s *js.Schema) *js.Schema {
	if s == nil {
		return nil
	}
	return w.visitor.VisitSchema(w, s)
}

// WalkList applies Walk to every element of list, returning nil for a nil
// or empty input and a freshly allocated slice otherwise.
func (w *Walker) WalkList(list []*js.Schema) []*js.Schema {
	if len(list) == 0 {
		return nil
	}
	out := make([]*js.Schema, len(list))
	for i, c := range list {
		out[i] = w.Walk(c)
	}
	return out
}

// WalkMap applies Walk to every value of an ordered schema map, preserving
// key order.
func (w *Walker) WalkMap(m *js.OrderedMap[*js.Schema]) *js.OrderedMap[*js.Schema] {
	if m == nil || m.Len() == 0 {
		return m
	}
	out := js.NewOrderedMap[*js.Schema]()
	m.Each(func(key string, s *js.Schema) {
		out.Set(key, w.Walk(s))
	})
	return out
}

// WalkDependencies applies Walk to the schema-valued entries of
// "dependencies" and leaves name-list entries untouched, per §4.2's
// dispatch-on-variant requirement.
func (w *Walker) WalkDependencies(deps *js.OrderedMap[js.Dependency]) *js.OrderedMap[js.Dependency] {
	if deps == nil || deps.Len() == 0 {
		return deps
	}
	out := js.NewOrderedMap[js.Dependency]()
	deps.Each(func(key string, d js.Dependency) {
		if d.Kind == js.DependencySchema {
			out.Set(key, js.Dependency{Kind: js.DependencySchema, Schema: w.Walk(d.Schema)})
			return
		}
		out.Set(key, d)
	})
	return out
}

// WalkItems applies Walk to the single- or tuple-form sub-schemas of an
// "items" keyword.
func (w *Walker) WalkItems(it *js.Items) *js.Items {
	if it == nil {
		return nil
	}
	if it.Tuple != nil {
		tuple := w.WalkList(it.Tuple)
		if tuple == nil {
			// Keep an empty tuple ("items": []) in tuple form.
			tuple = []*js.Schema{}
		}
		return &js.Items{Tuple: tuple}
	}
	if it.Single != nil {
		return &js.Items{Single: w.Walk(it.Single)}
	}
	return &js.Items{}
}

// WalkBoolOrSchema applies Walk to the schema form of a bool-or-schema
// keyword (e.g. additionalItems/additionalProperties) and leaves the bool
// form untouched.
func (w *Walker) WalkBoolOrSchema(b *js.BoolOrSchema) *js.BoolOrSchema {
	if b == nil {
		return nil
	}
	if b.Schema != nil {
		return &js.BoolOrSchema{Schema: w.Walk(b.Schema)}
	}
	bv := *b
	return &bv
}

// Base is the identity Visitor: VisitSchema rebuilds every field by
// recursing into sub-schemas and copying scalar fields verbatim. Derived
// visitors implement VisitSchema themselves, calling Base{}.VisitSchema
// or the Walker's helper methods for the parts they leave unchanged.
type Base struct{}

// VisitSchema implements Visitor with the identity transformation: the
// returned schema is structurally deep-equal to s.
func (Base) VisitSchema(w *Walker, s *js.Schema) *js.Schema {
	if s == nil {
		return nil
	}
	if s.Valid != nil {
		v := *s.Valid
		return &js.Schema{Valid: &v}
	}

	out := &js.Schema{
		AllOf:                w.WalkList(s.AllOf),
		AnyOf:                w.WalkList(s.AnyOf),
		OneOf:                w.WalkList(s.OneOf),
		Not:                  w.Walk(s.Not),
		If:                   w.Walk(s.If),
		Then:                 w.Walk(s.Then),
		Else:                 w.Walk(s.Else),
		Type:                 append([]js.TypeName(nil), s.Type...),
		Const:                s.Const,
		Enum:                 append([]js.Value(nil), s.Enum...),
		Minimum:              s.Minimum,
		Maximum:              s.Maximum,
		ExclusiveMinimum:     s.ExclusiveMinimum,
		ExclusiveMaximum:     s.ExclusiveMaximum,
		MultipleOf:           s.MultipleOf,
		MinLength:            s.MinLength,
		MaxLength:            s.MaxLength,
		Pattern:              s.Pattern,
		Format:               s.Format,
		ContentEncoding:      s.ContentEncoding,
		ContentMediaType:     s.ContentMediaType,
		Items:                w.WalkItems(s.Items),
		AdditionalItems:      w.WalkBoolOrSchema(s.AdditionalItems),
		MinItems:             s.MinItems,
		MaxItems:             s.MaxItems,
		UniqueItems:          s.UniqueItems,
		Contains:             w.Walk(s.Contains),
		Properties:           w.WalkMap(s.Properties),
		PatternProperties:    w.WalkMap(s.PatternProperties),
		AdditionalProperties: w.WalkBoolOrSchema(s.AdditionalProperties),
		PropertyNames:        w.Walk(s.PropertyNames),
		Required:             append([]string(nil), s.Required...),
		Dependencies:         w.WalkDependencies(s.Dependencies),
		MinProperties:        s.MinProperties,
		MaxProperties:        s.MaxProperties,
		Title:                s.Title,
		Description:          s.Description,
		ID:                   s.ID,
		SchemaVersion:        s.SchemaVersion,
		Default:              s.Default,
		ExtensionData:        s.ExtensionData,
	}
	return out
}

// Transform walks s with a Visitor built from fn: fn is called once per
// schema node with the node already rebuilt from its (already-transformed)
// children — i.e. depth-first, post-order — and returns the replacement
// for that node. This is the shape the minimizer driver needs for "s :=
// traverse(minimize_children, s)": fn never has to recurse itself.
func Transform(s *js.Schema, fn func(*js.Schema) *js.Schema) *js.Schema {
	v := &postOrderVisitor{fn: fn}
	return New(v).Walk(s)
}

type postOrderVisitor struct {
	fn func(*js.Schema) *js.Schema
}

func (v *postOrderVisitor) VisitSchema(w *Walker, s *js.Schema) *js.Schema {
	rebuilt := Base{}.VisitSchema(w, s)
	return v.fn(rebuilt)
}
