// Package compile implements the validator compiler of §4.6: it lowers a
// schema AST into a closure tree over the JSON value model, resolving
// recursive schemas through deferred placeholder cells (§4.6.3) rather
// than by unrolling them.
package compile

import (
	js "github.com/jsonschema-go/core"
)

func init() {
	js.RegisterCompiler(func(s *js.Schema) (js.Validate, error) {
		return Compile(s)
	})
}

// FormatFunc validates a document value against a named "format" or
// content keyword. It must never panic: library exceptions from regex
// construction, base64 decoding, or JSON parsing are converted to a false
// verdict for that single keyword, per §7.
type FormatFunc func(js.Value) bool

// Option configures a Compile call.
type Option func(*options)

type options struct {
	formats      map[string]FormatFunc
	defaultDraft js.Draft
}

func defaultOptions() options {
	return options{
		formats:      cloneFormatRegistry(defaultFormats),
		defaultDraft: js.Draft7,
	}
}

// WithFormatValidators merges extra into the format registry consulted by
// compiled "format" predicates, overriding any built-in entry with the
// same name. It lets callers recognize formats beyond the §6 set, or
// tighten/loosen a built-in one.
func WithFormatValidators(extra map[string]FormatFunc) Option {
	return func(o *options) {
		for name, fn := range extra {
			o.formats[name] = fn
		}
	}
}

// WithDraftDefault sets the draft assumed for a schema whose
// "$schema" is absent, overriding the root package's Draft7 default.
func WithDraftDefault(d js.Draft) Option {
	return func(o *options) { o.defaultDraft = d }
}

func cloneFormatRegistry(m map[string]FormatFunc) map[string]FormatFunc {
	out := make(map[string]FormatFunc, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// cell is a placeholder for a validator that is still being compiled,
// per §4.6.3: closures created while a schema is on the in-progress stack
// capture cell by reference and resolve cell.fn to the finished body the
// moment that schema's compilation returns.
type cell struct {
	fn js.Validate
}

type compiler struct {
	opts options

	// draft is the dialect governing any schema node that doesn't carry
	// its own "$schema". It is resolved once from the root schema and
	// threaded through eval/compileSchema rather than recomputed per
	// node, since a nested schema under properties/items/allOf/etc.
	// essentially never repeats "$schema" and must still validate under
	// the dialect its document declared at the root.
	draft js.Draft

	inProgress   map[*js.Schema]bool
	placeholders map[*js.Schema]*cell
	compiled     map[*js.Schema]js.Validate

	err error
}

// Compile lowers s into a callable predicate. It tolerates cyclic schemas
// (a schema reachable from itself through properties, combinators, or any
// other sub-schema field) without unbounded recursion at compile time: see
// eval.
func Compile(s *js.Schema, opts ...Option) (js.Validate, error) {
	if s == nil {
		return nil, &js.ArgumentError{Name: "s"}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	draft := o.defaultDraft
	if s.SchemaVersion != nil {
		draft = s.EffectiveDraft()
	}
	c := &compiler{
		opts:         o,
		draft:        draft,
		inProgress:   make(map[*js.Schema]bool),
		placeholders: make(map[*js.Schema]*cell),
		compiled:     make(map[*js.Schema]js.Validate),
	}
	body := c.eval(s)
	if c.err != nil {
		return nil, c.err
	}
	return body, nil
}

// eval returns a Validate for referencing s from a caller, implementing
// the delayed/compiled bookkeeping of §4.6.3:
//
//   - s already compiled: return its cached body directly.
//   - s currently being compiled (a cycle back to an ancestor): allocate
//     a placeholder cell if one doesn't exist yet, and return an indirect
//     call through it; the cell is filled in once s's compilation below
//     returns.
//   - s not yet seen: mark it in-progress, compile its body (which may
//     recurse back into eval(s) and allocate the cell above), then clear
//     the in-progress marker, wire any allocated cell to the finished
//     body, and cache the body for future references.
func (c *compiler) eval(s *js.Schema) js.Validate {
	if body, ok := c.compiled[s]; ok {
		return body
	}
	if c.inProgress[s] {
		cl, ok := c.placeholders[s]
		if !ok {
			cl = &cell{}
			c.placeholders[s] = cl
		}
		return func(v js.Value) bool { return cl.fn(v) }
	}

	c.inProgress[s] = true
	body := c.compileSchema(s)
	delete(c.inProgress, s)

	if cl, ok := c.placeholders[s]; ok {
		cl.fn = body
		delete(c.placeholders, s)
	}
	c.compiled[s] = body
	return body
}

// fail records the first construction error encountered and returns a
// stand-in predicate so the surrounding closure tree still has something
// to call; Compile discards the tree and returns the error once eval
// finishes.
func (c *compiler) fail(err error) js.Validate {
	if c.err == nil {
		c.err = err
	}
	return constFalseFn
}

var constTrueFn js.Validate = func(js.Value) bool { return true }
var constFalseFn js.Validate = func(js.Value) bool { return false }

func constBool(b bool) js.Validate {
	if b {
		return constTrueFn
	}
	return constFalseFn
}

func andAll(preds []js.Validate) js.Validate {
	switch len(preds) {
	case 0:
		return constTrueFn
	case 1:
		return preds[0]
	default:
		return func(v js.Value) bool {
			for _, p := range preds {
				if !p(v) {
					return false
				}
			}
			return true
		}
	}
}

// compileSchema lowers a single schema node (not yet memoized — eval owns
// that) into the conjunction of its populated keyword predicates, per
// §4.6: "the overall predicate for a schema is AllOf(predicate_for(keyword)
// for each populated keyword)".
func (c *compiler) compileSchema(s *js.Schema) js.Validate {
	if s.Valid != nil {
		return constBool(*s.Valid)
	}

	// Only a node that literally carries "$schema" gets its own draft;
	// every other node — which in practice means almost every nested
	// schema under properties/items/allOf/etc. — inherits the draft
	// resolved for the whole compile from the root.
	draft := c.draft
	if s.SchemaVersion != nil {
		draft = s.EffectiveDraft()
	}

	var preds []js.Validate
	add := func(p js.Validate) { preds = append(preds, p) }

	if len(s.Type) > 0 {
		add(c.compileType(s.Type, draft))
	}
	if s.Const != nil {
		add(c.compileConst(*s.Const))
	}
	if len(s.Enum) > 0 {
		add(c.compileEnum(s.Enum))
	}
	if len(s.AllOf) > 0 {
		add(c.compileAllOf(s.AllOf))
	}
	if len(s.AnyOf) > 0 {
		add(c.compileAnyOf(s.AnyOf))
	}
	if len(s.OneOf) > 0 {
		add(c.compileOneOf(s.OneOf))
	}
	if s.Not != nil {
		add(c.compileNot(s.Not))
	}
	if s.If != nil {
		add(c.compileIfThenElse(s.If, s.Then, s.Else))
	}
	if s.Minimum != nil || s.Maximum != nil || s.ExclusiveMinimum != nil || s.ExclusiveMaximum != nil {
		add(c.compileNumericRange(s))
	}
	if s.MultipleOf != nil {
		add(c.compileMultipleOf(*s.MultipleOf))
	}
	if s.MinLength != nil || s.MaxLength != nil {
		add(c.compileLength(s.MinLength, s.MaxLength))
	}
	if s.Pattern != nil {
		add(c.compilePattern(*s.Pattern))
	}
	if s.Format != nil {
		add(c.compileFormat(*s.Format))
	}
	if s.ContentEncoding != nil || s.ContentMediaType != nil {
		add(c.compileContent(s.ContentEncoding, s.ContentMediaType))
	}
	if s.MinItems != nil || s.MaxItems != nil {
		add(c.compileItemCount(s.MinItems, s.MaxItems))
	}
	if s.UniqueItems != nil && *s.UniqueItems {
		add(c.compileUniqueItems())
	}
	if s.Contains != nil {
		add(c.compileContains(s.Contains))
	}
	if s.Items != nil {
		add(c.compileItems(s.Items, s.AdditionalItems))
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		add(c.compileProperties(s.Properties))
	}
	if s.PatternProperties != nil && s.PatternProperties.Len() > 0 {
		add(c.compilePatternProperties(s.PatternProperties))
	}
	if s.AdditionalProperties != nil {
		add(c.compileAdditionalProperties(s.Properties, s.PatternProperties, s.AdditionalProperties))
	}
	if s.PropertyNames != nil {
		add(c.compilePropertyNames(s.PropertyNames))
	}
	if len(s.Required) > 0 {
		add(c.compileRequired(s.Required))
	}
	if s.Dependencies != nil && s.Dependencies.Len() > 0 {
		add(c.compileDependencies(s.Dependencies))
	}
	if s.MinProperties != nil || s.MaxProperties != nil {
		add(c.compilePropertyCount(s.MinProperties, s.MaxProperties))
	}

	return andAll(preds)
}
