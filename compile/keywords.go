package compile

import (
	"math"
	"math/big"
	"regexp"

	js "github.com/jsonschema-go/core"
	"github.com/jsonschema-go/core/internal/bigrat"
	"github.com/rivo/uniseg"
)

func (c *compiler) compileType(types []js.TypeName, draft js.Draft) js.Validate {
	set := make(map[js.TypeName]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return func(v js.Value) bool {
		switch v.Kind() {
		case js.KindNull:
			return set[js.TypeNull]
		case js.KindBoolean:
			return set[js.TypeBoolean]
		case js.KindInteger:
			return set[js.TypeInteger] || set[js.TypeNumber]
		case js.KindFloat:
			if set[js.TypeNumber] {
				return true
			}
			if !set[js.TypeInteger] || draft < js.Draft6 {
				return false
			}
			f, _ := v.AsFloat()
			return !math.IsInf(f, 0) && f == math.Trunc(f)
		case js.KindString:
			return set[js.TypeString]
		case js.KindArray:
			return set[js.TypeArray]
		case js.KindObject:
			return set[js.TypeObject]
		default:
			return false
		}
	}
}

func (c *compiler) compileConst(want js.Value) js.Validate {
	return func(v js.Value) bool { return js.DeepEquals(v, want) }
}

func (c *compiler) compileEnum(vals []js.Value) js.Validate {
	return func(v js.Value) bool {
		for _, e := range vals {
			if js.DeepEquals(v, e) {
				return true
			}
		}
		return false
	}
}

// compileAllOf folds literal true/false members at the schema level before
// recursing (true AND x -> x, false AND _ -> false) per §4.6.4, then ANDs
// the rest.
func (c *compiler) compileAllOf(list []*js.Schema) js.Validate {
	var preds []js.Validate
	for _, m := range list {
		if m.Valid != nil {
			if !*m.Valid {
				return constFalseFn
			}
			continue
		}
		preds = append(preds, c.eval(m))
	}
	return andAll(preds)
}

// compileAnyOf folds literal members (true OR x -> true, false OR x -> x)
// and otherwise ORs the rest.
func (c *compiler) compileAnyOf(list []*js.Schema) js.Validate {
	var preds []js.Validate
	for _, m := range list {
		if m.Valid != nil {
			if *m.Valid {
				return constTrueFn
			}
			continue
		}
		preds = append(preds, c.eval(m))
	}
	if len(preds) == 0 {
		return constFalseFn
	}
	return func(v js.Value) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// compileOneOf compiles the "exactly one" quantifier of §4.6.2: a single
// accumulated seen-pass bit, short-circuiting to false the moment a second
// member passes.
func (c *compiler) compileOneOf(list []*js.Schema) js.Validate {
	preds := make([]js.Validate, len(list))
	for i, m := range list {
		preds[i] = c.eval(m)
	}
	return func(v js.Value) bool {
		seenPass := false
		for _, p := range preds {
			if p(v) {
				if seenPass {
					return false
				}
				seenPass = true
			}
		}
		return seenPass
	}
}

func (c *compiler) compileNot(sub *js.Schema) js.Validate {
	if sub.Valid != nil {
		return constBool(!*sub.Valid)
	}
	if onlyPopulatedFieldIs(sub, "not") {
		return c.eval(sub.Not)
	}
	p := c.eval(sub)
	return func(v js.Value) bool { return !p(v) }
}

func onlyPopulatedFieldIs(s *js.Schema, name string) bool {
	v := s.ToValue()
	if v.Kind() != js.KindObject {
		return false
	}
	keys := v.Keys()
	return len(keys) == 1 && keys[0] == name
}

func (c *compiler) compileIfThenElse(ifS, thenS, elseS *js.Schema) js.Validate {
	ifP := c.eval(ifS)
	var thenP, elseP js.Validate
	if thenS != nil {
		thenP = c.eval(thenS)
	}
	if elseS != nil {
		elseP = c.eval(elseS)
	}
	return func(v js.Value) bool {
		if ifP(v) {
			if thenP != nil {
				return thenP(v)
			}
			return true
		}
		if elseP != nil {
			return elseP(v)
		}
		return true
	}
}

func ratOf(v js.Value) (*big.Rat, bool) {
	switch v.Kind() {
	case js.KindInteger:
		i, _ := v.AsBigInt()
		return bigrat.FromInt(i), true
	case js.KindFloat:
		f, _ := v.AsFloat()
		return bigrat.FromFloat(f)
	default:
		return nil, false
	}
}

// compareNumeric orders two JSON number Values exactly, routing through
// big.Int when both are Integer and through big.Rat otherwise so a float's
// imprecision never flips a boundary comparison.
func compareNumeric(a, b js.Value) (int, bool) {
	if a.Kind() == js.KindInteger && b.Kind() == js.KindInteger {
		ai, _ := a.AsBigInt()
		bi, _ := b.AsBigInt()
		return ai.Cmp(bi), true
	}
	ar, ok1 := ratOf(a)
	br, ok2 := ratOf(b)
	if !ok1 || !ok2 {
		return 0, false
	}
	return bigrat.Compare(ar, br), true
}

type numBound struct {
	threshold js.Value
	exclusive bool
	isMin     bool
}

// compileNumericRange compiles "minimum"/"maximum" together with their
// exclusive counterparts, which per §3.2/§9 take either a bool (drafts
// 3/4, paired with minimum/maximum) or an independent numeric threshold
// (drafts 6/7) — and in draft 6/7 a schema may legally carry both a
// "minimum" and an "exclusiveMinimum", each checked independently.
func (c *compiler) compileNumericRange(s *js.Schema) js.Validate {
	var bounds []numBound
	if s.Minimum != nil {
		excl := false
		if s.ExclusiveMinimum != nil && s.ExclusiveMinimum.Bool != nil {
			excl = *s.ExclusiveMinimum.Bool
		}
		bounds = append(bounds, numBound{*s.Minimum, excl, true})
	}
	if s.ExclusiveMinimum != nil && s.ExclusiveMinimum.Number != nil {
		bounds = append(bounds, numBound{*s.ExclusiveMinimum.Number, true, true})
	}
	if s.Maximum != nil {
		excl := false
		if s.ExclusiveMaximum != nil && s.ExclusiveMaximum.Bool != nil {
			excl = *s.ExclusiveMaximum.Bool
		}
		bounds = append(bounds, numBound{*s.Maximum, excl, false})
	}
	if s.ExclusiveMaximum != nil && s.ExclusiveMaximum.Number != nil {
		bounds = append(bounds, numBound{*s.ExclusiveMaximum.Number, true, false})
	}

	return func(v js.Value) bool {
		if v.Kind() != js.KindInteger && v.Kind() != js.KindFloat {
			return true
		}
		for _, b := range bounds {
			cmp, ok := compareNumeric(v, b.threshold)
			if !ok {
				continue
			}
			if b.isMin {
				if b.exclusive && cmp <= 0 {
					return false
				}
				if !b.exclusive && cmp < 0 {
					return false
				}
			} else {
				if b.exclusive && cmp >= 0 {
					return false
				}
				if !b.exclusive && cmp > 0 {
					return false
				}
			}
		}
		return true
	}
}

func (c *compiler) compileMultipleOf(divisor js.Value) js.Validate {
	return func(v js.Value) bool {
		if v.Kind() != js.KindInteger && v.Kind() != js.KindFloat {
			return true
		}
		if v.Kind() == js.KindInteger && divisor.Kind() == js.KindInteger {
			vi, _ := v.AsBigInt()
			di, _ := divisor.AsBigInt()
			return bigrat.IsMultipleInt(vi, di)
		}
		vr, ok1 := ratOf(v)
		dr, ok2 := ratOf(divisor)
		if !ok1 || !ok2 {
			return true
		}
		return bigrat.IsMultiple(vr, dr)
	}
}

func (c *compiler) compileLength(min, max *int) js.Validate {
	return func(v js.Value) bool {
		if v.Kind() != js.KindString {
			return true
		}
		s, _ := v.AsString()
		n := uniseg.GraphemeClusterCount(s)
		if min != nil && n < *min {
			return false
		}
		if max != nil && n > *max {
			return false
		}
		return true
	}
}

func (c *compiler) compilePattern(pat string) js.Validate {
	re, err := regexp.Compile(pat)
	if err != nil {
		return c.fail(&js.SchemaConstructionError{Keyword: "pattern", Reason: err.Error()})
	}
	return func(v js.Value) bool {
		if v.Kind() != js.KindString {
			return true
		}
		s, _ := v.AsString()
		return re.MatchString(s)
	}
}

func (c *compiler) compileItemCount(min, max *int) js.Validate {
	return func(v js.Value) bool {
		if v.Kind() != js.KindArray {
			return true
		}
		n := v.Len()
		if min != nil && n < *min {
			return false
		}
		if max != nil && n > *max {
			return false
		}
		return true
	}
}

func (c *compiler) compileUniqueItems() js.Validate {
	return func(v js.Value) bool {
		if v.Kind() != js.KindArray {
			return true
		}
		arr, _ := v.AsArray()
		for i := 0; i < len(arr); i++ {
			for j := i + 1; j < len(arr); j++ {
				if js.DeepEquals(arr[i], arr[j]) {
					return false
				}
			}
		}
		return true
	}
}

func (c *compiler) compileContains(sub *js.Schema) js.Validate {
	pred := c.eval(sub)
	return func(v js.Value) bool {
		if v.Kind() != js.KindArray {
			return true
		}
		arr, _ := v.AsArray()
		for _, e := range arr {
			if pred(e) {
				return true
			}
		}
		return false
	}
}

// compileItems compiles the "items" keyword in both its forms. In the
// single-schema form every element validates against the same sub-schema
// and "additionalItems" is meaningless, matching the draft's rule that
// additionalItems only applies alongside the positional/tuple form.
func (c *compiler) compileItems(items *js.Items, additional *js.BoolOrSchema) js.Validate {
	if items.Single != nil {
		elem := c.eval(items.Single)
		return func(v js.Value) bool {
			if v.Kind() != js.KindArray {
				return true
			}
			arr, _ := v.AsArray()
			for _, e := range arr {
				if !elem(e) {
					return false
				}
			}
			return true
		}
	}

	tuple := make([]js.Validate, len(items.Tuple))
	for i, t := range items.Tuple {
		tuple[i] = c.eval(t)
	}
	disallowExtra := false
	var addl js.Validate
	if additional != nil {
		if additional.Bool != nil && !*additional.Bool {
			disallowExtra = true
		}
		if additional.Schema != nil {
			addl = c.eval(additional.Schema)
		}
	}
	n := len(tuple)
	return func(v js.Value) bool {
		if v.Kind() != js.KindArray {
			return true
		}
		arr, _ := v.AsArray()
		for i, e := range arr {
			if i < n {
				if !tuple[i](e) {
					return false
				}
				continue
			}
			if disallowExtra {
				return false
			}
			if addl != nil && !addl(e) {
				return false
			}
		}
		return true
	}
}

func (c *compiler) compileProperties(props *js.OrderedMap[*js.Schema]) js.Validate {
	type entry struct {
		name string
		pred js.Validate
	}
	entries := make([]entry, 0, props.Len())
	props.Each(func(name string, sub *js.Schema) {
		entries = append(entries, entry{name, c.eval(sub)})
	})
	return func(v js.Value) bool {
		if v.Kind() != js.KindObject {
			return true
		}
		for _, e := range entries {
			if val, ok := v.TryGet(e.name); ok {
				if !e.pred(val) {
					return false
				}
			}
		}
		return true
	}
}

func (c *compiler) compilePatternPropRegexes(pp *js.OrderedMap[*js.Schema]) []*regexp.Regexp {
	if pp == nil || pp.Len() == 0 {
		return nil
	}
	res := make([]*regexp.Regexp, 0, pp.Len())
	pp.Each(func(pattern string, _ *js.Schema) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			c.fail(&js.SchemaConstructionError{Keyword: "patternProperties", Reason: err.Error()})
			return
		}
		res = append(res, re)
	})
	return res
}

func (c *compiler) compilePatternProperties(pp *js.OrderedMap[*js.Schema]) js.Validate {
	type entry struct {
		re   *regexp.Regexp
		pred js.Validate
	}
	entries := make([]entry, 0, pp.Len())
	pp.Each(func(pattern string, sub *js.Schema) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			c.fail(&js.SchemaConstructionError{Keyword: "patternProperties", Reason: err.Error()})
			return
		}
		entries = append(entries, entry{re, c.eval(sub)})
	})
	return func(v js.Value) bool {
		if v.Kind() != js.KindObject {
			return true
		}
		for _, key := range v.Keys() {
			val, _ := v.TryGet(key)
			for _, e := range entries {
				if e.re.MatchString(key) && !e.pred(val) {
					return false
				}
			}
		}
		return true
	}
}

// compileAdditionalProperties compiles "additionalProperties" against the
// set of names it does NOT apply to: those declared in "properties" and
// those matched by any "patternProperties" key.
func (c *compiler) compileAdditionalProperties(props, patProps *js.OrderedMap[*js.Schema], additional *js.BoolOrSchema) js.Validate {
	propNames := make(map[string]bool)
	if props != nil {
		for _, k := range props.Keys() {
			propNames[k] = true
		}
	}
	patRes := c.compilePatternPropRegexes(patProps)

	disallow := false
	var addl js.Validate
	if additional.Bool != nil && !*additional.Bool {
		disallow = true
	}
	if additional.Schema != nil {
		addl = c.eval(additional.Schema)
	}

	return func(v js.Value) bool {
		if v.Kind() != js.KindObject {
			return true
		}
		for _, key := range v.Keys() {
			if propNames[key] {
				continue
			}
			matched := false
			for _, re := range patRes {
				if re.MatchString(key) {
					matched = true
					break
				}
			}
			if matched {
				continue
			}
			if disallow {
				return false
			}
			if addl != nil {
				val, _ := v.TryGet(key)
				if !addl(val) {
					return false
				}
			}
		}
		return true
	}
}

func (c *compiler) compilePropertyNames(sub *js.Schema) js.Validate {
	pred := c.eval(sub)
	return func(v js.Value) bool {
		if v.Kind() != js.KindObject {
			return true
		}
		for _, key := range v.Keys() {
			if !pred(js.NewString(key)) {
				return false
			}
		}
		return true
	}
}

func (c *compiler) compileRequired(names []string) js.Validate {
	return func(v js.Value) bool {
		if v.Kind() != js.KindObject {
			return true
		}
		for _, n := range names {
			if !v.ContainsKey(n) {
				return false
			}
		}
		return true
	}
}

func (c *compiler) compileDependencies(deps *js.OrderedMap[js.Dependency]) js.Validate {
	type entry struct {
		key   string
		names []string
		pred  js.Validate
	}
	entries := make([]entry, 0, deps.Len())
	deps.Each(func(key string, d js.Dependency) {
		if d.Kind == js.DependencySchema {
			entries = append(entries, entry{key: key, pred: c.eval(d.Schema)})
			return
		}
		entries = append(entries, entry{key: key, names: d.Names})
	})
	return func(v js.Value) bool {
		if v.Kind() != js.KindObject {
			return true
		}
		for _, e := range entries {
			if !v.ContainsKey(e.key) {
				continue
			}
			if e.pred != nil {
				if !e.pred(v) {
					return false
				}
				continue
			}
			for _, n := range e.names {
				if !v.ContainsKey(n) {
					return false
				}
			}
		}
		return true
	}
}

func (c *compiler) compilePropertyCount(min, max *int) js.Validate {
	return func(v js.Value) bool {
		if v.Kind() != js.KindObject {
			return true
		}
		n := v.Len()
		if min != nil && n < *min {
			return false
		}
		if max != nil && n > *max {
			return false
		}
		return true
	}
}

func (c *compiler) compileFormat(name string) js.Validate {
	fn, ok := c.opts.formats[name]
	if !ok {
		return constTrueFn
	}
	return js.Validate(fn)
}

func (c *compiler) compileContent(enc, mediaType *string) js.Validate {
	return func(v js.Value) bool {
		if v.Kind() != js.KindString {
			return true
		}
		s, _ := v.AsString()
		raw := []byte(s)
		if enc != nil {
			if dec, ok := contentEncodings[*enc]; ok {
				decoded, err := dec(s)
				if err != nil {
					return false
				}
				raw = decoded
			}
		}
		if mediaType != nil {
			if check, ok := contentMediaTypes[*mediaType]; ok && !check(raw) {
				return false
			}
		}
		return true
	}
}
