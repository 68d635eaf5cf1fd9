package jsonschema

import "math/big"

// Kind is the tag of a Value's variant.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
)

// String renders the kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged JSON value: exactly one of Null, Boolean, Integer,
// Float, String, Array, Object per §3.1. Integer and Float are distinct
// tags even when numerically equal — 1 and 1.0 are different Values.
//
// The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    *big.Int
	f    float64
	s    string
	arr  []Value
	obj  *OrderedMap[Value]
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// NewBool wraps a bool.
func NewBool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// NewInt wraps a fixed-width integer.
func NewInt(i int64) Value { return Value{kind: KindInteger, i: big.NewInt(i)} }

// NewBigInt wraps an arbitrary-precision integer. n is copied, so the
// caller may reuse or mutate it afterward without affecting the Value.
func NewBigInt(n *big.Int) Value {
	if n == nil {
		n = new(big.Int)
	}
	return Value{kind: KindInteger, i: new(big.Int).Set(n)}
}

// NewFloat wraps a float64.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewString wraps a string.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewArray wraps an ordered sequence of Values. The slice is copied.
func NewArray(items []Value) Value {
	return Value{kind: KindArray, arr: append([]Value(nil), items...)}
}

// NewObject wraps an OrderedMap of name->Value. The map is cloned.
func NewObject(fields *OrderedMap[Value]) Value {
	if fields == nil {
		fields = NewOrderedMap[Value]()
	}
	return Value{kind: KindObject, obj: fields.Clone()}
}

// Kind reports the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload. TypeMismatch if v is not a Boolean.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBoolean {
		return false, &TypeMismatchError{Want: KindBoolean, Got: v.kind}
	}
	return v.b, nil
}

// AsBigInt returns the integer payload. TypeMismatch if v is not an
// Integer. The returned *big.Int must not be mutated by the caller.
func (v Value) AsBigInt() (*big.Int, error) {
	if v.kind != KindInteger {
		return nil, &TypeMismatchError{Want: KindInteger, Got: v.kind}
	}
	return v.i, nil
}

// AsFloat returns the float payload. TypeMismatch if v is not a Float.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, &TypeMismatchError{Want: KindFloat, Got: v.kind}
	}
	return v.f, nil
}

// AsString returns the string payload. TypeMismatch if v is not a String.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &TypeMismatchError{Want: KindString, Got: v.kind}
	}
	return v.s, nil
}

// AsArray returns the backing slice. TypeMismatch if v is not an Array.
// The returned slice must not be mutated by the caller.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, &TypeMismatchError{Want: KindArray, Got: v.kind}
	}
	return v.arr, nil
}

// AsObject returns the backing OrderedMap. TypeMismatch if v is not an
// Object. The returned map must not be mutated by the caller.
func (v Value) AsObject() (*OrderedMap[Value], error) {
	if v.kind != KindObject {
		return nil, &TypeMismatchError{Want: KindObject, Got: v.kind}
	}
	return v.obj, nil
}

// Len returns the element/field count for Array and Object values, and 0
// otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Index returns the element at position i of an Array value. It panics if
// v is not an Array or i is out of range, mirroring ordinary slice
// indexing semantics; callers that need a bounds-checked form should
// compare against Len first.
func (v Value) Index(i int) Value {
	if v.kind != KindArray {
		panic(&TypeMismatchError{Want: KindArray, Got: v.kind})
	}
	return v.arr[i]
}

// ContainsKey reports whether an Object value has the given key. It
// returns false for non-Object values.
func (v Value) ContainsKey(name string) bool {
	if v.kind != KindObject {
		return false
	}
	return v.obj.Has(name)
}

// TryGet returns the value under name in an Object value. It returns
// (Null(), false) for non-Object values or a missing key.
func (v Value) TryGet(name string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	return v.obj.Get(name)
}

// Keys returns the field names of an Object value in insertion order, or
// nil for non-Object values.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.obj.Keys()
}
