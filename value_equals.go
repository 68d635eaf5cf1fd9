package jsonschema

import "math/big"

// DeepEquals implements the structural equality of §3.1: a and b must
// share the same Kind, and then compare recursively — arrays positionally,
// objects by matching name sets with per-key deep equality (order does not
// matter), scalars by natural equality. It is reflexive, symmetric, and
// transitive, and is the sole notion of equivalence used by the compiler
// and the minimizer.
func DeepEquals(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindInteger:
		return bigIntEqual(a.i, b.i)
	case KindFloat:
		return floatEqual(a.f, b.f)
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !DeepEquals(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return objectEqual(a.obj, b.obj)
	default:
		return false
	}
}

func bigIntEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}

func objectEqual(a, b *OrderedMap[Value]) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Each(func(key string, av Value) {
		if !equal {
			return
		}
		bv, ok := b.Get(key)
		if !ok || !DeepEquals(av, bv) {
			equal = false
		}
	})
	return equal
}

func floatEqual(a, b float64) bool {
	return a == b
}
