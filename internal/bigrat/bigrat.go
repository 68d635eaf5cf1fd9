// Package bigrat provides exact-rational arithmetic helpers shared by the
// validator compiler's numeric keyword predicates (minimum/maximum and
// multipleOf), so that large integers and integer/float comparisons never
// lose precision to a float64 round-trip, per §4.6.1.
package bigrat

import "math/big"

// FromInt returns the exact rational value of an arbitrary-precision
// integer.
func FromInt(i *big.Int) *big.Rat {
	return new(big.Rat).SetInt(i)
}

// FromFloat returns the exact rational value of a float64 and true, or
// (nil, false) if f is not finite (NaN or ±Inf, which have no rational
// value and never satisfy a numeric keyword).
func FromFloat(f float64) (*big.Rat, bool) {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return nil, false
	}
	return r, true
}

// Compare returns -1, 0, or 1 as a < b, a == b, or a > b.
func Compare(a, b *big.Rat) int {
	return a.Cmp(b)
}

// IsMultiple reports whether v is an exact integer multiple of divisor.
// It returns false for a zero divisor, mirroring "multipleOf" having no
// well-defined meaning at zero.
func IsMultiple(v, divisor *big.Rat) bool {
	if divisor.Sign() == 0 {
		return false
	}
	q := new(big.Rat).Quo(v, divisor)
	return q.IsInt()
}

// IsMultipleInt is the fast integer-only path for "multipleOf" when both
// the instance and the divisor are JSON Integers: an exact big.Int
// remainder check, never touching floating point.
func IsMultipleInt(v, divisor *big.Int) bool {
	if divisor.Sign() == 0 {
		return false
	}
	m := new(big.Int).Mod(v, divisor)
	return m.Sign() == 0
}
