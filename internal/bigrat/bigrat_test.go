package bigrat_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/jsonschema-go/core/internal/bigrat"
)

func TestCompare(t *testing.T) {
	a := bigrat.FromInt(big.NewInt(3))
	b, ok := bigrat.FromFloat(3.5)
	if !ok {
		t.Fatalf("FromFloat(3.5): ok = false")
	}
	if bigrat.Compare(a, b) >= 0 {
		t.Fatalf("Compare(3, 3.5) = %d, want negative", bigrat.Compare(a, b))
	}
}

func TestFromFloat_RejectsNonFinite(t *testing.T) {
	if _, ok := bigrat.FromFloat(math.Inf(1)); ok {
		t.Fatalf("FromFloat(+Inf): ok = true, want false")
	}
	if _, ok := bigrat.FromFloat(math.NaN()); ok {
		t.Fatalf("FromFloat(NaN): ok = true, want false")
	}
}

func TestIsMultiple_MixedIntFloat(t *testing.T) {
	// 1.5 is exactly representable in binary64, so 6 / 1.5 = 4 is exact —
	// this exercises the big.Rat path rather than the big.Int fast path,
	// since the divisor is a Float value.
	v := bigrat.FromInt(big.NewInt(6))
	d, _ := bigrat.FromFloat(1.5)
	if !bigrat.IsMultiple(v, d) {
		t.Fatalf("IsMultiple(6, 1.5) = false, want true")
	}
}

func TestIsMultiple_ZeroDivisor(t *testing.T) {
	v := bigrat.FromInt(big.NewInt(4))
	zero := bigrat.FromInt(big.NewInt(0))
	if bigrat.IsMultiple(v, zero) {
		t.Fatalf("IsMultiple(4, 0) = true, want false")
	}
}

func TestIsMultipleInt(t *testing.T) {
	if !bigrat.IsMultipleInt(big.NewInt(9), big.NewInt(3)) {
		t.Fatalf("IsMultipleInt(9, 3) = false, want true")
	}
	if bigrat.IsMultipleInt(big.NewInt(10), big.NewInt(3)) {
		t.Fatalf("IsMultipleInt(10, 3) = true, want false")
	}
	if bigrat.IsMultipleInt(big.NewInt(10), big.NewInt(0)) {
		t.Fatalf("IsMultipleInt(10, 0) = true, want false")
	}
}
