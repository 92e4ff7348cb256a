// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape_test

import (
	"math"
	"testing"

	"github.com/creachadair/jtape"
)

func TestStaticString(t *testing.T) {
	tests := []struct {
		input jtape.StaticNode
		want  string
	}{
		{jtape.Null, "null"},
		{jtape.Bool(true), "true"},
		{jtape.Bool(false), "false"},
		{jtape.I64(-25), "-25"},
		{jtape.U64(math.MaxUint64), "18446744073709551615"},
		{jtape.F64(3.5), "3.5"},
		{jtape.F64(1), "1"},
		{jtape.F64(-0.001), "-0.001"},
		{jtape.F64(1e21), "1e+21"},
		{jtape.F64(1e-7), "1e-07"},
		{jtape.F64(math.NaN()), "NaN"},
		{jtape.F64(math.Inf(1)), "Infinity"},
		{jtape.F64(math.Inf(-1)), "-Infinity"},
		{jtape.I128(jtape.Int128{Hi: -1, Lo: 0}), "-18446744073709551616"},
		{jtape.U128(jtape.Uint128{Hi: 1, Lo: 0}), "18446744073709551616"},
	}
	for _, tc := range tests {
		if got := tc.input.String(); got != tc.want {
			t.Errorf("String %v: got %q, want %q", tc.input.Type(), got, tc.want)
		}
	}
}

func TestStaticEqual(t *testing.T) {
	big := jtape.U128(jtape.Uint128{Hi: 1})
	tests := []struct {
		a, b jtape.StaticNode
		want bool
	}{
		{jtape.Null, jtape.Null, true},
		{jtape.Null, jtape.Bool(false), false},
		{jtape.Bool(true), jtape.Bool(true), true},
		{jtape.Bool(true), jtape.Bool(false), false},

		// Integers compare by value across types.
		{jtape.I64(5), jtape.U64(5), true},
		{jtape.I64(-5), jtape.U64(5), false},
		{jtape.I128(jtape.Int128FromInt64(-7)), jtape.I64(-7), true},
		{jtape.U128(jtape.Uint128FromUint64(9)), jtape.I64(9), true},
		{big, big, true},
		{big, jtape.U64(0), false},
		{jtape.I64(0), jtape.U64(0), true},

		// Floats compare only with floats.
		{jtape.F64(2), jtape.F64(2), true},
		{jtape.F64(2), jtape.I64(2), false},
		{jtape.U64(2), jtape.F64(2), false},
		{jtape.F64(math.NaN()), jtape.F64(math.NaN()), false},
		{jtape.F64(0), jtape.F64(math.Copysign(0, -1)), true},
	}
	for _, tc := range tests {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("Equal(%v %v, %v %v): got %v, want %v",
				tc.a.Type(), tc.a, tc.b.Type(), tc.b, got, tc.want)
		}
		if got := tc.b.Equal(tc.a); got != tc.want {
			t.Errorf("Equal(%v %v, %v %v): got %v, want %v",
				tc.b.Type(), tc.b, tc.a.Type(), tc.a, got, tc.want)
		}
	}
}

func TestStaticAccessors(t *testing.T) {
	check := func(name string, gotOK, wantOK bool) {
		t.Helper()
		if gotOK != wantOK {
			t.Errorf("%s: got ok=%v, want %v", name, gotOK, wantOK)
		}
	}

	v300 := jtape.I64(300)
	_, ok := v300.AsU8()
	check("I64(300).AsU8", ok, false)
	_, ok = v300.AsI8()
	check("I64(300).AsI8", ok, false)
	if v, ok := v300.AsU16(); !ok || v != 300 {
		t.Errorf("I64(300).AsU16: got %v, %v; want 300, true", v, ok)
	}

	neg := jtape.I64(-1)
	_, ok = neg.AsU64()
	check("I64(-1).AsU64", ok, false)
	if v, ok := neg.AsI8(); !ok || v != -1 {
		t.Errorf("I64(-1).AsI8: got %v, %v; want -1, true", v, ok)
	}

	umax := jtape.U64(math.MaxUint64)
	_, ok = umax.AsI64()
	check("U64(max).AsI64", ok, false)
	if v, ok := umax.AsI128(); !ok || v != (jtape.Int128{Lo: math.MaxUint64}) {
		t.Errorf("U64(max).AsI128: got %v, %v", v, ok)
	}

	minI64 := jtape.I64(math.MinInt64)
	if v, ok := minI64.AsI64(); !ok || v != math.MinInt64 {
		t.Errorf("I64(min).AsI64: got %v, %v", v, ok)
	}

	wide := jtape.U128(jtape.Uint128{Hi: 1})
	_, ok = wide.AsU64()
	check("U128(2^64).AsU64", ok, false)
	if v, ok := wide.AsU128(); !ok || v != (jtape.Uint128{Hi: 1}) {
		t.Errorf("U128(2^64).AsU128: got %v, %v", v, ok)
	}
	_, ok = jtape.U128(jtape.Uint128{Hi: 1 << 63}).AsI128()
	check("U128(2^127).AsI128", ok, false)

	_, ok = jtape.F64(1).AsI64()
	check("F64(1).AsI64", ok, false)
	_, ok = jtape.I64(1).AsF64()
	check("I64(1).AsF64", ok, false)
	if f, ok := jtape.I64(-4).CastF64(); !ok || f != -4 {
		t.Errorf("I64(-4).CastF64: got %v, %v", f, ok)
	}
	if f, ok := wide.CastF64(); !ok || f != 18446744073709551616 {
		t.Errorf("U128(2^64).CastF64: got %v, %v", f, ok)
	}
	_, ok = jtape.Bool(true).CastF64()
	check("Bool.CastF64", ok, false)
	_, ok = jtape.Null.AsBool()
	check("Null.AsBool", ok, false)
}
