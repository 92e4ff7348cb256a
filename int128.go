// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape

import (
	"math/big"
	"math/bits"

	"go4.org/mem"
)

// An Int128 is a signed 128-bit integer in two's-complement form.
type Int128 struct {
	Hi int64
	Lo uint64
}

// A Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi, Lo uint64
}

// Int128FromInt64 returns the 128-bit representation of v.
func Int128FromInt64(v int64) Int128 { return Int128{Hi: v >> 63, Lo: uint64(v)} }

// Uint128FromUint64 returns the 128-bit representation of v.
func Uint128FromUint64(v uint64) Uint128 { return Uint128{Lo: v} }

// IsInt64 reports whether v can be represented as an int64.
func (v Int128) IsInt64() bool { return v.Hi == int64(v.Lo)>>63 }

// Sign returns -1, 0, or 1 according to whether v is negative, zero, or
// positive.
func (v Int128) Sign() int {
	switch {
	case v.Hi < 0:
		return -1
	case v.Hi == 0 && v.Lo == 0:
		return 0
	}
	return 1
}

// Big returns v as a big.Int.
func (v Int128) Big() *big.Int {
	z := new(big.Int).Lsh(big.NewInt(v.Hi), 64)
	return z.Or(z, new(big.Int).SetUint64(v.Lo))
}

func (v Int128) String() string { return v.Big().String() }

// magnitude returns the absolute value of v and whether v is negative.
func (v Int128) magnitude() (Uint128, bool) {
	if v.Hi >= 0 {
		return Uint128{Hi: uint64(v.Hi), Lo: v.Lo}, false
	}
	lo, borrow := bits.Sub64(0, v.Lo, 0)
	hi, _ := bits.Sub64(0, uint64(v.Hi), borrow)
	return Uint128{Hi: hi, Lo: lo}, true
}

// IsUint64 reports whether v can be represented as a uint64.
func (v Uint128) IsUint64() bool { return v.Hi == 0 }

// Big returns v as a big.Int.
func (v Uint128) Big() *big.Int {
	z := new(big.Int).Lsh(new(big.Int).SetUint64(v.Hi), 64)
	return z.Or(z, new(big.Int).SetUint64(v.Lo))
}

func (v Uint128) String() string { return v.Big().String() }

// float64 returns the nearest float64 to v.
func (v Uint128) float64() float64 {
	if v.Hi == 0 {
		return float64(v.Lo)
	}
	f, _ := new(big.Float).SetInt(v.Big()).Float64()
	return f
}

// negate returns -v, reporting false if the result does not fit in an Int128.
func (v Uint128) negate() (Int128, bool) {
	if v.Hi > 1<<63 || (v.Hi == 1<<63 && v.Lo != 0) {
		return Int128{}, false
	}
	lo, borrow := bits.Sub64(0, v.Lo, 0)
	hi, _ := bits.Sub64(0, v.Hi, borrow)
	return Int128{Hi: int64(hi), Lo: lo}, true
}

// parseUint128 parses a non-empty string of decimal digits, reporting false if
// the value exceeds the range of a Uint128.
func parseUint128(digits mem.RO) (Uint128, bool) {
	var z Uint128
	for i := 0; i < digits.Len(); i++ {
		d := uint64(digits.At(i) - '0')
		if d > 9 {
			return Uint128{}, false
		}
		hh, hl := bits.Mul64(z.Hi, 10)
		if hh != 0 {
			return Uint128{}, false
		}
		lh, ll := bits.Mul64(z.Lo, 10)
		lo, carry := bits.Add64(ll, d, 0)
		hi, c1 := bits.Add64(hl, lh, carry)
		if c1 != 0 {
			return Uint128{}, false
		}
		z = Uint128{Hi: hi, Lo: lo}
	}
	return z, true
}
