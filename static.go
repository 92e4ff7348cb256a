// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape

import (
	"math"
	"strconv"
)

// Type identifies the kind of scalar held by a StaticNode.
type Type byte

// Constants defining the valid Type values.
const (
	TypeNull Type = iota // null
	TypeBool             // true or false
	TypeI64              // signed 64-bit integer
	TypeU64              // unsigned 64-bit integer
	TypeF64              // 64-bit IEEE 754 float
	TypeI128             // signed 128-bit integer
	TypeU128             // unsigned 128-bit integer
)

var typeStr = [...]string{
	TypeNull: "null",
	TypeBool: "bool",
	TypeI64:  "i64",
	TypeU64:  "u64",
	TypeF64:  "f64",
	TypeI128: "i128",
	TypeU128: "u128",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return "invalid"
	}
	return typeStr[t]
}

// IsNumber reports whether t is one of the numeric types.
func (t Type) IsNumber() bool { return t >= TypeI64 && t <= TypeU128 }

// IsInteger reports whether t is one of the integer types.
func (t Type) IsInteger() bool { return t.IsNumber() && t != TypeF64 }

// A StaticNode is a primitive JSON scalar: null, a Boolean, or a number.
// The zero value is null. StaticNode values are comparable, but the == operator
// distinguishes representations; use Equal to compare numeric values.
type StaticNode struct {
	typ    Type
	hi, lo uint64
}

// Null is the StaticNode for the JSON null constant.
var Null StaticNode

// Bool returns a StaticNode holding a Boolean.
func Bool(v bool) StaticNode {
	if v {
		return StaticNode{typ: TypeBool, lo: 1}
	}
	return StaticNode{typ: TypeBool}
}

// I64 returns a StaticNode holding a signed 64-bit integer.
func I64(v int64) StaticNode { return StaticNode{typ: TypeI64, lo: uint64(v)} }

// U64 returns a StaticNode holding an unsigned 64-bit integer.
func U64(v uint64) StaticNode { return StaticNode{typ: TypeU64, lo: v} }

// F64 returns a StaticNode holding a float.
func F64(v float64) StaticNode { return StaticNode{typ: TypeF64, lo: math.Float64bits(v)} }

// I128 returns a StaticNode holding a signed 128-bit integer.
func I128(v Int128) StaticNode { return StaticNode{typ: TypeI128, hi: uint64(v.Hi), lo: v.Lo} }

// U128 returns a StaticNode holding an unsigned 128-bit integer.
func U128(v Uint128) StaticNode { return StaticNode{typ: TypeU128, hi: v.Hi, lo: v.Lo} }

// Type reports the type of s.
func (s StaticNode) Type() Type { return s.typ }

// IsNull reports whether s is null.
func (s StaticNode) IsNull() bool { return s.typ == TypeNull }

// AsBool returns the Boolean value of s, reporting false if s is not a bool.
func (s StaticNode) AsBool() (bool, bool) { return s.lo != 0, s.typ == TypeBool }

// AsF64 returns the value of s if it is a float, and reports false otherwise.
// It does not convert integers; see CastF64.
func (s StaticNode) AsF64() (float64, bool) {
	if s.typ != TypeF64 {
		return 0, false
	}
	return math.Float64frombits(s.lo), true
}

// CastF64 returns the value of any numeric s as a float, widening integers to
// the nearest representable value. It reports false if s is not a number.
func (s StaticNode) CastF64() (float64, bool) {
	switch s.typ {
	case TypeF64:
		return math.Float64frombits(s.lo), true
	case TypeI64:
		return float64(int64(s.lo)), true
	case TypeU64:
		return float64(s.lo), true
	case TypeI128, TypeU128:
		mag, neg := s.intValue()
		f := mag.float64()
		if neg {
			f = -f
		}
		return f, true
	}
	return 0, false
}

// intValue returns the magnitude and sign of an integer s.
// It returns zero for non-integer types.
func (s StaticNode) intValue() (mag Uint128, neg bool) {
	switch s.typ {
	case TypeI64:
		return Int128FromInt64(int64(s.lo)).magnitude()
	case TypeU64:
		return Uint128{Lo: s.lo}, false
	case TypeI128:
		return Int128{Hi: int64(s.hi), Lo: s.lo}.magnitude()
	case TypeU128:
		return Uint128{Hi: s.hi, Lo: s.lo}, false
	}
	return Uint128{}, false
}

// AsU128 returns the value of s as a Uint128, reporting false if s is not an
// integer or is negative.
func (s StaticNode) AsU128() (Uint128, bool) {
	if !s.typ.IsInteger() {
		return Uint128{}, false
	}
	mag, neg := s.intValue()
	if neg {
		return Uint128{}, false
	}
	return mag, true
}

// AsI128 returns the value of s as an Int128, reporting false if s is not an
// integer or its value is out of range.
func (s StaticNode) AsI128() (Int128, bool) {
	if !s.typ.IsInteger() {
		return Int128{}, false
	}
	mag, neg := s.intValue()
	if neg {
		return mag.negate()
	}
	if mag.Hi >= 1<<63 {
		return Int128{}, false
	}
	return Int128{Hi: int64(mag.Hi), Lo: mag.Lo}, true
}

// AsU64 returns the value of s as a uint64, reporting false if s is not an
// integer or its value is out of range.
func (s StaticNode) AsU64() (uint64, bool) {
	v, ok := s.AsU128()
	if !ok || !v.IsUint64() {
		return 0, false
	}
	return v.Lo, true
}

// AsI64 returns the value of s as an int64, reporting false if s is not an
// integer or its value is out of range.
func (s StaticNode) AsI64() (int64, bool) {
	v, ok := s.AsI128()
	if !ok || !v.IsInt64() {
		return 0, false
	}
	return int64(v.Lo), true
}

// AsU32, AsU16, and AsU8 return the value of s as an unsigned integer of the
// corresponding width, reporting false if s is not an integer or its value is
// out of range. AsI32, AsI16, and AsI8 do the same for signed widths.
func (s StaticNode) AsU32() (uint32, bool) { return narrowU[uint32](s) }
func (s StaticNode) AsU16() (uint16, bool) { return narrowU[uint16](s) }
func (s StaticNode) AsU8() (uint8, bool)   { return narrowU[uint8](s) }
func (s StaticNode) AsI32() (int32, bool)  { return narrowI[int32](s) }
func (s StaticNode) AsI16() (int16, bool)  { return narrowI[int16](s) }
func (s StaticNode) AsI8() (int8, bool)    { return narrowI[int8](s) }

func narrowU[T uint8 | uint16 | uint32](s StaticNode) (T, bool) {
	v, ok := s.AsU64()
	if !ok || uint64(T(v)) != v {
		return 0, false
	}
	return T(v), true
}

func narrowI[T int8 | int16 | int32](s StaticNode) (T, bool) {
	v, ok := s.AsI64()
	if !ok || int64(T(v)) != v {
		return 0, false
	}
	return T(v), true
}

// Equal reports whether s and o denote the same value. Integers are equal if
// their values are equal, regardless of width or signedness. A float is only
// equal to another float with the same value, so NaN is not equal to itself.
func (s StaticNode) Equal(o StaticNode) bool {
	switch {
	case s.typ.IsInteger() && o.typ.IsInteger():
		sm, sn := s.intValue()
		om, on := o.intValue()
		return sm == om && sn == on
	case s.typ == TypeF64 && o.typ == TypeF64:
		return math.Float64frombits(s.lo) == math.Float64frombits(o.lo)
	case s.typ != o.typ:
		return false
	}
	return s.lo == o.lo // null, bool
}

// String renders s as JSON text. Non-finite floats, which JSON cannot
// represent, are rendered as NaN, Infinity, or -Infinity.
func (s StaticNode) String() string {
	switch s.typ {
	case TypeNull:
		return "null"
	case TypeBool:
		return strconv.FormatBool(s.lo != 0)
	case TypeI64:
		return strconv.FormatInt(int64(s.lo), 10)
	case TypeU64:
		return strconv.FormatUint(s.lo, 10)
	case TypeI128:
		return Int128{Hi: int64(s.hi), Lo: s.lo}.String()
	case TypeU128:
		return Uint128{Hi: s.hi, Lo: s.lo}.String()
	case TypeF64:
		return formatFloat(math.Float64frombits(s.lo))
	}
	return "invalid"
}

// formatFloat renders f in the shortest form that round-trips, using exponent
// notation only for very large or very small magnitudes.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
