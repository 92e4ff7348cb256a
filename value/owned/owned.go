// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package owned defines a tree representation of JSON values that does not
// share storage with the input it was parsed from.
package owned

import (
	"fmt"
	"maps"
	"slices"

	"github.com/creachadair/jtape"
	"github.com/creachadair/jtape/internal/escape"
	"github.com/creachadair/jtape/value/borrowed"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value. The concrete type of a Value is one of
// Static, Number, String, Array, or Object.
type Value interface {
	// JSON renders the value as compact JSON text.
	JSON() string

	appendJSON([]byte) []byte
}

// Static is a scalar value: null, a Boolean, or a parsed number.
type Static struct{ jtape.StaticNode }

// Null returns a null value.
func Null() Static { return Static{jtape.Null} }

// Bool returns a Boolean value.
func Bool(v bool) Static { return Static{jtape.Bool(v)} }

// Int returns a signed integer value.
func Int(v int64) Static { return Static{jtape.I64(v)} }

// Uint returns an unsigned integer value.
func Uint(v uint64) Static { return Static{jtape.U64(v)} }

// Float returns a floating-point value.
func Float(v float64) Static { return Static{jtape.F64(v)} }

func (s Static) JSON() string                 { return s.StaticNode.String() }
func (s Static) appendJSON(buf []byte) []byte { return append(buf, s.StaticNode.String()...) }

// Number is an unparsed number literal.
type Number struct{ jtape.OwnedNumber }

// JSON renders the literal text of n as originally written.
func (n Number) JSON() string                 { return n.Text() }
func (n Number) appendJSON(buf []byte) []byte { return append(buf, n.Text()...) }

// String is a string value.
type String string

func (s String) JSON() string                 { return string(s.appendJSON(nil)) }
func (s String) appendJSON(buf []byte) []byte { return escape.AppendQuoted(buf, mem.S(string(s))) }

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (a Array) JSON() string { return string(a.appendJSON(nil)) }

func (a Array) appendJSON(buf []byte) []byte {
	buf = append(buf, '[')
	for i, v := range a {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = v.appendJSON(buf)
	}
	return append(buf, ']')
}

// An Object is a sequence of key-value members.
type Object []*Member

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Field returns the value of the first member of o with the given key, or
// nil if there is no such member.
func (o Object) Field(key string) Value {
	if m := o.Find(key); m != nil {
		return m.Value
	}
	return nil
}

func (o Object) JSON() string { return string(o.appendJSON(nil)) }

func (o Object) appendJSON(buf []byte) []byte {
	buf = append(buf, '{')
	for i, m := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = escape.AppendQuoted(buf, mem.S(m.Key))
		buf = append(buf, ':')
		buf = m.Value.appendJSON(buf)
	}
	return append(buf, '}')
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs a member with the given key and value. The value is
// converted as by ToValue.
func Field(key string, value any) *Member { return &Member{Key: key, Value: ToValue(value)} }

// ToValue converts a Go value into a Value. It accepts a Value (returned
// as-is), nil (null), Booleans, integers and floats of all sizes, strings,
// jtape.StaticNode and jtape.OwnedNumber, slices of those types, *Member,
// []*Member, and map[string]V for any accepted V (members sorted by key).
// It panics for any other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case jtape.StaticNode:
		return Static{t}
	case jtape.OwnedNumber:
		return Number{t}
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Uint(uint64(t))
	case uint8:
		return Uint(uint64(t))
	case uint16:
		return Uint(uint64(t))
	case uint32:
		return Uint(uint64(t))
	case uint64:
		return Uint(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return String(t)
	case *Member:
		return Object{t}
	case []*Member:
		return Object(t)
	case []any:
		return arrayOf(t)
	case []Value:
		return Array(t)
	case []string:
		return arrayOf(t)
	case []int:
		return arrayOf(t)
	case []int64:
		return arrayOf(t)
	case []float64:
		return arrayOf(t)
	case map[string]any:
		return objectOf(t)
	case map[string]string:
		return objectOf(t)
	case map[string]Value:
		return objectOf(t)
	}
	panic(fmt.Sprintf("unsupported value type %T", v))
}

func arrayOf[T any](vs []T) Array {
	out := make(Array, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return out
}

func objectOf[T any](m map[string]T) Object {
	out := make(Object, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		out = append(out, Field(key, m[key]))
	}
	return out
}

// Parse parses the JSON value in text and returns an owned tree for it.
// Numbers are recorded as unparsed literals, preserving their spelling.
func Parse(text string) (Value, error) {
	t, err := jtape.NewBuilder().LazyNumbers(true).Build([]byte(text))
	if err != nil {
		return nil, err
	}
	return FromTape(t)
}

// FromTape returns an owned tree for the value described by t. Strings and
// number literals are copied, so the result does not depend on the input of
// t. If an object has duplicate keys, the last value for the key replaces the
// earlier ones at the position of the first.
func FromTape(t *jtape.Tape) (Value, error) {
	var b builder
	if err := jtape.DecodeTape(t, &b); err != nil {
		return nil, err
	}
	return b.root, nil
}

type builder struct{ root Value }

func (b *builder) UnmarshalTape(w *jtape.Walker) (err error) {
	b.root, err = build(w)
	return err
}

func build(w *jtape.Walker) (Value, error) {
	n, err := w.Next()
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case jtape.NodeStatic:
		return Static{n.Static}, nil
	case jtape.NodeNumber:
		return Number{n.Number().Materialize()}, nil
	case jtape.NodeString:
		return String(n.Text.StringCopy()), nil
	case jtape.NodeArray:
		arr := make(Array, n.Len)
		for i := range arr {
			arr[i], err = build(w)
			if err != nil {
				return nil, err
			}
		}
		return arr, nil
	case jtape.NodeObject:
		obj := make(Object, 0, n.Len)
		index := make(map[string]*Member, n.Len)
		for range n.Len {
			key, err := w.ParseKey()
			if err != nil {
				return nil, err
			}
			val, err := build(w)
			if err != nil {
				return nil, err
			}
			if old, ok := index[key.StringCopy()]; ok {
				old.Value = val
				continue
			}
			m := &Member{Key: key.StringCopy(), Value: val}
			obj = append(obj, m)
			index[m.Key] = m
		}
		return obj, nil
	}
	return nil, &jtape.Error{Type: jtape.Syntax, Index: w.Index(), Message: "invalid node " + n.Kind.String()}
}

// FromBorrowed returns an owned copy of v. Strings are copied, and number
// literals are copied with their original spelling.
func FromBorrowed(v borrowed.Value) Value {
	switch t := v.(type) {
	case borrowed.Static:
		return Static{t.StaticNode}
	case borrowed.Number:
		return Number{t.Materialize()}
	case borrowed.String:
		return String(t.StringCopy())
	case borrowed.Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = FromBorrowed(e)
		}
		return out
	case borrowed.Object:
		out := make(Object, len(t))
		for i, m := range t {
			out[i] = &Member{Key: m.Key.StringCopy(), Value: FromBorrowed(m.Value)}
		}
		return out
	}
	panic(fmt.Sprintf("unknown borrowed value type %T", v))
}

// Equal reports whether a and b are structurally equal. Arrays and objects
// must have the same length, and corresponding elements or members (and their
// keys) must be equal in order. Numbers are compared by value, whether parsed
// or not; a literal that does not parse is not equal to anything.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Static:
		switch y := b.(type) {
		case Static:
			return x.StaticNode.Equal(y.StaticNode)
		case Number:
			return y.EqualStatic(x.StaticNode)
		}
	case Number:
		switch y := b.(type) {
		case Static:
			return x.EqualStatic(y.StaticNode)
		case Number:
			return x.OwnedNumber.Equal(y.OwnedNumber)
		}
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(Object)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i].Key != y[i].Key || !Equal(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// EqualBorrowed reports whether a is structurally equal to the borrowed value
// b, using the same rules as Equal.
func EqualBorrowed(a Value, b borrowed.Value) bool {
	switch x := a.(type) {
	case Static:
		switch y := b.(type) {
		case borrowed.Static:
			return x.StaticNode.Equal(y.StaticNode)
		case borrowed.Number:
			return y.EqualStatic(x.StaticNode)
		}
	case Number:
		switch y := b.(type) {
		case borrowed.Static:
			return x.EqualStatic(y.StaticNode)
		case borrowed.Number:
			return x.EqualBorrowed(y.BorrowedNumber)
		}
	case String:
		y, ok := b.(borrowed.String)
		return ok && y.EqualString(string(x))
	case Array:
		y, ok := b.(borrowed.Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !EqualBorrowed(x[i], y[i]) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(borrowed.Object)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !y[i].Key.EqualString(x[i].Key) || !EqualBorrowed(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
