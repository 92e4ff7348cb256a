// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package borrowed defines a tree representation of JSON values whose strings
// and number literals are views of the input they were parsed from.
//
// A borrowed tree is cheap to construct, but it is only valid while its input
// buffer is unchanged. Use owned.FromBorrowed to make an independent copy.
package borrowed

import (
	"github.com/creachadair/jtape"
	"github.com/creachadair/jtape/internal/escape"
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

func (s Static) JSON() string                 { return s.StaticNode.String() }
func (s Static) appendJSON(buf []byte) []byte { return append(buf, s.StaticNode.String()...) }

// Number is an unparsed number literal.
type Number struct{ jtape.BorrowedNumber }

// JSON renders the literal text of n as written in the input.
func (n Number) JSON() string                 { return n.Bytes().StringCopy() }
func (n Number) appendJSON(buf []byte) []byte { return mem.Append(buf, n.Bytes()) }

// String is a decoded string value.
type String struct{ mem.RO }

func (s String) JSON() string                 { return string(s.appendJSON(nil)) }
func (s String) appendJSON(buf []byte) []byte { return escape.AppendQuoted(buf, s.RO) }

// An Array is a sequence of values.
type Array []Value

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

// An Object is a sequence of key-value members, in input order.
type Object []*Member

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key.EqualString(key) {
			return m
		}
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
		buf = escape.AppendQuoted(buf, m.Key)
		buf = append(buf, ':')
		buf = m.Value.appendJSON(buf)
	}
	return append(buf, '}')
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   mem.RO
	Value Value
}

// Parse builds a tape from buf and returns the tree for its value. Numbers
// are recorded as unparsed literals. Strings are unescaped in place, so the
// contents of buf are modified, and the result is only valid while buf is not
// modified further.
func Parse(buf []byte) (Value, error) {
	t, err := jtape.NewBuilder().LazyNumbers(true).Build(buf)
	if err != nil {
		return nil, err
	}
	return FromTape(t)
}

// FromTape returns the tree for the value described by t. If an object has
// duplicate keys, the last value for the key replaces the earlier ones at the
// position of the first.
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
		return Number{n.Number()}, nil
	case jtape.NodeString:
		return String{n.Text}, nil
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
		var index map[string]*Member // for large objects
		if n.Len > 8 {
			index = make(map[string]*Member, n.Len)
		}
		for range n.Len {
			key, err := w.ParseKey()
			if err != nil {
				return nil, err
			}
			val, err := build(w)
			if err != nil {
				return nil, err
			}

			var old *Member
			if index != nil {
				old = index[key.StringCopy()]
			} else {
				old = obj.findKey(key)
			}
			if old != nil {
				old.Value = val
				continue
			}
			m := &Member{Key: key, Value: val}
			obj = append(obj, m)
			if index != nil {
				index[key.StringCopy()] = m
			}
		}
		return obj, nil
	}
	return nil, &jtape.Error{Type: jtape.Syntax, Index: w.Index(), Message: "invalid node " + n.Kind.String()}
}

func (o Object) findKey(key mem.RO) *Member {
	for _, m := range o {
		if m.Key.Equal(key) {
			return m
		}
	}
	return nil
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
			return x.BorrowedNumber.Equal(y.BorrowedNumber)
		}
	case String:
		y, ok := b.(String)
		return ok && x.RO.Equal(y.RO)
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
			if !x[i].Key.Equal(y[i].Key) || !Equal(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
