// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape

import (
	"go4.org/mem"
)

// A Walker is a cursor over the nodes of a Tape. The cursor denotes the node
// most recently consumed: Next advances the cursor and returns the node there,
// while Peek returns the following node without advancing.
//
// The Parse methods each consume one node and check that it has the expected
// kind and range. An error from a Parse method leaves the cursor on the
// offending node. A Walker allocates only to report errors, and never reads
// outside the tape; running past the end is reported as an UnexpectedEnd error.
type Walker struct {
	tape *Tape
	idx  int
}

// NewWalker constructs a Walker positioned before the first node of t.
func NewWalker(t *Tape) *Walker { return &Walker{tape: t, idx: -1} }

// Index returns the index of the current node, or -1 if no node has been
// consumed.
func (w *Walker) Index() int { return w.idx }

// Remaining reports the number of nodes following the current node.
func (w *Walker) Remaining() int { return len(w.tape.nodes) - w.idx - 1 }

// Done reports whether all the nodes of the tape have been consumed.
func (w *Walker) Done() bool { return w.Remaining() <= 0 }

// Reset returns the cursor to its initial position before the first node.
func (w *Walker) Reset() { w.idx = -1 }

// Next advances the cursor and returns the node at the new position.
func (w *Walker) Next() (Node, error) {
	if w.idx+1 >= len(w.tape.nodes) {
		w.idx = len(w.tape.nodes)
		return Node{}, indexError(UnexpectedEnd, w.idx, "no more nodes")
	}
	w.idx++
	return w.tape.nodes[w.idx], nil
}

// Peek returns the node following the cursor without advancing.
func (w *Walker) Peek() (Node, error) {
	if w.idx+1 >= len(w.tape.nodes) {
		return Node{}, indexError(UnexpectedEnd, w.idx+1, "no more nodes")
	}
	return w.tape.nodes[w.idx+1], nil
}

// Skip advances the cursor past the next value. If the value is an array or
// an object, its contents are skipped without being visited.
func (w *Walker) Skip() error {
	n, err := w.Next()
	if err != nil {
		return err
	}
	if n.IsContainer() {
		w.idx = n.End - 1
	}
	return nil
}

// ParseNull consumes a null value.
func (w *Walker) ParseNull() error {
	n, err := w.Next()
	if err != nil {
		return err
	} else if n.Kind != NodeStatic || !n.Static.IsNull() {
		return w.mismatch(ExpectedNull, n)
	}
	return nil
}

// ParseBool consumes a Boolean value.
func (w *Walker) ParseBool() (bool, error) {
	n, err := w.Next()
	if err != nil {
		return false, err
	}
	if n.Kind == NodeStatic {
		if v, ok := n.Static.AsBool(); ok {
			return v, nil
		}
	}
	return false, w.mismatch(ExpectedBool, n)
}

// ParseString consumes a string value. The result is a view of the input
// buffer of the tape.
func (w *Walker) ParseString() (mem.RO, error) {
	n, err := w.Next()
	if err != nil {
		return mem.RO{}, err
	} else if n.Kind != NodeString {
		return mem.RO{}, w.mismatch(ExpectedString, n)
	}
	return n.Text, nil
}

// ParseKey consumes the key of an object member. It is equivalent to
// ParseString.
func (w *Walker) ParseKey() (mem.RO, error) { return w.ParseString() }

// ParseArray consumes the start of an array and returns its number of
// elements. The elements follow in order.
func (w *Walker) ParseArray() (int, error) {
	n, err := w.Next()
	if err != nil {
		return 0, err
	} else if n.Kind != NodeArray {
		return 0, w.mismatch(ExpectedArray, n)
	}
	return n.Len, nil
}

// ParseObject consumes the start of an object and returns its number of
// members. Each member follows as a key (see ParseKey) and a value.
func (w *Walker) ParseObject() (int, error) {
	n, err := w.Next()
	if err != nil {
		return 0, err
	} else if n.Kind != NodeObject {
		return 0, w.mismatch(ExpectedObject, n)
	}
	return n.Len, nil
}

// ParseNumber consumes a number of any type. An unparsed literal is parsed.
func (w *Walker) ParseNumber() (StaticNode, error) { return w.number(ExpectedFloat) }

// number consumes a numeric node and returns its value, reporting etype if the
// node is not numeric.
func (w *Walker) number(etype ErrorType) (StaticNode, error) {
	n, err := w.Next()
	if err != nil {
		return Null, err
	}
	switch n.Kind {
	case NodeStatic:
		if n.Static.Type().IsNumber() {
			return n.Static, nil
		}
	case NodeNumber:
		v, err := parseNumber(n.Text, true)
		if err != nil {
			return Null, &Error{Type: Syntax, Index: w.idx, Message: err.(*Error).Message, err: err}
		}
		return v, nil
	}
	return Null, w.mismatch(etype, n)
}

// ParseDouble consumes a number and returns it as a float. Integers are
// widened to the nearest float.
func (w *Walker) ParseDouble() (float64, error) {
	v, err := w.number(ExpectedFloat)
	if err != nil {
		return 0, err
	}
	f, _ := v.CastF64()
	return f, nil
}

// ParseU8 through ParseU128 consume a number and return its value as an
// unsigned integer of the corresponding width. They report ExpectedUnsigned if
// the node is not an integer, or if its value is negative or out of range.
func (w *Walker) ParseU8() (uint8, error)     { return parseUnsigned(w, StaticNode.AsU8) }
func (w *Walker) ParseU16() (uint16, error)   { return parseUnsigned(w, StaticNode.AsU16) }
func (w *Walker) ParseU32() (uint32, error)   { return parseUnsigned(w, StaticNode.AsU32) }
func (w *Walker) ParseU64() (uint64, error)   { return parseUnsigned(w, StaticNode.AsU64) }
func (w *Walker) ParseU128() (Uint128, error) { return parseUnsigned(w, StaticNode.AsU128) }

// ParseI8 through ParseI128 consume a number and return its value as a signed
// integer of the corresponding width. They report ExpectedSigned if the node
// is not an integer, or if its value is out of range.
func (w *Walker) ParseI8() (int8, error)     { return parseSigned(w, StaticNode.AsI8) }
func (w *Walker) ParseI16() (int16, error)   { return parseSigned(w, StaticNode.AsI16) }
func (w *Walker) ParseI32() (int32, error)   { return parseSigned(w, StaticNode.AsI32) }
func (w *Walker) ParseI64() (int64, error)   { return parseSigned(w, StaticNode.AsI64) }
func (w *Walker) ParseI128() (Int128, error) { return parseSigned(w, StaticNode.AsI128) }

func parseUnsigned[T any](w *Walker, as func(StaticNode) (T, bool)) (T, error) {
	return parseInt(w, ExpectedUnsigned, as)
}

func parseSigned[T any](w *Walker, as func(StaticNode) (T, bool)) (T, error) {
	return parseInt(w, ExpectedSigned, as)
}

// parseInt consumes a number and converts it with as, reporting etype if the
// node is not an integer or as reports it out of range.
func parseInt[T any](w *Walker, etype ErrorType, as func(StaticNode) (T, bool)) (T, error) {
	var zero T
	v, err := w.number(etype)
	if err != nil {
		return zero, err
	}
	out, ok := as(v)
	if !ok {
		return zero, indexError(etype, w.idx, "cannot represent %v %v", v.Type(), v)
	}
	return out, nil
}

func (w *Walker) mismatch(etype ErrorType, n Node) error {
	what := n.Kind.String()
	if n.Kind == NodeStatic {
		what = n.Static.Type().String()
	}
	return indexError(etype, w.idx, "got %s", what)
}
