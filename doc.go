// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtape implements a flat "tape" representation of JSON values, and
// a cursor for extracting typed values from a tape without allocation.
//
// # Tapes
//
// A Tape is an index-addressable sequence of Node values describing a single
// JSON value in document order. Scalars occupy one node each; an array or
// object occupies one node followed by the nodes of its contents, and records
// the index just past its last descendant so a consumer can skip it in
// constant time. Object members are laid out as a key string followed by the
// value.
//
// Build a tape from JSON text with a Builder, or with FromSlice:
//
//	t, err := jtape.FromSlice(buf)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The strings of a tape are views of the input buffer. The builder decodes
// escape sequences in place, so the buffer is modified, and it must not be
// modified further while the tape is in use.
//
// # Numbers
//
// A StaticNode holds a scalar value: null, a Boolean, or a number of one of
// the types I64, U64, F64, I128, or U128. By default the builder parses each
// number literal into a StaticNode. With the LazyNumbers option, literals are
// instead recorded unparsed, and parsed only when they are used. The
// BorrowedNumber and OwnedNumber types hold such literals: a BorrowedNumber is
// a view of an input buffer, while an OwnedNumber has its own copy.
//
// Numbers compare by value, not by spelling, so the literals "1" and "1.0"
// are not equal (one is an integer, the other a float), while the integers
// U64(5) and I64(5) are.
//
// # Walking
//
// A Walker is a cursor over a tape. Its Parse methods consume nodes in order
// and check their kind and range:
//
//	w := jtape.NewWalker(t)
//	n, err := w.ParseArray()
//	for range n {
//	   v, err := w.ParseU8()
//	   // ...
//	}
//
// Errors have concrete type *Error, and can be classified by type:
//
//	if errors.Is(err, jtape.ExpectedUnsigned) { ... }
//
// Types that implement the Unmarshaler interface can be decoded directly from
// JSON text using Decode.
//
// # Trees
//
// Packages value/borrowed and value/owned build generic value trees from a
// tape, and package interop converts owned trees to and from the values of
// the github.com/tailscale/hujson package.
package jtape
