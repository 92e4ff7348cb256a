// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape

import (
	"fmt"

	"github.com/creachadair/jtape/internal/scan"
	"go4.org/mem"
)

// A BorrowedNumber is an unparsed JSON number literal whose text is a view of
// an input buffer. It must not be used after the buffer is modified or
// released; use Materialize to obtain an independent copy.
//
// Constructing a BorrowedNumber does not check its text. Parse interprets the
// text on demand, and parsing is repeatable with no side effects.
//
// The SameText methods compare the raw text of numbers, and the Equal methods
// compare parsed values.
type BorrowedNumber struct {
	text mem.RO
}

// NewBorrowedNumber returns a BorrowedNumber viewing text. The caller must not
// modify text while the result is in use.
func NewBorrowedNumber(text []byte) BorrowedNumber { return BorrowedNumber{text: mem.B(text)} }

// Bytes returns a read-only view of the literal text of n.
func (n BorrowedNumber) Bytes() mem.RO { return n.text }

// Parse interprets the text of n as a JSON number.
func (n BorrowedNumber) Parse() (StaticNode, error) { return parseNumber(n.text, true) }

// Format returns the JSON text of the parsed value of n. It reports an error if
// n does not parse.
func (n BorrowedNumber) Format() (string, error) { return formatNumber(n.text) }

// String returns the JSON text of the parsed value of n, or "" if n does not
// parse.
func (n BorrowedNumber) String() string { s, _ := n.Format(); return s }

// MarshalText implements the encoding.TextMarshaler interface.
func (n BorrowedNumber) MarshalText() ([]byte, error) {
	s, err := n.Format()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Materialize returns an OwnedNumber with a copy of the literal text of n.
func (n BorrowedNumber) Materialize() OwnedNumber { return OwnedNumber{text: n.text.StringCopy()} }

// Equal reports whether n and o parse to equal values.
func (n BorrowedNumber) Equal(o BorrowedNumber) bool { return equalText(n.text, o.text) }

// EqualOwned reports whether n and o parse to equal values.
func (n BorrowedNumber) EqualOwned(o OwnedNumber) bool { return equalText(n.text, mem.S(o.text)) }

// EqualStatic reports whether n parses to a value equal to s.
func (n BorrowedNumber) EqualStatic(s StaticNode) bool { return equalStatic(n.text, s) }

// SameText reports whether n and o have identical literal text.
func (n BorrowedNumber) SameText(o BorrowedNumber) bool { return n.text.Equal(o.text) }

// SameTextOwned reports whether n and o have identical literal text.
func (n BorrowedNumber) SameTextOwned(o OwnedNumber) bool { return n.text.EqualString(o.text) }

// An OwnedNumber is an unparsed JSON number literal that owns its text.
// Like a BorrowedNumber, it is parsed on demand. OwnedNumber values are
// comparable, and the == operator compares the raw text.
type OwnedNumber struct {
	text string
}

// NewOwnedNumber returns an OwnedNumber with the given literal text.
func NewOwnedNumber(text string) OwnedNumber { return OwnedNumber{text: text} }

// OwnedNumberFromBytes returns an OwnedNumber with a copy of text.
func OwnedNumberFromBytes(text []byte) OwnedNumber { return OwnedNumber{text: string(text)} }

// Bytes returns a read-only view of the literal text of n.
func (n OwnedNumber) Bytes() mem.RO { return mem.S(n.text) }

// Text returns the literal text of n.
func (n OwnedNumber) Text() string { return n.text }

// Parse interprets the text of n as a JSON number.
func (n OwnedNumber) Parse() (StaticNode, error) { return parseNumber(mem.S(n.text), true) }

// Format returns the JSON text of the parsed value of n. It reports an error if
// n does not parse.
func (n OwnedNumber) Format() (string, error) { return formatNumber(mem.S(n.text)) }

// String returns the JSON text of the parsed value of n, or "" if n does not
// parse.
func (n OwnedNumber) String() string { s, _ := n.Format(); return s }

// MarshalText implements the encoding.TextMarshaler interface.
func (n OwnedNumber) MarshalText() ([]byte, error) {
	s, err := n.Format()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Borrow returns a BorrowedNumber viewing the text of n.
func (n OwnedNumber) Borrow() BorrowedNumber { return BorrowedNumber{text: mem.S(n.text)} }

// Equal reports whether n and o parse to equal values.
func (n OwnedNumber) Equal(o OwnedNumber) bool { return equalText(mem.S(n.text), mem.S(o.text)) }

// EqualBorrowed reports whether n and o parse to equal values.
func (n OwnedNumber) EqualBorrowed(o BorrowedNumber) bool { return equalText(mem.S(n.text), o.text) }

// EqualStatic reports whether n parses to a value equal to s.
func (n OwnedNumber) EqualStatic(s StaticNode) bool { return equalStatic(mem.S(n.text), s) }

// SameText reports whether n and o have identical literal text.
func (n OwnedNumber) SameText(o OwnedNumber) bool { return n.text == o.text }

// SameTextBorrowed reports whether n and o have identical literal text.
func (n OwnedNumber) SameTextBorrowed(o BorrowedNumber) bool { return o.text.EqualString(n.text) }

// ParseNumber parses text as a JSON number. Integers are given the narrowest
// type that holds them: U64 or U128 if non-negative, otherwise I64 or I128.
// Numbers with a fraction or exponent are F64.
func ParseNumber(text []byte) (StaticNode, error) { return parseNumber(mem.B(text), true) }

// parseNumber parses text as a JSON number. If wide is false, integers that do
// not fit in 64 bits are reported as errors.
func parseNumber(text mem.RO, wide bool) (StaticNode, error) {
	n, isFloat, err := scan.NumberLen(text)
	if err != nil {
		return Null, numberError(text, err.Error())
	} else if n != text.Len() {
		return Null, numberError(text, "extra text after number")
	}

	if isFloat {
		f, err := mem.ParseFloat(text, 64)
		if err != nil {
			return Null, numberError(text, "value out of range")
		}
		return F64(f), nil
	}
	if text.At(0) == '-' {
		if v, err := mem.ParseInt(text, 10, 64); err == nil {
			return I64(v), nil
		} else if wide {
			if mag, ok := parseUint128(text.SliceFrom(1)); ok {
				if v, ok := mag.negate(); ok {
					return I128(v), nil
				}
			}
		}
	} else if v, err := mem.ParseUint(text, 10, 64); err == nil {
		return U64(v), nil
	} else if wide {
		if v, ok := parseUint128(text); ok {
			return U128(v), nil
		}
	}
	return Null, numberError(text, "integer out of range")
}

func numberError(text mem.RO, msg string) *Error {
	const maxShown = 32
	shown := text.StringCopy()
	if len(shown) > maxShown {
		shown = shown[:maxShown] + "..."
	}
	return &Error{Type: Syntax, Index: -1, Message: fmt.Sprintf("invalid number %q: %s", shown, msg)}
}

func formatNumber(text mem.RO) (string, error) {
	v, err := parseNumber(text, true)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func equalText(a, b mem.RO) bool {
	av, err := parseNumber(a, true)
	if err != nil {
		return false
	}
	bv, err := parseNumber(b, true)
	return err == nil && av.Equal(bv)
}

func equalStatic(a mem.RO, s StaticNode) bool {
	av, err := parseNumber(a, true)
	return err == nil && av.Equal(s)
}
