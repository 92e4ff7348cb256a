// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package interop converts between jtape value trees and the generic JSON
// values of the github.com/tailscale/hujson package.
//
// A hujson value can represent integers of any size, but this package only
// produces and accepts numbers representable as int64, uint64, or finite
// float64 values. Conversion failures are reported as errors wrapping one of
// the ConversionError values, so callers can classify them with errors.Is:
//
//	if errors.Is(err, interop.NonFinite) { ... }
package interop

import (
	"fmt"
	"math"
	"strings"

	"github.com/creachadair/jtape"
	"github.com/creachadair/jtape/value/borrowed"
	"github.com/creachadair/jtape/value/owned"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// ConversionError is the type of errors reported by conversion.
type ConversionError byte

const (
	NonFinite      ConversionError = iota + 1 // NaN or infinite float
	OutOfBounds                               // integer does not fit in 64 bits
	InternalDefect                            // value violates the hujson contract
)

var errText = [...]string{
	NonFinite:      "non-finite float",
	OutOfBounds:    "integer out of bounds",
	InternalDefect: "internal defect",
}

func (c ConversionError) Error() string {
	if int(c) < len(errText) && errText[c] != "" {
		return errText[c]
	}
	return fmt.Sprintf("conversion error %d", byte(c))
}

// Export converts v into an equivalent hujson value. Objects and arrays
// preserve the order of their members and elements.
//
// Export fails with NonFinite if v contains a NaN or infinite float, and with
// OutOfBounds if v contains a 128-bit integer that does not fit in an int64 or
// a uint64. A number literal that does not parse reports its parse error.
func Export(v owned.Value) (hujson.Value, error) {
	switch t := v.(type) {
	case owned.Static:
		return exportStatic(t.StaticNode)
	case owned.Number:
		return exportNumber(t.Parse())
	case owned.String:
		return exportString(string(t)), nil
	case owned.Array:
		elts := make([]hujson.Value, len(t))
		for i, e := range t {
			ev, err := Export(e)
			if err != nil {
				return hujson.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elts[i] = ev
		}
		return hujson.Value{Value: &hujson.Array{Elements: elts}}, nil
	case owned.Object:
		mems := make([]hujson.ObjectMember, len(t))
		for i, m := range t {
			mv, err := Export(m.Value)
			if err != nil {
				return hujson.Value{}, fmt.Errorf("key %q: %w", m.Key, err)
			}
			mems[i] = hujson.ObjectMember{Name: exportString(m.Key), Value: mv}
		}
		return hujson.Value{Value: &hujson.Object{Members: mems}}, nil
	}
	return hujson.Value{}, fmt.Errorf("%w: unknown value type %T", InternalDefect, v)
}

// ExportBorrowed converts v into an equivalent hujson value, as Export.
// The result does not share storage with v.
func ExportBorrowed(v borrowed.Value) (hujson.Value, error) {
	switch t := v.(type) {
	case borrowed.Static:
		return exportStatic(t.StaticNode)
	case borrowed.Number:
		return exportNumber(t.Parse())
	case borrowed.String:
		return exportString(t.StringCopy()), nil
	case borrowed.Array:
		elts := make([]hujson.Value, len(t))
		for i, e := range t {
			ev, err := ExportBorrowed(e)
			if err != nil {
				return hujson.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elts[i] = ev
		}
		return hujson.Value{Value: &hujson.Array{Elements: elts}}, nil
	case borrowed.Object:
		mems := make([]hujson.ObjectMember, len(t))
		for i, m := range t {
			key := m.Key.StringCopy()
			mv, err := ExportBorrowed(m.Value)
			if err != nil {
				return hujson.Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			mems[i] = hujson.ObjectMember{Name: exportString(key), Value: mv}
		}
		return hujson.Value{Value: &hujson.Object{Members: mems}}, nil
	}
	return hujson.Value{}, fmt.Errorf("%w: unknown value type %T", InternalDefect, v)
}

func exportNumber(s jtape.StaticNode, err error) (hujson.Value, error) {
	if err != nil {
		return hujson.Value{}, err
	}
	return exportStatic(s)
}

func exportStatic(s jtape.StaticNode) (hujson.Value, error) {
	switch s.Type() {
	case jtape.TypeNull, jtape.TypeBool, jtape.TypeI64, jtape.TypeU64:
		// OK
	case jtape.TypeI128, jtape.TypeU128:
		if z, ok := s.AsI64(); ok {
			s = jtape.I64(z)
		} else if z, ok := s.AsU64(); ok {
			s = jtape.U64(z)
		} else {
			return hujson.Value{}, fmt.Errorf("%w: %v", OutOfBounds, s)
		}
	case jtape.TypeF64:
		f, _ := s.AsF64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return hujson.Value{}, fmt.Errorf("%w: %v", NonFinite, s)
		}
		text := s.String()
		if !strings.ContainsAny(text, ".eE") {
			text += ".0" // keep integral floats distinct from integers
		}
		return hujson.Value{Value: hujson.Literal(text)}, nil
	default:
		return hujson.Value{}, fmt.Errorf("%w: unknown static type %v", InternalDefect, s.Type())
	}
	return hujson.Value{Value: hujson.Literal(s.String())}, nil
}

func exportString(s string) hujson.Value { return hujson.Value{Value: hujson.Literal(jtape.Quote(s))} }

// Import converts v into an equivalent owned value. Objects and arrays
// preserve the order of their members and elements. If an object has
// duplicate keys, the last value for the key replaces the earlier ones at the
// position of the first. Comments and whitespace in v are discarded.
//
// Numbers are converted to the first of int64, uint64, or float64 that can
// represent them. Import fails with InternalDefect if v contains a literal that
// is not valid JSON, or a number that is not representable in any of those
// types.
func Import(v hujson.Value) (owned.Value, error) {
	switch t := v.Value.(type) {
	case hujson.Literal:
		return importLiteral(t)
	case *hujson.Array:
		arr := make(owned.Array, len(t.Elements))
		for i, e := range t.Elements {
			ev, err := Import(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr[i] = ev
		}
		return arr, nil
	case *hujson.Object:
		obj := make(owned.Object, 0, len(t.Members))
		index := make(map[string]*owned.Member, len(t.Members))
		for _, m := range t.Members {
			name, ok := m.Name.Value.(hujson.Literal)
			if !ok || name.Kind() != '"' {
				return nil, fmt.Errorf("%w: invalid member name", InternalDefect)
			}
			key, err := jtape.Unquote(name)
			if err != nil {
				return nil, fmt.Errorf("%w: member name: %v", InternalDefect, err)
			}
			mv, err := Import(m.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			if old, ok := index[string(key)]; ok {
				old.Value = mv
				continue
			}
			om := &owned.Member{Key: string(key), Value: mv}
			obj = append(obj, om)
			index[om.Key] = om
		}
		return obj, nil
	}
	return nil, fmt.Errorf("%w: unknown value type %T", InternalDefect, v.Value)
}

func importLiteral(lit hujson.Literal) (owned.Value, error) {
	switch lit.Kind() {
	case 'n':
		return owned.Null(), nil
	case 't':
		return owned.Bool(true), nil
	case 'f':
		return owned.Bool(false), nil
	case '"':
		s, err := jtape.Unquote(lit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", InternalDefect, err)
		}
		return owned.String(s), nil
	case '0':
		return importNumber(mem.B(lit))
	}
	return nil, fmt.Errorf("%w: invalid literal %q", InternalDefect, lit)
}

func importNumber(text mem.RO) (owned.Value, error) {
	if z, err := mem.ParseInt(text, 10, 64); err == nil {
		return owned.Int(z), nil
	}
	if z, err := mem.ParseUint(text, 10, 64); err == nil {
		return owned.Uint(z), nil
	}
	if f, err := mem.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) {
		return owned.Float(f), nil
	}
	return nil, fmt.Errorf("%w: number %q has no 64-bit representation", InternalDefect, text.StringCopy())
}

// ImportBytes parses data as a hujson value, which may include comments and
// trailing commas, and converts the result as Import.
func ImportBytes(data []byte) (owned.Value, error) {
	v, err := hujson.Parse(data)
	if err != nil {
		return nil, err
	}
	return Import(v)
}
