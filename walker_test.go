// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jtape"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

func mustBuild(t *testing.T, b *jtape.Builder, input string) *jtape.Tape {
	t.Helper()
	if b == nil {
		b = jtape.NewBuilder()
	}
	tape, err := b.Build([]byte(input))
	if err != nil {
		t.Fatalf("Build %#q failed: %v", input, err)
	}
	return tape
}

func TestWalkerBounds(t *testing.T) {
	tape := jtape.NewTape([]jtape.Node{{Kind: jtape.NodeStatic, Static: jtape.Null, End: 1}})
	w := jtape.NewWalker(tape)
	if w.Index() != -1 || w.Done() {
		t.Errorf("Initial walker: index %d, done %v", w.Index(), w.Done())
	}

	if n, err := w.Peek(); err != nil || n.Kind != jtape.NodeStatic {
		t.Errorf("Peek: got %v, %v; want null", n, err)
	}
	if w.Index() != -1 {
		t.Errorf("Peek moved the cursor to %d", w.Index())
	}

	n, err := w.Next()
	if err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	} else if n.Kind != jtape.NodeStatic || !n.Static.IsNull() {
		t.Errorf("Next: got %v, want null", n)
	}
	if !w.Done() {
		t.Error("Walker is not done after consuming the only node")
	}

	if _, err := w.Peek(); !errors.Is(err, jtape.UnexpectedEnd) {
		t.Errorf("Peek at end: got %v, want %v", err, jtape.UnexpectedEnd)
	}
	for range 2 {
		if _, err := w.Next(); !errors.Is(err, jtape.UnexpectedEnd) {
			t.Errorf("Next at end: got %v, want %v", err, jtape.UnexpectedEnd)
		}
	}

	w.Reset()
	if err := w.ParseNull(); err != nil {
		t.Errorf("ParseNull after Reset: unexpected error: %v", err)
	}
}

func TestWalkerRange(t *testing.T) {
	tape := jtape.NewTape([]jtape.Node{{Kind: jtape.NodeStatic, Static: jtape.I64(300), End: 1}})

	// The node is numeric, but out of range for a uint8.
	w := jtape.NewWalker(tape)
	if v, err := w.ParseU8(); !errors.Is(err, jtape.ExpectedUnsigned) {
		t.Errorf("ParseU8: got %v, %v; want %v", v, err, jtape.ExpectedUnsigned)
	} else {
		t.Logf("ParseU8: got expected error: %v", err)
	}

	w.Reset()
	if v, err := w.ParseU16(); err != nil || v != 300 {
		t.Errorf("ParseU16: got %v, %v; want 300", v, err)
	}
}

func TestWalkerParse(t *testing.T) {
	const input = `[
  0, 255, 256, -1, 127, -128, 128, -129,
  4294967295, -9223372036854775808, 18446744073709551615,
  340282366920938463463374607431768211455, -170141183460469231731687303715884105728,
  2.5, "str", true, null
]`

	// Each call consumes the node at the corresponding position.
	type call struct {
		name  string
		parse func(*jtape.Walker) (any, error)
		want  any
		etype jtape.ErrorType
	}
	u8 := func(w *jtape.Walker) (any, error) { return w.ParseU8() }
	u32 := func(w *jtape.Walker) (any, error) { return w.ParseU32() }
	u64 := func(w *jtape.Walker) (any, error) { return w.ParseU64() }
	u128 := func(w *jtape.Walker) (any, error) { return w.ParseU128() }
	i8 := func(w *jtape.Walker) (any, error) { return w.ParseI8() }
	i16 := func(w *jtape.Walker) (any, error) { return w.ParseI16() }
	i64 := func(w *jtape.Walker) (any, error) { return w.ParseI64() }
	i128 := func(w *jtape.Walker) (any, error) { return w.ParseI128() }
	f64 := func(w *jtape.Walker) (any, error) { return w.ParseDouble() }

	tests := []struct {
		call
		index int // index of the tape node, after the array
	}{
		{call{"u8 0", u8, uint8(0), 0}, 1},
		{call{"u8 255", u8, uint8(255), 0}, 2},
		{call{"u8 256", u8, nil, jtape.ExpectedUnsigned}, 3},
		{call{"u8 -1", u8, nil, jtape.ExpectedUnsigned}, 4},
		{call{"i8 127", i8, int8(127), 0}, 5},
		{call{"i8 -128", i8, int8(-128), 0}, 6},
		{call{"i8 128", i8, nil, jtape.ExpectedSigned}, 7},
		{call{"i16 -129", i16, int16(-129), 0}, 8},
		{call{"u32 max", u32, uint32(4294967295), 0}, 9},
		{call{"i64 min", i64, int64(-9223372036854775808), 0}, 10},
		{call{"u64 max", u64, uint64(18446744073709551615), 0}, 11},
		{call{"u128 max", u128, jtape.Uint128{Hi: 1<<64 - 1, Lo: 1<<64 - 1}, 0}, 12},
		{call{"i128 min", i128, jtape.Int128{Hi: -1 << 63}, 0}, 13},
		{call{"u64 float", u64, nil, jtape.ExpectedUnsigned}, 14},
		{call{"i64 string", i64, nil, jtape.ExpectedSigned}, 15},
		{call{"f64 bool", f64, nil, jtape.ExpectedFloat}, 16},
		{call{"f64 null", f64, nil, jtape.ExpectedFloat}, 17},
	}

	tape := mustBuild(t, jtape.NewBuilder().AllowWideIntegers(true), input)
	for _, tc := range tests {
		w := jtape.NewWalker(tape)
		if n, err := w.ParseArray(); err != nil || n != 17 {
			t.Fatalf("ParseArray: got %d, %v; want 17", n, err)
		}
		for range tc.index - 1 {
			if err := w.Skip(); err != nil {
				t.Fatalf("Skip: unexpected error: %v", err)
			}
		}

		got, err := tc.parse(w)
		if tc.etype != 0 {
			if !errors.Is(err, tc.etype) {
				t.Errorf("%s: got %v, %v; want %v", tc.name, got, err, tc.etype)
			}
			var jerr *jtape.Error
			if !errors.As(err, &jerr) || jerr.Index != tc.index {
				t.Errorf("%s: error %v does not report index %d", tc.name, err, tc.index)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		} else if got != tc.want {
			t.Errorf("%s: got %T %v, want %T %v", tc.name, got, got, tc.want, tc.want)
		}
	}
}

func TestWalkerDouble(t *testing.T) {
	tape := mustBuild(t, jtape.NewBuilder().LazyNumbers(true), `[3.5, -4, 18446744073709551615, 1e400]`)
	w := jtape.NewWalker(tape)
	if _, err := w.ParseArray(); err != nil {
		t.Fatalf("ParseArray: %v", err)
	}
	for _, want := range []float64{3.5, -4, 18446744073709551615} {
		if got, err := w.ParseDouble(); err != nil || got != want {
			t.Errorf("ParseDouble: got %v, %v; want %v", got, err, want)
		}
	}

	// A lazy literal that does not parse is a syntax error.
	if got, err := w.ParseDouble(); !errors.Is(err, jtape.Syntax) {
		t.Errorf("ParseDouble: got %v, %v; want %v", got, err, jtape.Syntax)
	}
}

func TestWalkerDocument(t *testing.T) {
	const input = `{"name": "a\"b", "vals": [1, -2, 3.5], "ok": true, "nil": null, "skip": [[1], {"x": 2}]}`

	type result struct {
		Name string
		Vals []float64
		OK   bool
		Keys []string
	}
	var got result
	tape := mustBuild(t, nil, input)
	w := jtape.NewWalker(tape)

	check := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("Walk failed at index %d: %v", w.Index(), err)
		}
	}
	key := func() string {
		t.Helper()
		k, err := w.ParseKey()
		check(err)
		got.Keys = append(got.Keys, k.StringCopy())
		return k.StringCopy()
	}

	n, err := w.ParseObject()
	check(err)
	for range n {
		switch key() {
		case "name":
			s, err := w.ParseString()
			check(err)
			got.Name = s.StringCopy()
		case "vals":
			m, err := w.ParseArray()
			check(err)
			for range m {
				f, err := w.ParseDouble()
				check(err)
				got.Vals = append(got.Vals, f)
			}
		case "ok":
			got.OK, err = w.ParseBool()
			check(err)
		case "nil":
			check(w.ParseNull())
		default:
			check(w.Skip())
		}
	}
	if !w.Done() {
		t.Errorf("Walk did not consume the tape: %d nodes remain", w.Remaining())
	}

	want := result{
		Name: `a"b`,
		Vals: []float64{1, -2, 3.5},
		OK:   true,
		Keys: []string{"name", "vals", "ok", "nil", "skip"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk result (-want, +got):\n%s", diff)
	}
}

func TestWalkerKindErrors(t *testing.T) {
	tape := mustBuild(t, nil, `[{}, [], "s", 1, true, null]`)
	tests := []struct {
		name  string
		parse func(*jtape.Walker) error
		etype jtape.ErrorType
	}{
		{"array", func(w *jtape.Walker) error { _, err := w.ParseArray(); return err }, jtape.ExpectedArray},
		{"object", func(w *jtape.Walker) error { _, err := w.ParseObject(); return err }, jtape.ExpectedObject},
		{"string", func(w *jtape.Walker) error { _, err := w.ParseString(); return err }, jtape.ExpectedString},
		{"bool", func(w *jtape.Walker) error { _, err := w.ParseBool(); return err }, jtape.ExpectedBool},
		{"null", func(w *jtape.Walker) error { return w.ParseNull() }, jtape.ExpectedNull},
	}
	for _, tc := range tests {
		// Each parse succeeds on exactly one of the elements. The containers
		// are empty, so a failed parse leaves the cursor on a whole element.
		w := jtape.NewWalker(tape)
		if _, err := w.ParseArray(); err != nil {
			t.Fatalf("ParseArray: %v", err)
		}
		var nok int
		for range 6 {
			err := tc.parse(w)
			if err == nil {
				nok++
			} else if !errors.Is(err, tc.etype) {
				t.Errorf("Parse %s: got %v, want %v", tc.name, err, tc.etype)
			}
		}
		if nok != 1 {
			t.Errorf("Parse %s: succeeded %d times, want 1", tc.name, nok)
		}
	}
}

func TestWalkerString(t *testing.T) {
	buf := []byte(`"hello"`)
	tape := mustBuild(t, nil, string(buf))
	s, err := jtape.NewWalker(tape).ParseString()
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if !s.Equal(mem.S("hello")) {
		t.Errorf("ParseString: got %q, want hello", s.StringCopy())
	}
}
