// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package scan_test

import (
	"errors"
	"io"
	"testing"

	"github.com/creachadair/jtape/internal/scan"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []scan.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []scan.Token{scan.True, scan.False, scan.Null}},

		// Punctuation
		{"{ [ ] } , :", []scan.Token{
			scan.LBrace, scan.LSquare, scan.RSquare, scan.RBrace, scan.Comma, scan.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []scan.Token{scan.String, scan.String, scan.String}},
		{`"\"\\\/\b\f\n\r\t"`, []scan.Token{scan.String}},
		{`"\u0000\u01fc\uAA9c"`, []scan.Token{scan.String}},
		{`"héllo, 世界"`, []scan.Token{scan.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []scan.Token{
			scan.Integer, scan.Integer, scan.Integer,
			scan.Number, scan.Number, scan.Number, scan.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []scan.Token{
			scan.LBrace, scan.True, scan.Comma, scan.String, scan.Colon,
			scan.Integer, scan.Null, scan.LSquare, scan.RSquare, scan.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []scan.Token{
			scan.LBrace,
			scan.String, scan.Colon, scan.True, scan.Comma,
			scan.String, scan.Colon,
			scan.LSquare,
			scan.Null, scan.Comma, scan.Integer, scan.Comma, scan.Number,
			scan.RSquare,
			scan.RBrace,
		}},
	}

	for _, test := range tests {
		var got []scan.Token
		s := scan.New([]byte(test.input))
		for s.Next() == nil {
			got = append(got, s.Token())
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_withComments(t *testing.T) {
	tests := []struct {
		input string
		want  []scan.Token
		coms  []string
	}{
		{"/* block comment */\n\n\n", []scan.Token{scan.BlockComment},
			[]string{"/* block comment */"}},
		{"// line 1\n\n// line 2\n", []scan.Token{scan.LineComment, scan.LineComment},
			[]string{"// line 1\n", "// line 2\n"}}, // N.B. includes terminating newline, if present
		{"// line at EOF", []scan.Token{scan.LineComment},
			[]string{"// line at EOF"}},
		{`{
 "x": 1, // howdy do
 "y" /* hide me */ : 2.0 }`, []scan.Token{
			scan.LBrace, scan.String, scan.Colon, scan.Integer, scan.Comma, scan.LineComment,
			scan.String, scan.BlockComment, scan.Colon, scan.Number, scan.RBrace,
		}, []string{
			"// howdy do\n", "/* hide me */",
		}},
		{"/**\n*/", []scan.Token{scan.BlockComment}, []string{"/**\n*/"}},
		{`/**/"foo"/***/false`, []scan.Token{
			scan.BlockComment, scan.String, scan.BlockComment, scan.False,
		}, []string{"/**/", "/***/"}},
	}

	for _, test := range tests {
		var got []scan.Token
		var coms []string
		s := scan.New([]byte(test.input))
		s.AllowComments(true)
		for s.Next() == nil {
			got = append(got, s.Token())
			if tok := s.Token(); tok == scan.LineComment || tok == scan.BlockComment {
				coms = append(coms, string(s.Text()))
			}
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input: %#q\nComments: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []string{
		`"unterminated`,
		`"bad \q escape"`,
		`"short \u12"`,
		`"bad \u12x4 hex"`,
		"\"control \x01\"",
		"\"invalid \xff utf8\"",
		`01`,
		`-`,
		`1.`,
		`1e`,
		`1e+`,
		`nul`,
		`trueish`,
		`@`,
		`/* comments disabled */`,
	}
	for _, input := range tests {
		s := scan.New([]byte(input))
		var err error
		for err == nil {
			err = s.Next()
		}
		if err == io.EOF {
			t.Errorf("Input %#q: got EOF, want error", input)
		} else {
			t.Logf("Input %#q: got expected error: %v", input, err)
		}
	}
}

func TestSyntaxErrorLocation(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		at     scan.LineCol
	}{
		{`"unterminated`, 13, scan.LineCol{Line: 1, Column: 13}},
		{`"bad \q escape"`, 5, scan.LineCol{Line: 1, Column: 5}},
		{"\"invalid \xff utf8\"", 9, scan.LineCol{Line: 1, Column: 9}},
		{"[\n 01]", 4, scan.LineCol{Line: 2, Column: 2}},
		{`@`, 0, scan.LineCol{Line: 1, Column: 0}},
	}
	for _, tc := range tests {
		s := scan.New([]byte(tc.input))
		var err error
		for err == nil {
			err = s.Next()
		}
		var serr *scan.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input %#q: got %v, want *SyntaxError", tc.input, err)
			continue
		}
		if serr.Offset != tc.offset || serr.At != tc.at {
			t.Errorf("Input %#q: got offset %d at %v, want %d at %v", tc.input, serr.Offset, serr.At, tc.offset, tc.at)
		}
		loc := serr.Location()
		if loc.Pos != tc.offset || loc.First != tc.at || loc.Last != tc.at {
			t.Errorf("Input %#q: location is %+v", tc.input, loc)
		}
	}
}

func TestScannerText(t *testing.T) {
	buf := []byte(` ["a\tb", -12.5e3, true] `)
	s := scan.New(buf)

	var got []string
	for s.Next() == nil {
		got = append(got, string(s.Text()))
		if s.Token() == scan.String && !s.Escaped() {
			t.Errorf("Token %#q should report escapes", s.Text())
		}
	}
	want := []string{"[", `"a\tb"`, ",", "-12.5e3", ",", "true", "]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Text (-want, +got):\n%s", diff)
	}

	// The text of a token is a view of the input, not a copy.
	s = scan.New(buf)
	s.Next()
	s.Next()
	if text := s.Text(); &text[0] != &buf[2] {
		t.Error("Text does not alias the input buffer")
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok scan.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{scan.LBrace, "1:0-1"}, {scan.RBrace, "1:2-3"}}},
		{`"foo" // bar`, []tokPos{{scan.String, "1:0-5"}, {scan.LineComment, "1:6-12"}}},
		{"/* ok */\ntrue\n false\n", []tokPos{{scan.BlockComment, "1:0-8"}, {scan.True, "2:0-4"}, {scan.False, "3:1-6"}}},
		{"/* ok\n*/\n null", []tokPos{{scan.BlockComment, "1:0-2:2"}, {scan.Null, "3:1-5"}}},
		{"// first\n[1, /*x*/, 2\n]", []tokPos{
			{scan.LineComment, "1:0-2:0"}, {scan.LSquare, "2:0-1"}, {scan.Integer, "2:1-2"},
			{scan.Comma, "2:2-3"}, {scan.BlockComment, "2:4-9"}, {scan.Comma, "2:9-10"},
			{scan.Integer, "2:11-12"}, {scan.RSquare, "3:0-1"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := scan.New([]byte(tc.input))
		s.AllowComments(true)
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestNumberLen(t *testing.T) {
	tests := []struct {
		input   string
		n       int
		isFloat bool
		fail    bool
	}{
		{"0", 1, false, false},
		{"-0", 2, false, false},
		{"123,", 3, false, false},
		{"-1.5]", 4, true, false},
		{"1e10", 4, true, false},
		{"2E-3 ", 4, true, false},
		{"0.000", 5, true, false},
		{"", 0, false, true},
		{"-", 1, false, true},
		{"+1", 0, false, true},
		{"00", 1, false, true},
		{".5", 0, false, true},
		{"1.e5", 2, false, true},
		{"1e+", 3, false, true},
	}
	for _, tc := range tests {
		n, isFloat, err := scan.NumberLen(mem.S(tc.input))
		if (err != nil) != tc.fail {
			t.Errorf("NumberLen(%q): got err=%v, want fail=%v", tc.input, err, tc.fail)
			continue
		}
		if n != tc.n || (!tc.fail && isFloat != tc.isFloat) {
			t.Errorf("NumberLen(%q): got (%d, %v), want (%d, %v)", tc.input, n, isFloat, tc.n, tc.isFloat)
		}
	}
}
