// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package scan implements a lexical scanner for JSON text held in memory.
//
// Unlike a stream scanner, a Scanner never copies its input: the text of each
// token is a view of the buffer it was constructed from.
package scan

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from an input buffer. Each call to Next
// advances the scanner to the next token, or reports an error.
type Scanner struct {
	buf      []byte
	comments bool // allow comments
	tok      Token
	esc      bool // the current string token contains escapes
	err      error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// New constructs a new lexical scanner that consumes input from buf.
// The scanner does not modify buf.
func New(buf []byte) *Scanner { return &Scanner{buf: buf} }

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are a non-standard extension of JSON.  If
// enabled, C++ style block comments (/* ... */) and line comments (// ...)
// are recognized and emitted as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid
	s.esc = false

	// Discard whitespace.
	for s.end < len(s.buf) && isSpace(s.buf[s.end]) {
		s.advance(1)
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.end >= len(s.buf) {
		return s.setErr(io.EOF)
	}

	ch := s.buf[s.end]

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		s.advance(1)
		s.tok = t
		return nil
	}

	switch {
	case isNumStart(ch):
		return s.scanNumber()
	case ch == '"':
		return s.scanString()
	case ch == '/' && s.comments:
		return s.scanComment()
	case ch == 't':
		return s.scanName(True, "true")
	case ch == 'f':
		return s.scanName(False, "false")
	case ch == 'n':
		return s.scanName(Null, "null")
	}
	return s.failf("unexpected %q", ch)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The result is a view
// of the input buffer; it is not copied.
func (s *Scanner) Text() []byte { return s.buf[s.pos:s.end:s.end] }

// Escaped reports whether the current token is a string containing at least
// one escape sequence.
func (s *Scanner) Escaped() bool { return s.esc }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Offset returns the offset of the first unconsumed byte of input.
func (s *Scanner) Offset() int { return s.end }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) scanString() error {
	i := s.end + 1
	for i < len(s.buf) {
		ch := s.buf[i]
		switch {
		case ch == '"':
			s.advance(i + 1 - s.end)
			s.tok = String
			return nil
		case ch == '\\':
			n, err := escapeLen(s.buf[i:])
			if err != nil {
				s.advance(i - s.end)
				return s.fail(err)
			}
			s.esc = true
			i += n
		case ch < ' ':
			s.advance(i - s.end)
			return s.failf("unescaped control %q", ch)
		case ch < utf8.RuneSelf:
			i++
		default:
			r, n := utf8.DecodeRune(s.buf[i:])
			if r == utf8.RuneError && n <= 1 {
				s.advance(i - s.end)
				return s.failf("invalid UTF-8")
			}
			i += n
		}
	}
	s.advance(i - s.end)
	return s.failf("unterminated string")
}

// escapeLen reports the length of the escape sequence at the start of buf,
// which must begin with a backslash.
func escapeLen(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, errors.New("incomplete escape sequence")
	}
	switch buf[1] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return 2, nil
	case 'u':
		if len(buf) < 6 {
			return 0, errors.New("incomplete Unicode escape")
		}
		for _, b := range buf[2:6] {
			if !isHexDigit(b) {
				return 0, fmt.Errorf("invalid Unicode escape: not a hex digit: %q", b)
			}
		}
		return 6, nil
	default:
		return 0, fmt.Errorf("invalid %q after escape", buf[1])
	}
}

func (s *Scanner) scanNumber() error {
	n, isFloat, err := NumberLen(mem.B(s.buf[s.end:]))
	s.advance(n)
	if err != nil {
		return s.fail(err)
	}
	if isFloat {
		s.tok = Number
	} else {
		s.tok = Integer
	}
	return nil
}

// NumberLen reports the length in bytes of the JSON number at the start of
// buf, and whether it has a fraction or an exponent. If buf does not begin
// with a well-formed number, NumberLen reports an error along with the offset
// where the problem was found.
//
// The grammar is: -? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE] [+-]? [0-9]+)?
func NumberLen(buf mem.RO) (int, bool, error) {
	i, n := 0, buf.Len()
	if i < n && buf.At(i) == '-' {
		i++ // If there is a leading sign, we need at least one digit.
	}
	if i >= n || !isDigit(buf.At(i)) {
		return i, false, errors.New("missing digits")
	}

	// A leading zero is OK if it's the only digit: 0.12 is OK, 01.2 is not.
	if buf.At(i) == '0' {
		i++
		if i < n && isDigit(buf.At(i)) {
			return i, false, errors.New("extra leading zeroes")
		}
	} else {
		i = skipDigits(buf, i)
	}

	var isFloat bool
	if i < n && buf.At(i) == '.' {
		j := skipDigits(buf, i+1)
		if j == i+1 {
			return j, false, errors.New("no digits after decimal point")
		}
		i, isFloat = j, true
	}
	if i < n && (buf.At(i) == 'e' || buf.At(i) == 'E') {
		i++
		if i < n && (buf.At(i) == '+' || buf.At(i) == '-') {
			i++
		}
		j := skipDigits(buf, i)
		if j == i {
			return j, false, errors.New("missing exponent digits")
		}
		i, isFloat = j, true
	}
	return i, isFloat, nil
}

// skipDigits returns the offset of the first non-digit in buf at or after i.
func skipDigits(buf mem.RO, i int) int {
	for i < buf.Len() && isDigit(buf.At(i)) {
		i++
	}
	return i
}

func (s *Scanner) scanComment() error {
	rest := s.buf[s.end:]
	if len(rest) < 2 {
		s.advance(len(rest))
		return s.failf("incomplete comment")
	}
	switch rest[1] {
	case '/': // line comment to LF
		if i := mem.IndexByte(mem.B(rest), '\n'); i >= 0 {
			s.advance(i + 1)
		} else {
			s.advance(len(rest))
		}
		s.tok = LineComment
		return nil

	case '*': // block comment
		i := mem.Index(mem.B(rest[2:]), mem.S("*/"))
		if i < 0 {
			s.advance(len(rest))
			return s.failf("unterminated block comment")
		}
		s.advance(i + 4)
		s.tok = BlockComment
		return nil

	default:
		s.advance(1)
		return s.failf("invalid %q in comment", rest[1])
	}
}

func (s *Scanner) scanName(tok Token, want string) error {
	i := s.end
	for i < len(s.buf) && isNameByte(s.buf[i]) {
		i++
	}
	got := s.buf[s.end:i]
	s.advance(i - s.end)
	if string(got) != want {
		return s.failf("unknown constant %q", got)
	}
	s.tok = tok
	return nil
}

// advance consumes n bytes of input, updating the line and column offsets.
func (s *Scanner) advance(n int) {
	for _, b := range s.buf[s.end : s.end+n] {
		if b == '\n' {
			s.eline++
			s.ecol = 0
		} else {
			s.ecol++
		}
	}
	s.end += n
}

// A SyntaxError is the error reported by Next for malformed input. It records
// the position where scanning failed, which may be past the start of the
// current token.
type SyntaxError struct {
	Offset int     // byte offset of the failure, 0-based
	At     LineCol // line and column of the failure
	Err    error
}

func (e *SyntaxError) Error() string { return e.Err.Error() }

func (e *SyntaxError) Unwrap() error { return e.Err }

// Location returns a zero-width location at the failure point.
func (e *SyntaxError) Location() Location {
	return Location{Span: Span{Pos: e.Offset, End: e.Offset}, First: e.At, Last: e.At}
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(err error) error {
	return s.setErr(&SyntaxError{
		Offset: s.end,
		At:     LineCol{Line: s.eline + 1, Column: s.ecol},
		Err:    err,
	})
}

func (s *Scanner) failf(msg string, args ...any) error { return s.fail(fmt.Errorf(msg, args...)) }

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
