// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtape

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/creachadair/jtape/internal/escape"
	"github.com/creachadair/jtape/internal/scan"
	"go4.org/mem"
)

// A Builder constructs a Tape from JSON text held in memory.
// The zero value is ready for use and accepts strict JSON.
type Builder struct {
	comments bool // allow comments
	tcomma   bool // allow trailing commas in objects and arrays
	lazy     bool // record numbers as unparsed literals
	wide     bool // allow 128-bit integers

	s     *scan.Scanner
	nodes []Node
}

// NewBuilder constructs a new Builder with default options.
func NewBuilder() *Builder { return new(Builder) }

// AllowComments configures the builder to skip (true) or reject (false)
// comments in the input. Comments are a non-standard extension of JSON.
func (b *Builder) AllowComments(ok bool) *Builder { b.comments = ok; return b }

// AllowTrailingCommas configures the builder to allow (true) or reject (false)
// trailing commas in objects and arrays.
func (b *Builder) AllowTrailingCommas(ok bool) *Builder { b.tcomma = ok; return b }

// LazyNumbers configures the builder to record numbers as NodeNumber nodes
// holding the unparsed literal (true), or to parse them into NodeStatic nodes
// during the build (false). A lazy literal is checked against the number
// grammar but not interpreted, so range errors are deferred until it is
// parsed.
func (b *Builder) LazyNumbers(ok bool) *Builder { b.lazy = ok; return b }

// AllowWideIntegers configures the builder to parse integers outside the
// 64-bit range as 128-bit values (true), or to reject them (false). It has no
// effect on lazy numbers, which always permit 128-bit values when parsed.
func (b *Builder) AllowWideIntegers(ok bool) *Builder { b.wide = ok; return b }

// Build constructs a tape for the single JSON value in buf. The input must
// contain exactly one value, optionally surrounded by whitespace.
//
// Build unescapes strings in place, so the contents of buf are modified. The
// String and NodeNumber nodes of the resulting tape are views of buf, which
// the caller must not modify or release while the tape is in use.
//
// Errors have concrete type [*Error], with type Syntax, UnexpectedEnd, or
// TrailingData.
func (b *Builder) Build(buf []byte) (_ *Tape, err error) {
	defer b.recoverParseError(&err)

	b.s = scan.New(buf)
	b.s.AllowComments(b.comments)
	b.nodes = nil
	defer func() { b.s = nil; b.nodes = nil }()

	b.advance()
	b.parseElement()
	if err := b.nextToken(); err == nil {
		b.syntaxError(TrailingData, nil, "unexpected %v after value", b.s.Token())
	} else if err != io.EOF {
		b.syntaxError(Syntax, err, "%v", err)
	}
	return &Tape{nodes: b.nodes}, nil
}

// FromSlice builds a tape from buf with default options.
// See [Builder.Build] for the ownership rules for buf.
func FromSlice(buf []byte) (*Tape, error) { return NewBuilder().Build(buf) }

// FromString builds a tape from a copy of s with default options.
func FromString(s string) (*Tape, error) { return FromSlice([]byte(s)) }

// FromReader reads r to completion and builds a tape from the result with
// default options. A failure reading r is reported as an IO error.
func FromReader(r io.Reader) (*Tape, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Type: IO, Index: -1, Message: err.Error(), err: err}
	}
	return FromSlice(buf)
}

func (b *Builder) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		if err, ok := perr.(*Error); ok {
			*errp = err
			return
		}
		panic(perr)
	}
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (b *Builder) parseElement() {
	switch tok := b.s.Token(); tok {
	case scan.LBrace:
		i := b.push(Node{Kind: NodeObject})
		b.nodes[i].Len = b.parseMembers()
		b.nodes[i].End = len(b.nodes)
	case scan.LSquare:
		i := b.push(Node{Kind: NodeArray})
		b.nodes[i].Len = b.parseElements()
		b.nodes[i].End = len(b.nodes)
	case scan.String:
		b.pushString()
	case scan.Integer, scan.Number:
		b.pushNumber()
	case scan.True:
		b.pushStatic(Bool(true))
	case scan.False:
		b.pushStatic(Bool(false))
	case scan.Null:
		b.pushStatic(Null)
	case scan.RBrace, scan.RSquare, scan.Comma, scan.Colon:
		b.syntaxError(Syntax, nil, "unexpected %v", tok)
	default:
		b.syntaxError(Syntax, nil, "unknown token %v", tok)
	}
}

// parseMembers consumes zero or more key:value object members, and returns
// the number of members consumed.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (b *Builder) parseMembers() int {
	tok := b.advance(scan.RBrace, scan.String)
	if tok == scan.RBrace {
		return 0 // end of object
	}
	var n int
	for {
		// Parse a single member: "key": value
		b.pushString()
		b.advance(scan.Colon)
		b.advance()
		b.parseElement()
		n++

		// Check whether we have more members (",") or are done ("}").
		if tok := b.advance(scan.RBrace, scan.Comma); tok == scan.RBrace {
			return n // end of object
		} else if b.tcomma {
			if next := b.advance(scan.String, scan.RBrace); next == scan.RBrace {
				return n // end of object with trailing comma
			}
		} else {
			b.advance(scan.String) // advance to next key
		}
	}
}

// parseElements consumes zero or more comma-separated array values, and
// returns the number of values consumed.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (b *Builder) parseElements() int {
	if tok := b.advance(); tok == scan.RSquare {
		return 0 // end of array
	}
	b.parseElement()
	n := 1
	for {
		if tok := b.advance(scan.RSquare, scan.Comma); tok == scan.RSquare {
			return n // end of array
		}
		if next := b.advance(); b.tcomma && next == scan.RSquare {
			return n // end of array with trailing comma
		}
		b.parseElement()
		n++
	}
}

func (b *Builder) push(n Node) int {
	i := len(b.nodes)
	n.End = i + 1
	b.nodes = append(b.nodes, n)
	return i
}

func (b *Builder) pushStatic(v StaticNode) { b.push(Node{Kind: NodeStatic, Static: v}) }

// pushString adds a node for the current string token, decoding escapes in
// place within the input buffer.
func (b *Builder) pushString() {
	text := b.s.Text()
	text = text[1 : len(text)-1] // remove quotes
	if b.s.Escaped() {
		n, err := escape.UnquoteInPlace(text)
		if err != nil {
			b.syntaxError(Syntax, err, "invalid string: %v", err)
		}
		text = text[:n]
	}
	b.push(Node{Kind: NodeString, Text: mem.B(text)})
}

func (b *Builder) pushNumber() {
	text := mem.B(b.s.Text())
	if b.lazy {
		b.push(Node{Kind: NodeNumber, Text: text})
		return
	}
	v, err := parseNumber(text, b.wide)
	if err != nil {
		b.syntaxError(Syntax, err, "%s", err.(*Error).Message)
	}
	b.pushStatic(v)
}

// nextToken advances to the next non-comment token.
func (b *Builder) nextToken() error {
	for {
		if err := b.s.Next(); err != nil {
			return err
		}
		if tok := b.s.Token(); tok != scan.LineComment && tok != scan.BlockComment {
			return nil
		}
	}
}

// advance advances to the next token, which must be one of tokens if any are
// given, and returns its type.
func (b *Builder) advance(tokens ...scan.Token) scan.Token {
	if err := b.nextToken(); err == io.EOF {
		b.syntaxError(UnexpectedEnd, nil, "%v", tokLabel(tokens, "EOF"))
	} else if err != nil {
		b.syntaxError(Syntax, err, "%v", err)
	}
	tok := b.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		b.syntaxError(Syntax, nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (b *Builder) syntaxError(etype ErrorType, err error, msg string, args ...any) {
	loc := b.s.Location()
	var serr *scan.SyntaxError
	if errors.As(err, &serr) {
		loc = serr.Location()
	}
	panic(&Error{
		Type:     etype,
		Message:  fmt.Sprintf(msg, args...),
		Index:    -1,
		Location: &loc,
		err:      err,
	})
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []scan.Token, got any) string {
	var exp string
	switch len(tokens) {
	case 0:
		exp = "value"
	case 1:
		exp = tokens[0].String()
	default:
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
