// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape

import (
	"fmt"
	"strings"
)

// ErrorType classifies the errors reported by this package. An ErrorType is
// itself an error, so callers may write:
//
//	if errors.Is(err, jtape.ExpectedUnsigned) { ... }
type ErrorType byte

// Constants defining the valid ErrorType values.
const (
	Syntax           ErrorType = iota + 1 // malformed input or number literal
	UnexpectedEnd                         // input or tape ended early
	TrailingData                          // input or tape has unconsumed data
	ExpectedUnsigned                      // wanted an unsigned integer in range
	ExpectedSigned                        // wanted a signed integer in range
	ExpectedFloat                         // wanted a number
	ExpectedBool                          // wanted true or false
	ExpectedString                        // wanted a string
	ExpectedNull                          // wanted null
	ExpectedArray                         // wanted an array
	ExpectedObject                        // wanted an object
	IO                                    // reading input failed
)

var errorStr = [...]string{
	Syntax:           "syntax error",
	UnexpectedEnd:    "unexpected end of input",
	TrailingData:     "trailing data",
	ExpectedUnsigned: "expected unsigned integer",
	ExpectedSigned:   "expected signed integer",
	ExpectedFloat:    "expected float",
	ExpectedBool:     "expected bool",
	ExpectedString:   "expected string",
	ExpectedNull:     "expected null",
	ExpectedArray:    "expected array",
	ExpectedObject:   "expected object",
	IO:               "I/O error",
}

// Error satisfies the error interface.
func (e ErrorType) Error() string {
	if e == 0 || int(e) >= len(errorStr) {
		return "unknown error"
	}
	return errorStr[e]
}

// Error is the concrete type of errors reported by this package.
type Error struct {
	Type    ErrorType
	Message string // optional detail

	// Index is the tape index of the node where the error was detected, or -1
	// if the error did not arise from a tape.
	Index int

	// Location, if not nil, is the input location where a syntax error was
	// detected.
	Location *Location

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Location != nil {
		fmt.Fprintf(&sb, "at %s: ", e.Location.First)
	} else if e.Index >= 0 {
		fmt.Fprintf(&sb, "at index %d: ", e.Index)
	}
	sb.WriteString(e.Type.Error())
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the ErrorType of e.
func (e *Error) Is(target error) bool {
	t, ok := target.(ErrorType)
	return ok && t == e.Type
}

func indexError(etype ErrorType, idx int, msg string, args ...any) *Error {
	return &Error{Type: etype, Index: idx, Message: fmt.Sprintf(msg, args...)}
}
