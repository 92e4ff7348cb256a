// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape

import (
	"fmt"
	"strings"

	"go4.org/mem"
)

// NodeKind identifies the kind of a tape Node.
type NodeKind byte

// Constants defining the valid NodeKind values.
const (
	NodeStatic NodeKind = iota // a scalar: null, bool, or parsed number
	NodeString                 // a string (keys and values)
	NodeNumber                 // an unparsed number literal
	NodeArray                  // the start of an array
	NodeObject                 // the start of an object
)

var kindStr = [...]string{
	NodeStatic: "static",
	NodeString: "string",
	NodeNumber: "number",
	NodeArray:  "array",
	NodeObject: "object",
}

func (k NodeKind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// A Node is a single slot of a Tape.
//
// A container node (NodeArray or NodeObject) is followed on the tape by its
// contents. The members of an object are laid out as a NodeString key
// followed by the nodes of the value.
type Node struct {
	Kind NodeKind

	// Static is the value of a NodeStatic node.
	Static StaticNode

	// Text is the decoded contents of a NodeString, or the literal text of a
	// NodeNumber. It is a view of the input buffer the tape was built from.
	Text mem.RO

	// Len is the number of elements of a NodeArray or members of a NodeObject.
	Len int

	// End is the tape index one past the last descendant of a container node,
	// so that a container spans the indices [i, End). For other nodes End is
	// one past the node's own index.
	End int
}

// Number returns the literal of a NodeNumber node as a BorrowedNumber.
func (n Node) Number() BorrowedNumber { return BorrowedNumber{text: n.Text} }

// IsContainer reports whether n is the start of an array or an object.
func (n Node) IsContainer() bool { return n.Kind == NodeArray || n.Kind == NodeObject }

func (n Node) String() string {
	switch n.Kind {
	case NodeStatic:
		return n.Static.String()
	case NodeString:
		return fmt.Sprintf("string %q", n.Text.StringCopy())
	case NodeNumber:
		return "number " + n.Text.StringCopy()
	case NodeArray, NodeObject:
		return fmt.Sprintf("%v len=%d end=%d", n.Kind, n.Len, n.End)
	}
	return "invalid"
}

// A Tape is a flat, index-addressable sequence of nodes describing the
// structure of a single JSON value. The node at index 0 is the root.
//
// A Tape is not modified after construction, and may be read concurrently.
// Its String and NodeNumber nodes view the buffer it was built from, which
// must not be modified while the tape is in use.
type Tape struct {
	nodes []Node
}

// NewTape returns a tape with the given nodes. The caller is responsible for
// the validity of the nodes: container End indices must be in bounds and
// correctly nested. This is intended for producers other than Builder.
func NewTape(nodes []Node) *Tape { return &Tape{nodes: nodes} }

// Len reports the number of nodes in t.
func (t *Tape) Len() int { return len(t.nodes) }

// Node returns the node at index i of t. It panics if i is out of range.
func (t *Tape) Node(i int) Node { return t.nodes[i] }

// Nodes returns the nodes of t. The caller must not modify the result.
func (t *Tape) Nodes() []Node { return t.nodes }

// String renders a human-readable listing of the nodes of t, one per line.
func (t *Tape) String() string {
	var sb strings.Builder
	for i, n := range t.nodes {
		fmt.Fprintf(&sb, "%d: %v\n", i, n)
	}
	return sb.String()
}
