// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jtape

// Unmarshaler is implemented by types that decode themselves from a tape. An
// implementation pulls the nodes for one value from the walker, in document
// order, using its Parse methods.
type Unmarshaler interface {
	UnmarshalTape(w *Walker) error
}

// Decode builds a tape from buf with default options and decodes it into v.
// See [Builder.Build] for the ownership rules for buf.
func Decode(buf []byte, v Unmarshaler) error {
	t, err := FromSlice(buf)
	if err != nil {
		return err
	}
	return DecodeTape(t, v)
}

// DecodeTape decodes t into v. It reports a TrailingData error if v does not
// consume every node of t.
func DecodeTape(t *Tape, v Unmarshaler) error {
	w := NewWalker(t)
	if err := v.UnmarshalTape(w); err != nil {
		return err
	}
	if !w.Done() {
		return indexError(TrailingData, w.Index()+1, "%d nodes not consumed", w.Remaining())
	}
	return nil
}
