// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtape

import "github.com/creachadair/jtape/internal/scan"

// A Span describes a contiguous span of a source input.
type Span = scan.Span

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol = scan.LineCol

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location = scan.Location
