// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Invalid
// escapes are replaced by the Unicode replacement rune. Unquote reports an
// error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		dec = mem.Append(dec, src)
		return dec, nil
	}

	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		// Decode the next rune after the escape to figure out what to
		// substitute. There should not be errors here, but if there are, insert
		// replacement runes (utf8.RuneError == '\ufffd').
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			putByte(byte(r))
		case 'b':
			putByte('\b')
		case 'f':
			putByte('\f')
		case 'n':
			putByte('\n')
		case 'r':
			putByte('\r')
		case 't':
			putByte('\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			r, nr := decodeUnicode(src)
			dec = utf8.AppendRune(dec, r)
			src = src.SliceFrom(nr)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// UnquoteInPlace decodes the JSON encoding of a string held in buf, with the
// enclosing quotation marks already removed, and writes the result over the
// front of buf. It returns the length of the decoded text.
//
// Decoding never makes the text longer, so the output cannot overrun input
// that has not yet been read. Unlike Unquote, an invalid escape sequence is
// reported as an error.
func UnquoteInPlace(buf []byte) (int, error) {
	w := 0
	for r := 0; r < len(buf); {
		b := buf[r]
		if b != '\\' {
			buf[w] = b
			w++
			r++
			continue
		}
		if r+1 >= len(buf) {
			return w, errors.New("incomplete escape sequence")
		}
		var out byte
		switch buf[r+1] {
		case '"', '\\', '/':
			out = buf[r+1]
		case 'b':
			out = '\b'
		case 'f':
			out = '\f'
		case 'n':
			out = '\n'
		case 'r':
			out = '\r'
		case 't':
			out = '\t'
		case 'u':
			if len(buf)-r < 6 {
				return w, errors.New("incomplete Unicode escape")
			}
			ch, nr := decodeUnicode(mem.B(buf[r+2:]))
			w += utf8.EncodeRune(buf[w:], ch)
			r += 2 + nr
			continue
		default:
			return w, fmt.Errorf("invalid %q after escape", buf[r+1])
		}
		buf[w] = out
		w++
		r += 2
	}
	return w, nil
}

// decodeUnicode decodes the hex digits of a \u escape at the front of src,
// which must have at least 4 bytes. If the escape is the high half of a
// surrogate pair and the low half follows, both are consumed. It returns the
// decoded rune and the number of bytes of src consumed.
func decodeUnicode(src mem.RO) (rune, int) {
	v, err := parseHex(src.SliceTo(4))
	if err != nil {
		return utf8.RuneError, 4
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 4
	}
	if src.Len() >= 10 && src.At(4) == '\\' && src.At(5) == 'u' {
		if lo, err := parseHex(src.Slice(6, 10)); err == nil {
			if p := utf16.DecodeRune(r, rune(lo)); p != utf8.RuneError {
				return p, 10
			}
		}
	}
	return utf8.RuneError, 4
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
