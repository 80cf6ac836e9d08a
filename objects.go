// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Object is implemented by every PDF object variant produced by this
// parser: Boolean, Integer, Real, Name, String, Array, Dict, Reference, and
// *Stream.  Null is represented by the untyped Go nil
// held in an Object-typed slot, exactly as arrays and dicts may hold a nil
// entry.
type Object interface {
	// PDF writes the canonical textual form of the object to w.
	PDF(w io.Writer) error
}

// Boolean represents a PDF boolean object.
type Boolean bool

func (x Boolean) PDF(w io.Writer) error {
	if x {
		_, err := io.WriteString(w, "true")
		return err
	}
	_, err := io.WriteString(w, "false")
	return err
}

// Integer represents a PDF integer object.
type Integer int64

func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real represents a PDF real number object.
//
// The grammar this parser was originally distilled from (original_source
// pdf.c) accumulated reals by summing an integer part with a right-to-left
// divided fractional part and then cast the result to an integer,
// discarding the fraction entirely.  Real is a genuine float64 instead,
// per spec.md §9's explicit recommendation.
type Real float64

func (x Real) PDF(w io.Writer) error {
	s := strconv.FormatFloat(float64(x), 'f', -1, 64)
	_, err := io.WriteString(w, s)
	return err
}

// Name represents a PDF name object, with `#hh` escapes already decoded and
// the leading slash stripped.
type Name []byte

func (x Name) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "/"); err != nil {
		return err
	}
	for _, b := range []byte(x) {
		if isNameRegular(b) {
			if _, err := w.Write([]byte{b}); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, "#%02x", b); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x Name) String() string {
	return string(x)
}

// String represents a PDF string object (literal or hex form), fully
// decoded.
type String []byte

func (x String) PDF(w io.Writer) error {
	return writeLiteralString(w, x)
}

// writeLiteralString encodes x as a PDF literal string, escaping only the
// parens that are not part of a balanced pair so that the common case of
// balanced nested parens ("(he(ll)o)") stays readable.  Matching is
// first-in-first-out: a ')' closes the earliest still-open '(', so a run of
// opens that outnumber the closes to their right leaves the *later* opens
// unmatched rather than the earlier ones.
func writeLiteralString(w io.Writer, x []byte) error {
	escape := make([]bool, len(x))
	var pending []int
	for i, b := range x {
		switch b {
		case '(':
			pending = append(pending, i)
		case ')':
			if len(pending) > 0 {
				pending = pending[1:]
			} else {
				escape[i] = true
			}
		}
	}
	for _, i := range pending {
		escape[i] = true
	}

	buf := &bytes.Buffer{}
	buf.WriteByte('(')
	for i, b := range x {
		switch {
		case b == '(' || b == ')':
			if escape[i] {
				buf.WriteByte('\\')
			}
			buf.WriteByte(b)
		case b == '\\':
			buf.WriteString(`\\`)
		case b == '\r':
			buf.WriteString(`\r`)
		case b == '\n':
			buf.WriteString(`\n`)
		default:
			buf.WriteByte(b)
		}
	}
	buf.WriteByte(')')
	_, err := w.Write(buf.Bytes())
	return err
}

// Array represents a PDF array object.
type Array []Object

func (x Array) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, elem := range x {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if err := formatObject(w, elem); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// Reference identifies an indirect object by object number and generation.
// It is a citation, never resolved by this parser (spec.md §1).
type Reference struct {
	Number     uint32
	Generation uint16
}

// NewReference constructs a Reference from an object number and generation.
func NewReference(number uint32, generation uint16) Reference {
	return Reference{Number: number, Generation: generation}
}

func (x Reference) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d R", x.Number, x.Generation)
	return err
}

func (x Reference) String() string {
	return fmt.Sprintf("%d %d R", x.Number, x.Generation)
}

// Stream represents a PDF stream object: a dictionary together with its raw
// (still filtered/encrypted) body.  Body is a slice into the parser's input
// buffer, never copied (spec.md §3/§4.5).
//
// LengthRef is set when the dictionary's /Length entry is an indirect
// reference rather than an Integer; this parser does not resolve it
// (spec.md §9, "Length as indirect reference").
type Stream struct {
	Dict      Dict
	Body      []byte
	LengthRef Reference
}

func (x *Stream) PDF(w io.Writer) error {
	if err := x.Dict.PDF(w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\nstream\n"); err != nil {
		return err
	}
	if _, err := w.Write(x.Body); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\nendstream")
	return err
}

// IndirectObject wraps any non-stream Object or *Stream with the identity
// it was given in the file: `n g obj ... endobj`.
type IndirectObject struct {
	Number     uint32
	Generation uint16
	Value      Object
}

func (x *IndirectObject) PDF(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d %d obj\n", x.Number, x.Generation); err != nil {
		return err
	}
	if err := formatObject(w, x.Value); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\nendobj")
	return err
}

// formatObject writes obj, treating a nil Object as the PDF keyword null.
func formatObject(w io.Writer, obj Object) error {
	if obj == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return obj.PDF(w)
}

// Format renders obj in its canonical textual form, the same convention
// used throughout spec.md's testable properties (§8) for round-tripping.
func Format(obj Object) string {
	buf := &bytes.Buffer{}
	_ = formatObject(buf, obj)
	return buf.String()
}
