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

// This file implements the recursive object grammar of spec.md §4.4:
//
//	obj ::= ref | null | bool | real | integer | name | string | array | dict
//
// ref and integer share a prefix (two integers in a row), so scanObject
// tries the two-integer-plus-R lookahead before falling back to a plain
// number.  This mirrors the hammer grammar's own ordering in
// original_source/pdf.c, where h_choice tries alternatives left to right
// and the reference production is listed before the bare integer.

import "errors"

var (
	errUnexpectedToken   = errors.New("unexpected token")
	errUnterminatedArray = errors.New("unterminated array")
	errUnterminatedDict  = errors.New("unterminated dictionary")
	errDictKeyNotAName   = errors.New("dictionary key is not a name")
)

// scanObject reads one object of any variant, or reports that none could
// be found at the current position.  It does not consume trailing
// whitespace, except after a plain dictionary: the lookahead for a
// following "stream" keyword skips the whitespace and comments after ">>".
func (s *scanner) scanObject() (Object, error) {
	s.skipWhiteSpace()

	if ref, ok := s.tryScanReference(); ok {
		return ref, nil
	}

	if s.keyword("true") {
		return Boolean(true), nil
	}
	if s.keyword("false") {
		return Boolean(false), nil
	}
	if s.keyword("null") {
		return nil, nil
	}

	if num, ok := s.scanNumber(); ok {
		return num, nil
	}

	if s.literal("/") {
		return s.scanName()
	}

	if s.literal("(") {
		return s.scanLiteralString()
	}

	if s.literal("<<") {
		return s.scanDictOrStream()
	}
	if s.literal("<") {
		return s.scanHexString()
	}

	if s.literal("[") {
		return s.scanArray()
	}

	return nil, s.errf(errUnexpectedToken)
}

// tryScanReference attempts the "<uint> <uint> R" production, restoring the
// scanner position on failure so that a caller can fall back to parsing a
// single Integer instead.
func (s *scanner) tryScanReference() (Reference, bool) {
	start := s.pos
	n, ok := s.scanNumber()
	if !ok {
		return Reference{}, false
	}
	num, ok := n.(Integer)
	if !ok || num < 0 {
		s.pos = start
		return Reference{}, false
	}
	g, ok := s.scanNumber()
	if !ok {
		s.pos = start
		return Reference{}, false
	}
	gen, ok := g.(Integer)
	if !ok || gen < 0 {
		s.pos = start
		return Reference{}, false
	}
	if !s.keyword("R") {
		s.pos = start
		return Reference{}, false
	}
	return NewReference(uint32(num), uint16(gen)), true
}

// scanName reads a name token, having already consumed the leading slash,
// decoding `#hh` escapes.
func (s *scanner) scanName() (Name, error) {
	var out []byte
	for {
		b, ok := s.peek()
		if !ok || !isNameRegular(b) {
			if ok && b == '#' {
				if h1, ok1 := s.peekAt(1); ok1 && isHexDigit(h1) {
					if h2, ok2 := s.peekAt(2); ok2 && isHexDigit(h2) {
						out = append(out, byte(hexVal(h1)<<4|hexVal(h2)))
						s.pos += 3
						continue
					}
				}
				// a lone '#' not followed by two hex digits is kept as-is,
				// matching readers that tolerate malformed escapes rather
				// than failing the whole name.
				out = append(out, b)
				s.pos++
				continue
			}
			break
		}
		out = append(out, b)
		s.pos++
	}
	return Name(out), nil
}

// scanArray reads an array body, having already consumed the opening '['.
func (s *scanner) scanArray() (Array, error) {
	var out Array
	for {
		s.skipWhiteSpace()
		if s.literal("]") {
			return out, nil
		}
		if s.atEnd() {
			return nil, s.errf(errUnterminatedArray)
		}
		obj, err := s.scanObject()
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
}

// scanDictOrStream reads a dictionary, having already consumed the opening
// "<<", and then checks for a following "stream" keyword to decide whether
// the result is a plain Dict or a *Stream (spec.md §4.5).
func (s *scanner) scanDictOrStream() (Object, error) {
	d, err := s.scanDictBody()
	if err != nil {
		return nil, err
	}
	if s.keyword("stream") {
		return s.scanStreamBody(d)
	}
	return d, nil
}

func (s *scanner) scanDictBody() (Dict, error) {
	var d Dict
	for {
		s.skipWhiteSpace()
		if s.literal(">>") {
			return d, nil
		}
		if s.atEnd() {
			return Dict{}, s.errf(errUnterminatedDict)
		}
		if !s.literal("/") {
			return Dict{}, s.errf(errDictKeyNotAName)
		}
		key, err := s.scanName()
		if err != nil {
			return Dict{}, err
		}
		value, err := s.scanObject()
		if err != nil {
			return Dict{}, err
		}
		d.add(key, value)
	}
}
