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

// This file implements the `n g obj ... endobj` production of spec.md
// §4.6, the original_source pdf.c grammar's kobject rule.

import "errors"

var errIndirectNoEndObj = errors.New("indirect object: missing 'endobj' keyword")

// tryScanIndirectObject attempts to read one `n g obj ... endobj` wrapper,
// restoring position and returning ok=false if the leading "n g obj" header
// does not match at all.  Once the header has matched, any further failure
// is reported as an error rather than a non-match: the grammar has
// committed to this production at that point.
func (s *scanner) tryScanIndirectObject() (*IndirectObject, bool, error) {
	start := s.pos
	s.skipWhiteSpace()

	numObj, ok := s.scanNumber()
	if !ok {
		s.pos = start
		return nil, false, nil
	}
	num, ok := numObj.(Integer)
	if !ok || num < 0 {
		s.pos = start
		return nil, false, nil
	}

	genObj, ok := s.scanNumber()
	if !ok {
		s.pos = start
		return nil, false, nil
	}
	gen, ok := genObj.(Integer)
	if !ok || gen < 0 {
		s.pos = start
		return nil, false, nil
	}

	if !s.keyword("obj") {
		s.pos = start
		return nil, false, nil
	}

	value, err := s.scanObject()
	if err != nil {
		return nil, true, err
	}

	if !s.keyword("endobj") {
		return nil, true, s.errf(errIndirectNoEndObj)
	}

	return &IndirectObject{
		Number:     uint32(num),
		Generation: uint16(gen),
		Value:      value,
	}, true, nil
}
