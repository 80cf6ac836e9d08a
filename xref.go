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

// This file implements spec.md §5's two cross-reference section forms -
// the classical "xref" table with its trailing "trailer" dictionary, and
// the PDF 1.5 cross-reference stream ("/Type /XRef") - normalized to a
// single XRefSection shape so that walk.go and document.go never need to
// know which form produced a given section.

import (
	"encoding/binary"
	"errors"

	"golang.org/x/exp/maps"
)

// XRefEntryType classifies one entry of a cross-reference section.
type XRefEntryType int

const (
	// XRefFree marks an object number that is not in use in this revision.
	XRefFree XRefEntryType = iota
	// XRefInUse marks a plain indirect object at a byte offset.
	XRefInUse
	// XRefCompressed marks an object stored inside an object stream (PDF
	// 1.5+, type 2 entries of a cross-reference stream). This parser does
	// not unpack object streams (spec.md, Non-goals); the entry is
	// reported so that a caller with that capability can.
	XRefCompressed
)

// XRefEntry is one normalized row of a cross-reference section.
type XRefEntry struct {
	Type XRefEntryType

	// Offset is the byte offset of the object in the file for XRefInUse
	// entries, or the object number of the containing object stream for
	// XRefCompressed entries.
	Offset int64

	// Generation is the object's generation number for XRefInUse entries,
	// or the index of the object within its containing stream for
	// XRefCompressed entries.
	Generation uint16
}

// XRefSection is one cross-reference section together with its trailer
// dictionary, in the form produced by either the classical table+trailer
// syntax or a cross-reference stream.
type XRefSection struct {
	Entries map[uint32]XRefEntry
	Trailer Dict

	// StartPos is the byte offset at which this section's "xref" keyword
	// or cross-reference stream object begins, used by walk.go's loop
	// guard and by error messages.
	StartPos int64
}

// Keys returns the object numbers covered by this section, in no
// particular order.
func (x *XRefSection) Keys() []uint32 {
	return maps.Keys(x.Entries)
}

var (
	errXRefBadSubsectionHeader = errors.New("malformed xref subsection header")
	errXRefBadEntry            = errors.New("malformed xref entry")
	errXRefNoTrailerKeyword    = errors.New("missing 'trailer' keyword")
	errXRefStreamBadW          = errors.New("cross-reference stream has malformed /W array")
	errXRefStreamBadIndex      = errors.New("cross-reference stream has malformed /Index array")
	errXRefStreamShortBody     = errors.New("cross-reference stream body shorter than /W * count")
	errXRefNotAStreamOrTable   = errors.New("expected 'xref' keyword or a cross-reference stream object")
)

// scanXRefSection reads one cross-reference section at the scanner's
// current position, dispatching to the classical or stream form.
func (s *scanner) scanXRefSection() (*XRefSection, error) {
	startPos := s.pos
	if s.keyword("xref") {
		return s.scanClassicalXRef(startPos)
	}

	obj, matched, err := s.tryScanIndirectObject()
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, s.errf(errXRefNotAStreamOrTable)
	}
	stream, ok := obj.Value.(*Stream)
	if !ok {
		return nil, s.errf(errXRefNotAStreamOrTable)
	}
	if t, _ := stream.Dict.Get(Name("Type")); !nameEquals(t, "XRef") {
		return nil, s.errf(errXRefNotAStreamOrTable)
	}
	return decodeXRefStream(stream, startPos)
}

func nameEquals(obj Object, want string) bool {
	n, ok := obj.(Name)
	return ok && string(n) == want
}

// scanClassicalXRef reads a classical "xref ... trailer <<...>>" section,
// having already consumed the "xref" keyword.
func (s *scanner) scanClassicalXRef(startPos int64) (*XRefSection, error) {
	entries := make(map[uint32]XRefEntry)
	for {
		s.skipWhiteSpace()
		if s.keyword("trailer") {
			break
		}
		startObj, ok := s.scanNumber()
		if !ok {
			return nil, s.errf(errXRefNoTrailerKeyword)
		}
		first, ok := startObj.(Integer)
		if !ok || first < 0 {
			return nil, s.errf(errXRefBadSubsectionHeader)
		}
		countObj, ok := s.scanNumber()
		if !ok {
			return nil, s.errf(errXRefBadSubsectionHeader)
		}
		count, ok := countObj.(Integer)
		if !ok || count < 0 {
			return nil, s.errf(errXRefBadSubsectionHeader)
		}

		for i := int64(0); i < int64(count); i++ {
			entry, err := s.scanXRefEntryLine()
			if err != nil {
				return nil, err
			}
			num := uint32(int64(first) + i)
			if _, exists := entries[num]; !exists {
				entries[num] = entry
			}
		}
	}

	trailer, err := s.scanDictBody2()
	if err != nil {
		return nil, err
	}

	return &XRefSection{Entries: entries, Trailer: trailer, StartPos: startPos}, nil
}

// scanDictBody2 expects "<<" followed by a dictionary body; used for the
// trailer, which is not preceded by the generic composite.go dispatch.
func (s *scanner) scanDictBody2() (Dict, error) {
	if !s.literal("<<") {
		return Dict{}, s.errf(errUnexpectedToken)
	}
	return s.scanDictBody()
}

// scanXRefEntryLine reads one classical xref entry: an offset, a
// generation, and a single 'n' or 'f' marker.  The two numbers are read as
// ordinary whitespace-separated integers: their digit counts and the
// 20-byte entry width are not checked, any whitespace (and comments) may
// separate the fields, and the bytes that end the entry are left for the
// next skipWhiteSpace call rather than checked here.
func (s *scanner) scanXRefEntryLine() (XRefEntry, error) {
	s.skipWhiteSpace()

	offsetObj, ok := s.scanNumber()
	if !ok {
		return XRefEntry{}, s.errf(errXRefBadEntry)
	}
	offset, ok := offsetObj.(Integer)
	if !ok || offset < 0 {
		return XRefEntry{}, s.errf(errXRefBadEntry)
	}

	genObj, ok := s.scanNumber()
	if !ok {
		return XRefEntry{}, s.errf(errXRefBadEntry)
	}
	gen, ok := genObj.(Integer)
	if !ok || gen < 0 {
		return XRefEntry{}, s.errf(errXRefBadEntry)
	}

	s.skipLineWhiteSpace()
	marker, ok := s.peek()
	if !ok {
		return XRefEntry{}, s.errf(errXRefBadEntry)
	}
	var typ XRefEntryType
	switch marker {
	case 'n':
		typ = XRefInUse
	case 'f':
		typ = XRefFree
	default:
		return XRefEntry{}, s.errf(errXRefBadEntry)
	}
	s.pos++

	return XRefEntry{Type: typ, Offset: int64(offset), Generation: uint16(gen)}, nil
}

// decodeXRefStream normalizes a PDF 1.5+ cross-reference stream object
// into an XRefSection. Filters (e.g. /FlateDecode) are not applied by this
// parser (spec.md, Non-goals): the rows are read from Stream.Body exactly
// as scanXRefSection parsed it from the file, so only an unfiltered
// cross-reference stream yields meaningful entries.
func decodeXRefStream(stream *Stream, startPos int64) (*XRefSection, error) {
	wObj, ok := stream.Dict.Get(Name("W"))
	if !ok {
		return nil, &MalformedFileError{Err: errXRefStreamBadW, Pos: startPos}
	}
	wArr, ok := wObj.(Array)
	if !ok || len(wArr) != 3 {
		return nil, &MalformedFileError{Err: errXRefStreamBadW, Pos: startPos}
	}
	w := make([]int, 3)
	for i, elem := range wArr {
		n, ok := elem.(Integer)
		if !ok || n < 0 || n > 8 {
			return nil, &MalformedFileError{Err: errXRefStreamBadW, Pos: startPos}
		}
		w[i] = int(n)
	}

	var index []int64
	if idxObj, ok := stream.Dict.Get(Name("Index")); ok {
		idxArr, ok := idxObj.(Array)
		if !ok || len(idxArr)%2 != 0 {
			return nil, &MalformedFileError{Err: errXRefStreamBadIndex, Pos: startPos}
		}
		for _, elem := range idxArr {
			n, ok := elem.(Integer)
			if !ok {
				return nil, &MalformedFileError{Err: errXRefStreamBadIndex, Pos: startPos}
			}
			index = append(index, int64(n))
		}
	} else {
		sizeObj, ok := stream.Dict.Get(Name("Size"))
		size, okInt := sizeObj.(Integer)
		if !ok || !okInt {
			return nil, &MalformedFileError{Err: errXRefStreamBadIndex, Pos: startPos}
		}
		index = []int64{0, int64(size)}
	}

	rowLen := w[0] + w[1] + w[2]
	entries := make(map[uint32]XRefEntry)
	body := stream.Body
	pos := 0
	for sub := 0; sub+1 < len(index); sub += 2 {
		first := index[sub]
		count := index[sub+1]
		for i := int64(0); i < count; i++ {
			if pos+rowLen > len(body) {
				return nil, &MalformedFileError{Err: errXRefStreamShortBody, Pos: startPos}
			}
			typeField := int64(1) // a missing field 1 defaults to type 1
			if w[0] > 0 {
				typeField = readBE(body[pos : pos+w[0]])
			}
			pos += w[0]
			field2 := readBE(body[pos : pos+w[1]])
			pos += w[1]
			field3 := readBE(body[pos : pos+w[2]])
			pos += w[2]

			num := uint32(first + i)
			var entry XRefEntry
			switch typeField {
			case 0:
				entry = XRefEntry{Type: XRefFree, Offset: field2, Generation: uint16(field3)}
			case 1:
				entry = XRefEntry{Type: XRefInUse, Offset: field2, Generation: uint16(field3)}
			case 2:
				entry = XRefEntry{Type: XRefCompressed, Offset: field2, Generation: uint16(field3)}
			default:
				continue // unknown entry types are skipped, not fatal
			}
			if _, exists := entries[num]; !exists {
				entries[num] = entry
			}
		}
	}

	return &XRefSection{Entries: entries, Trailer: stream.Dict, StartPos: startPos}, nil
}

// readBE decodes a big-endian integer of 0 to 8 bytes; a zero-width field
// reads as 0 (used for an omitted /W[0] type field).
func readBE(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	var buf [8]byte
	copy(buf[8-len(b):], b)
	return int64(binary.BigEndian.Uint64(buf[:]))
}
