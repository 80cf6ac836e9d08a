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

// This file implements the top-level file-structure grammar of spec.md §7:
//
//	pdf ::= header many1(tail) end
//
// where a tail is either an indirect object (which may itself be a
// cross-reference stream) or a classical "xref ... trailer <<...>>"
// section, optionally interleaved with "startxref <n>\n%%EOF" footers.
//
// Two assemblers are built on top of scanTail: ParseDocument is the strict
// assembler, which fails unless the whole input is consumed, and
// ParseDocumentDebug is the secondary assembler original_source/pdf.c kept
// as a commented-out variant for diagnostics - it never fails, instead
// returning the position just after the last tail or footer that parsed,
// for a caller's error message when the strict parse does fail.

import (
	"bytes"
	"errors"

	"golang.org/x/exp/slices"
)

var (
	errHeaderMissing  = errors.New("missing '%PDF-' header")
	errHeaderBadMajor = errors.New("malformed PDF version in header")
)

// Document is the result of a full, strict parse of a PDF file's structure:
// every indirect object and every cross-reference section found between
// the header and the end of input, in file order.
type Document struct {
	Version Version

	// Objects holds every indirect object found in file order. A file
	// revised with incremental updates may define the same object number
	// more than once; later entries take priority (see Lookup).
	Objects []*IndirectObject

	// XRefSections holds every cross-reference section found in file
	// order, both classical tables and cross-reference streams.
	XRefSections []*XRefSection

	// StartXRefOffsets holds every "startxref <n>" footer found, in file
	// order. Only the last is meaningful to a reader (spec.md §6); earlier
	// ones are leftovers from superseded incremental updates.
	StartXRefOffsets []int64
}

// Lookup returns the most recently defined indirect object with the given
// number, the way a reader must when a file has been revised by
// incremental update.
func (d *Document) Lookup(number uint32) (*IndirectObject, bool) {
	reversed := slices.Clone(d.Objects)
	slices.Reverse(reversed)
	for _, obj := range reversed {
		if obj.Number == number {
			return obj, true
		}
	}
	return nil, false
}

// ParseDocument runs the strict top-level assembler: it requires a valid
// header, at least one tail, and the entire remaining input consumed by
// tails and startxref footers with nothing left over.
func ParseDocument(data []byte) (*Document, error) {
	s := newScanner(data, 0)
	ver, err := s.scanHeader()
	if err != nil {
		return nil, err
	}

	doc := &Document{Version: ver}
	count := 0
	for {
		s.skipWhiteSpace()
		if s.atEnd() {
			break
		}
		if off, ok := s.tryScanStartXRefFooter(); ok {
			doc.StartXRefOffsets = append(doc.StartXRefOffsets, off)
			continue
		}
		tail, err := s.scanTail()
		if err != nil {
			return nil, err
		}
		if tail == nil {
			return nil, s.errf(errNoParse)
		}
		appendTail(doc, tail)
		count++
	}
	if count == 0 {
		return nil, s.errf(errNoParse)
	}
	return doc, nil
}

// ParseDocumentDebug runs the same grammar as ParseDocument but never
// fails: it stops at the first tail it cannot parse (or at the end of
// input) and reports the byte offset immediately after the furthest tail
// it did manage to parse, which is the position a human should look at
// first when ParseDocument has rejected the file.
func ParseDocumentDebug(data []byte) (*Document, int64) {
	s := newScanner(data, 0)
	doc := &Document{}

	ver, err := s.scanHeader()
	if err != nil {
		return doc, 0
	}
	doc.Version = ver

	furthest := s.pos
	for {
		s.skipWhiteSpace()
		if s.atEnd() {
			furthest = s.pos
			break
		}
		if off, ok := s.tryScanStartXRefFooter(); ok {
			doc.StartXRefOffsets = append(doc.StartXRefOffsets, off)
			furthest = s.pos
			continue
		}
		beforeTail := s.pos
		tail, err := s.scanTail()
		if err != nil || tail == nil {
			s.pos = beforeTail
			break
		}
		appendTail(doc, tail)
		furthest = s.pos
	}
	return doc, furthest
}

func appendTail(doc *Document, tail any) {
	switch v := tail.(type) {
	case *IndirectObject:
		doc.Objects = append(doc.Objects, v)
	case *XRefSection:
		doc.XRefSections = append(doc.XRefSections, v)
	}
}

// scanTail reads one indirect object or classical cross-reference section,
// or returns a nil tail and a nil error if neither matches at the current
// position.
func (s *scanner) scanTail() (any, error) {
	s.skipWhiteSpace()
	if s.atEnd() {
		return nil, nil
	}

	start := s.pos
	if obj, matched, err := s.tryScanIndirectObject(); matched {
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
	s.pos = start

	if s.keyword("xref") {
		return s.scanClassicalXRef(start)
	}

	return nil, nil
}

// scanHeader reads the "%PDF-D.D" header line, consuming through the end
// of its line.
func (s *scanner) scanHeader() (Version, error) {
	const prefix = "%PDF-"
	if !bytes.HasPrefix(s.data[s.pos:], []byte(prefix)) {
		return 0, s.errf(errHeaderMissing)
	}
	s.pos += int64(len(prefix))

	start := s.pos
	for {
		b, ok := s.peek()
		if !ok || b == '\r' || b == '\n' {
			break
		}
		s.pos++
	}
	versionText := string(s.data[start:s.pos])
	s.eol()

	v, err := ParseVersion(versionText)
	if err != nil {
		return 0, s.errf(errHeaderBadMajor)
	}
	return v, nil
}

// tryScanStartXRefFooter consumes one "startxref <n>\n%%EOF" footer at the
// current position, if present.
func (s *scanner) tryScanStartXRefFooter() (int64, bool) {
	start := s.pos
	off, ok := tryParseStartXRef(s.data, s.pos)
	if !ok {
		s.pos = start
		return 0, false
	}
	// tryParseStartXRef only validates; advance past it here.
	s.keyword("startxref")
	s.scanNumber()
	s.skipWhiteSpace()
	s.literal("%%EOF")
	return off, true
}
