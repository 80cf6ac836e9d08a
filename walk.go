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

// This file implements spec.md §6: locating the file's last "startxref"
// pointer and walking the chain of cross-reference sections it anchors,
// following each section's /Prev entry backwards until none remains.

import (
	"bytes"
	"errors"
)

var (
	errStartXRefNotFound = errors.New("startxref not found")
	errPrevNotAnInteger  = errors.New("/Prev not an integer")
	errPrevPointsForward = errors.New("/Prev pointer points forward")
	errXRefLoop          = errors.New("cross-reference chain does not terminate")
	errTooManyXRefHops   = errors.New("cross-reference chain exceeds MaxXRefHops")
)

// ParseOptions configures the top-level entry points. The zero value is the
// parser's natural behavior: no hop limit beyond the loop guard itself, and
// the debug assembler is left to the caller to invoke explicitly.
type ParseOptions struct {
	// MaxXRefHops caps the number of cross-reference sections WalkXRefChain
	// will read (the one startxref points at counts as the first hop, each
	// followed /Prev as one more) before giving up, in addition to the
	// unconditional loop guard. Zero means no extra limit. A legitimate file rarely has more than a
	// handful of incremental updates; this exists as a defensive ceiling
	// for hostile or corrupted inputs with a very long but non-repeating
	// /Prev chain, which the loop guard alone would still walk to the end
	// of.
	MaxXRefHops int
}

// FindStartXRef returns the byte offset recorded by the last well-formed
// "startxref <offset>\n%%EOF" trailer in data. Only the final occurrence is
// trusted, per spec.md §6: incremental updates may leave earlier, stale
// startxref/%%EOF pairs earlier in the file, and PDF readers universally
// honor only the last one.
func FindStartXRef(data []byte) (int64, error) {
	marker := []byte("startxref")
	limit := len(data)
	for {
		idx := bytes.LastIndex(data[:limit], marker)
		if idx < 0 {
			return 0, errStartXRefNotFound
		}
		if off, ok := tryParseStartXRef(data, int64(idx)); ok {
			return off, nil
		}
		limit = idx
	}
}

// tryParseStartXRef checks whether data at pos is a complete, well-formed
// "startxref <offset> ... %%EOF" sequence, returning the decoded offset.
func tryParseStartXRef(data []byte, pos int64) (int64, bool) {
	s := newScanner(data, pos)
	if !s.keyword("startxref") {
		return 0, false
	}
	numObj, ok := s.scanNumber()
	if !ok {
		return 0, false
	}
	n, ok := numObj.(Integer)
	if !ok || n < 0 {
		return 0, false
	}
	// skip plain whitespace only: skipWhiteSpace would treat "%%EOF" as a
	// comment and consume it
	for {
		b, ok := s.peek()
		if !ok || !isWhiteSpace(b) {
			break
		}
		s.pos++
	}
	if !bytes.HasPrefix(s.data[s.pos:], []byte("%%EOF")) {
		return 0, false
	}
	return int64(n), true
}

// WalkXRefChain reads the file's cross-reference sections starting from the
// position FindStartXRef locates, following each section's /Prev entry
// backwards until the chain ends.  Sections are returned newest first (the
// order a reader needs: the newest section's entries take priority over
// older ones for the same object number).
//
// The loop guard follows spec.md §6: after the very first hop (which, for
// a linearized file, may legitimately point forward to a hybrid-reference
// section placed near the start of the file), every subsequent /Prev must
// point strictly backwards, or the walk stops with an XRefWalkError rather
// than looping forever.
func WalkXRefChain(data []byte) ([]*XRefSection, error) {
	return WalkXRefChainWithOptions(data, ParseOptions{})
}

// WalkXRefChainWithOptions is WalkXRefChain with an explicit ParseOptions,
// for callers that want to bound the number of /Prev hops.
func WalkXRefChainWithOptions(data []byte, opts ParseOptions) ([]*XRefSection, error) {
	start, err := FindStartXRef(data)
	if err != nil {
		return nil, err
	}

	var sections []*XRefSection
	seen := make(map[int64]bool)
	pos := start
	first := true
	for hops := 0; ; hops++ {
		if opts.MaxXRefHops > 0 && hops >= opts.MaxXRefHops {
			return sections, &XRefWalkError{Err: errTooManyXRefHops, Pos: pos}
		}
		if pos < 0 || pos >= int64(len(data)) {
			return sections, &XRefWalkError{Err: errPrevPointsForward, Pos: pos}
		}
		if seen[pos] {
			return sections, &XRefWalkError{Err: errXRefLoop, Pos: pos}
		}
		seen[pos] = true

		s := newScanner(data, pos)
		section, err := s.scanXRefSection()
		if err != nil {
			return sections, err
		}
		sections = append(sections, section)

		prevObj, hasPrev := section.Trailer.Get(Name("Prev"))
		if !hasPrev {
			return sections, nil
		}
		prevInt, ok := prevObj.(Integer)
		if !ok {
			return sections, &XRefWalkError{Err: errPrevNotAnInteger, Pos: pos}
		}
		prev := int64(prevInt)

		if !first && prev >= pos {
			return sections, &XRefWalkError{Err: errPrevPointsForward, Pos: pos}
		}
		first = false
		pos = prev
	}
}
