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

// This file implements the context-sensitive stream body production of
// spec.md §4.5: the "stream" keyword must be followed by exactly one
// end-of-line marker (CRLF, or a lone LF; a lone CR is not valid here, per
// ISO 32000 and original_source/pdf.c's kstream continuation), then exactly
// /Length raw bytes, then the "endstream" keyword.  /Length is looked up
// eagerly; an indirect /Length is recorded but not resolved (spec.md §9).

import "errors"

var (
	errStreamNoLength       = errors.New("stream dictionary has no /Length entry")
	errStreamBadLength      = errors.New("/Length is neither an integer nor a reference")
	errStreamMissingEOL     = errors.New("missing end-of-line marker after 'stream' keyword")
	errStreamBodyTruncated  = errors.New("stream body runs past end of input")
	errStreamNoEndstreamKeyword = errors.New("missing 'endstream' keyword")
)

// scanStreamBody reads a stream body, having already consumed the
// dictionary and the "stream" keyword.
func (s *scanner) scanStreamBody(dict Dict) (*Stream, error) {
	b, ok := s.peek()
	if !ok {
		return nil, s.errf(errStreamMissingEOL)
	}
	switch b {
	case '\n':
		s.pos++
	case '\r':
		s.pos++
		b2, ok := s.peek()
		if !ok || b2 != '\n' {
			return nil, s.errf(errStreamMissingEOL)
		}
		s.pos++
	default:
		return nil, s.errf(errStreamMissingEOL)
	}

	lengthObj, hasLength := dict.Get(Name("Length"))
	if !hasLength {
		return nil, s.errf(errStreamNoLength)
	}

	var length int64
	var lengthRef Reference
	switch v := lengthObj.(type) {
	case Integer:
		length = int64(v)
	case Reference:
		lengthRef = v
	default:
		return nil, s.errf(errStreamBadLength)
	}

	out := &Stream{Dict: dict, LengthRef: lengthRef}

	if lengthRef == (Reference{}) {
		start := s.pos
		if length < 0 || length > int64(len(s.data))-start {
			return nil, s.errf(errStreamBodyTruncated)
		}
		end := start + length
		out.Body = s.data[start:end]
		s.pos = end
		if !s.keyword("endstream") {
			return nil, s.errf(errStreamNoEndstreamKeyword)
		}
		return out, nil
	}

	// /Length is an indirect reference: this parser does not resolve
	// indirect objects (spec.md §9), so it falls back to scanning forward
	// for the next "endstream" keyword and treats everything up to (but
	// not including) it as the body, trimming one trailing EOL the way
	// writers conventionally add one before "endstream".
	idx := findKeyword(s.data, s.pos, "endstream")
	if idx < 0 {
		return nil, s.errf(errStreamNoEndstreamKeyword)
	}
	body := s.data[s.pos:idx]
	body = trimTrailingEOL(body)
	out.Body = body
	s.pos = idx
	if !s.keyword("endstream") {
		return nil, s.errf(errStreamNoEndstreamKeyword)
	}
	return out, nil
}

// findKeyword returns the index of the first occurrence of kw at or after
// pos, or -1.  It checks no fence itself; the caller's s.keyword call then
// checks only that a non-regular byte follows the match, and the stream
// fails if it does not.
func findKeyword(data []byte, pos int64, kw string) int64 {
	n := int64(len(kw))
	for i := pos; i+n <= int64(len(data)); i++ {
		if string(data[i:i+n]) == kw {
			return i
		}
	}
	return -1
}

func trimTrailingEOL(body []byte) []byte {
	if len(body) > 0 && body[len(body)-1] == '\n' {
		body = body[:len(body)-1]
		if len(body) > 0 && body[len(body)-1] == '\r' {
			body = body[:len(body)-1]
		}
		return body
	}
	if len(body) > 0 && body[len(body)-1] == '\r' {
		body = body[:len(body)-1]
	}
	return body
}
