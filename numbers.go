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

// This file implements the numeric grammar (original_source pdf.c's
// act_intg/act_real): an optional sign, a run of digits, and an optional
// '.' followed by more digits that turns the token into a Real.  Real
// parses the whole token with strconv instead of reproducing the original
// grammar's integer-accumulate-then-truncate construction (see the doc
// comment on Real in objects.go).

import "strconv"

// scanNumber reads an integer or real token starting at the scanner's
// current position and reports which kind it found.  It does not itself
// distinguish a number from a reference or an indirect-object header; that
// lookahead happens in composite.go and indirect.go, which call scanNumber
// and then decide how to use the digits.
func (s *scanner) scanNumber() (Object, bool) {
	s.skipWhiteSpace()
	start := s.pos

	neg := false
	if b, ok := s.peek(); ok && (b == '+' || b == '-') {
		neg = b == '-'
		s.pos++
	}

	digitsStart := s.pos
	for {
		b, ok := s.peek()
		if !ok || !isDigit(b) {
			break
		}
		s.pos++
	}
	intLen := s.pos - digitsStart

	isReal := false
	fracStart := int64(-1)
	if b, ok := s.peek(); ok && b == '.' {
		isReal = true
		s.pos++
		fracStart = s.pos
		for {
			b, ok := s.peek()
			if !ok || !isDigit(b) {
				break
			}
			s.pos++
		}
	}

	if intLen == 0 && (!isReal || s.pos == fracStart) {
		// neither an integer part nor a fractional part: not a number
		s.pos = start
		return nil, false
	}

	if !s.fence() {
		s.pos = start
		return nil, false
	}

	text := string(s.data[start:s.pos])
	if !isReal {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// overflow: PDF integers are used as object numbers and
			// offsets well within int64 range, but fall back to a Real
			// for anything that does not fit, rather than failing the
			// parse outright.
			f, ferr := strconv.ParseFloat(text, 64)
			if ferr != nil {
				s.pos = start
				return nil, false
			}
			return Real(f), true
		}
		return Integer(n), true
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.pos = start
		return nil, false
	}
	if neg && f == 0 {
		f = 0 // normalize -0 to 0, avoid surprising round-trip signs
	}
	return Real(f), true
}
