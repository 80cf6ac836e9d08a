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

// This file implements the lexical layer of the object grammar: character
// classes, end-of-line normalization, whitespace/comment skipping, and the
// token-fence rule.  The teacher library read these bytes from a buffered
// io.Reader (see the stripped scanner.go, only scanner_test.go survives in
// the retrieval pack); this parser instead holds the whole input as a byte
// slice, since the backwards xref walk (walk.go) needs true random access,
// which spec.md §5/§6 require and a forward-only buffered reader cannot
// provide.

// isWhiteSpace reports whether b is PDF whitespace (table 1 of ISO 32000):
// NUL, HT, FF, SP, CR, LF.
func isWhiteSpace(b byte) bool {
	switch b {
	case 0, '\t', '\f', ' ', '\r', '\n':
		return true
	}
	return false
}

// isLineWhiteSpace reports whether b is "line" whitespace: whitespace other
// than the two end-of-line characters.  Used for the fill allowed before an
// end-of-line marker (e.g. in the startxref trailer).
func isLineWhiteSpace(b byte) bool {
	switch b {
	case 0, '\t', '\f', ' ':
		return true
	}
	return false
}

// isDelimiter reports whether b is one of the ten PDF delimiter
// characters.
func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// isRegular reports whether b is neither whitespace nor a delimiter.
func isRegular(b byte) bool {
	return !isWhiteSpace(b) && !isDelimiter(b)
}

// isNameRegular reports whether b may appear unescaped in a name.
func isNameRegular(b byte) bool {
	return isRegular(b) && b != '#'
}

// isStringRegular reports whether b may appear unescaped in a literal
// string: anything except the parens, backslash, and the two EOL bytes.
func isStringRegular(b byte) bool {
	switch b {
	case '(', ')', '\r', '\n', '\\':
		return false
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

// scanner is a cursor over a byte slice, together with the recursive-descent
// methods that recognize the object grammar (numbers.go, strings.go,
// composite.go, stream.go, indirect.go) and the file structure grammar
// (xref.go, walk.go, document.go).
//
// A scanner never copies its input as a whole; stream bodies are held as
// slices of data directly, playing the role of spec.md §3's "arena".
// Names and strings are decoded into newly allocated byte slices.
type scanner struct {
	data []byte
	pos  int64
}

func newScanner(data []byte, pos int64) *scanner {
	return &scanner{data: data, pos: pos}
}

func (s *scanner) atEnd() bool {
	return s.pos >= int64(len(s.data))
}

func (s *scanner) peek() (byte, bool) {
	if s.atEnd() {
		return 0, false
	}
	return s.data[s.pos], true
}

func (s *scanner) peekAt(off int64) (byte, bool) {
	p := s.pos + off
	if p < 0 || p >= int64(len(s.data)) {
		return 0, false
	}
	return s.data[p], true
}

// errf returns a *MalformedFileError located at the scanner's current
// position.
func (s *scanner) errf(err error) error {
	return &MalformedFileError{Err: err, Pos: s.pos}
}

// eol tries to consume one end-of-line marker (CR, LF, or CRLF) and reports
// whether it found one.  EOLs always normalize to a single LF in the AST;
// this function itself does not emit anything, callers that need the
// normalized byte append the LF themselves.
func (s *scanner) eol() bool {
	b, ok := s.peek()
	if !ok {
		return false
	}
	switch b {
	case '\n':
		s.pos++
		return true
	case '\r':
		s.pos++
		if b2, ok := s.peek(); ok && b2 == '\n' {
			s.pos++
		}
		return true
	}
	return false
}

// skipComment consumes a '%' through (but not including) the terminating
// EOL or end of input, returning whether a comment was found.
func (s *scanner) skipComment() bool {
	b, ok := s.peek()
	if !ok || b != '%' {
		return false
	}
	s.pos++
	for {
		b, ok := s.peek()
		if !ok || b == '\r' || b == '\n' {
			return true
		}
		s.pos++
	}
}

// skipWhiteSpace consumes whitespace and comments (ws in spec.md §4.1).
func (s *scanner) skipWhiteSpace() {
	for {
		b, ok := s.peek()
		if !ok {
			return
		}
		if isWhiteSpace(b) {
			s.pos++
			continue
		}
		if b == '%' {
			s.skipComment()
			continue
		}
		return
	}
}

// skipLineWhiteSpace consumes "line" whitespace only (lws in spec.md §4.1).
func (s *scanner) skipLineWhiteSpace() {
	for {
		b, ok := s.peek()
		if !ok || !isLineWhiteSpace(b) {
			return
		}
		s.pos++
	}
}

// fence checks the token-fence rule (spec.md §4.1): the character following
// a keyword-like or numeric token must not be "regular", i.e. it must be a
// delimiter, whitespace, or end of input.
func (s *scanner) fence() bool {
	b, ok := s.peek()
	if !ok {
		return true
	}
	return !isRegular(b)
}

// keyword consumes exactly the literal kw, after skipping leading
// whitespace, and enforces the token fence afterwards (the `KW` macro of
// spec.md §4.1/original_source/pdf.c).
func (s *scanner) keyword(kw string) bool {
	s.skipWhiteSpace()
	start := s.pos
	for i := 0; i < len(kw); i++ {
		b, ok := s.peek()
		if !ok || b != kw[i] {
			s.pos = start
			return false
		}
		s.pos++
	}
	if !s.fence() {
		s.pos = start
		return false
	}
	return true
}

// literal consumes exactly lit (no fence check), after skipping leading
// whitespace.  Used before unambiguous delimiter characters (the `TOKD`
// idiom of spec.md §4.1).
func (s *scanner) literal(lit string) bool {
	s.skipWhiteSpace()
	start := s.pos
	for i := 0; i < len(lit); i++ {
		b, ok := s.peek()
		if !ok || b != lit[i] {
			s.pos = start
			return false
		}
		s.pos++
	}
	return true
}
