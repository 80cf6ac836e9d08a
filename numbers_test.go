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

import "testing"

func TestScanNumber(t *testing.T) {
	cases := []struct {
		in  string
		out Object
	}{
		{"123", Integer(123)},
		{"+17", Integer(17)},
		{"-98", Integer(-98)},
		{"0", Integer(0)},
		{"34.5", Real(34.5)},
		{"-3.62", Real(-3.62)},
		{"+123.6", Real(123.6)},
		{"4.", Real(4)},
		{".002", Real(0.002)},
		{"0.0", Real(0)},
		{"-.002", Real(-0.002)},
	}
	for _, test := range cases {
		s := newScanner([]byte(test.in), 0)
		obj, ok := s.scanNumber()
		if !ok {
			t.Errorf("scanNumber(%q): failed to parse", test.in)
			continue
		}
		if obj != test.out {
			t.Errorf("scanNumber(%q) = %#v, want %#v", test.in, obj, test.out)
		}
		if s.pos != int64(len(test.in)) {
			t.Errorf("scanNumber(%q): consumed %d bytes, want %d", test.in, s.pos, len(test.in))
		}
	}
}

func TestScanNumberFence(t *testing.T) {
	// a number is terminated by a delimiter, whitespace, or end of input;
	// "123abc" is not a number at all since 'a' is a "regular" character
	// and the fence check must fail and reject the whole token.
	s := newScanner([]byte("123abc"), 0)
	if _, ok := s.scanNumber(); ok {
		t.Error("scanNumber(\"123abc\"): expected failure, the fence rule should reject it")
	}
}

func TestScanNumberStopsAtDelimiter(t *testing.T) {
	s := newScanner([]byte("17]"), 0)
	obj, ok := s.scanNumber()
	if !ok {
		t.Fatal("scanNumber: failed to parse")
	}
	if obj != Integer(17) {
		t.Errorf("scanNumber = %#v, want Integer(17)", obj)
	}
	if s.pos != 2 {
		t.Errorf("scanNumber left pos = %d, want 2 (before the ']')", s.pos)
	}
}

func TestScanNumberNotANumber(t *testing.T) {
	for _, in := range []string{"/Name", "true", "", "(abc)", "R"} {
		s := newScanner([]byte(in), 0)
		if _, ok := s.scanNumber(); ok {
			t.Errorf("scanNumber(%q): expected failure", in)
		}
		if s.pos != 0 {
			t.Errorf("scanNumber(%q): must not consume input on failure, pos = %d", in, s.pos)
		}
	}
}
