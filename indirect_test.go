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

func TestScanIndirectObject(t *testing.T) {
	in := "12 0 obj\n(hello)\nendobj"
	s := newScanner([]byte(in), 0)
	obj, matched, err := s.tryScanIndirectObject()
	if err != nil {
		t.Fatalf("tryScanIndirectObject: %v", err)
	}
	if !matched {
		t.Fatal("tryScanIndirectObject: expected a match")
	}
	if obj.Number != 12 || obj.Generation != 0 {
		t.Errorf("Number/Generation = %d/%d, want 12/0", obj.Number, obj.Generation)
	}
	if s, ok := obj.Value.(String); !ok || string(s) != "hello" {
		t.Errorf("Value = %#v, want String(\"hello\")", obj.Value)
	}
}

func TestScanIndirectObjectNoMatch(t *testing.T) {
	s := newScanner([]byte("xref\n0 1\n"), 0)
	_, matched, err := s.tryScanIndirectObject()
	if err != nil {
		t.Fatalf("tryScanIndirectObject: unexpected error %v", err)
	}
	if matched {
		t.Error("tryScanIndirectObject: expected no match against an xref section")
	}
}

func TestScanIndirectObjectMissingEndobj(t *testing.T) {
	s := newScanner([]byte("1 0 obj\nnull"), 0)
	_, matched, err := s.tryScanIndirectObject()
	if !matched {
		t.Fatal("tryScanIndirectObject: expected the header to match")
	}
	if err == nil {
		t.Error("expected an error for a missing 'endobj' keyword")
	}
}

func TestScanIndirectObjectWithStream(t *testing.T) {
	in := "7 0 obj\n<< /Length 5 >>\nstream\nhello\nendstream\nendobj"
	s := newScanner([]byte(in), 0)
	obj, matched, err := s.tryScanIndirectObject()
	if err != nil {
		t.Fatalf("tryScanIndirectObject: %v", err)
	}
	if !matched {
		t.Fatal("expected a match")
	}
	stream, ok := obj.Value.(*Stream)
	if !ok {
		t.Fatalf("Value = %T, want *Stream", obj.Value)
	}
	if string(stream.Body) != "hello" {
		t.Errorf("Body = %q, want %q", stream.Body, "hello")
	}
}
