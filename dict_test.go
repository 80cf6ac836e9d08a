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

import (
	"strings"
	"testing"
)

func TestDictFormat(t *testing.T) {
	d := NewDict(
		DictEntry{Key: Name("Type"), Value: Name("Page")},
		DictEntry{Key: Name("bad"), Value: nil},
	)
	got := Format(d)
	if !strings.Contains(got, "/Type /Page") {
		t.Errorf("expected /Type /Page in %q", got)
	}
	if !strings.Contains(got, "/bad null") {
		t.Errorf("expected the nil value to be written as 'null', got %q", got)
	}
}

func TestDictOrderPreserved(t *testing.T) {
	d := NewDict(
		DictEntry{Key: Name("Z"), Value: Integer(1)},
		DictEntry{Key: Name("A"), Value: Integer(2)},
		DictEntry{Key: Name("M"), Value: Integer(3)},
	)
	want := []string{"Z", "A", "M"}
	for i, e := range d.Entries() {
		if string(e.Key) != want[i] {
			t.Errorf("entry %d: key = %q, want %q", i, e.Key, want[i])
		}
	}
}

func TestDictDuplicateKeysTolerated(t *testing.T) {
	d := NewDict(
		DictEntry{Key: Name("Length"), Value: Integer(1)},
		DictEntry{Key: Name("Length"), Value: Integer(2)},
	)
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (duplicates are kept, not merged)", d.Len())
	}
	if len(d.Duplicates) != 1 || string(d.Duplicates[0]) != "Length" {
		t.Errorf("Duplicates = %v, want [Length]", d.Duplicates)
	}
	v, ok := d.Get(Name("Length"))
	if !ok {
		t.Fatal("Get(Length): not found")
	}
	if v != Integer(2) {
		t.Errorf("Get(Length) = %v, want the last occurrence (2)", v)
	}
}

func TestDictGetMissing(t *testing.T) {
	d := NewDict(DictEntry{Key: Name("A"), Value: Integer(1)})
	if _, ok := d.Get(Name("B")); ok {
		t.Error("Get(B): expected not found")
	}
}
