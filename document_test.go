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

const minimalPDF = "%PDF-1.4\n" +
	"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
	"2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n" +
	"xref\n" +
	"0 3\n" +
	"0000000000 65535 f \n" +
	"0000000009 00000 n \n" +
	"0000000058 00000 n \n" +
	"trailer\n<< /Size 3 /Root 1 0 R >>\n" +
	"startxref\n" +
	"110\n" +
	"%%EOF"

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(minimalPDF))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc.Version != V1_4 {
		t.Errorf("Version = %v, want V1_4", doc.Version)
	}
	if len(doc.Objects) != 2 {
		t.Fatalf("len(Objects) = %d, want 2", len(doc.Objects))
	}
	if len(doc.XRefSections) != 1 {
		t.Fatalf("len(XRefSections) = %d, want 1", len(doc.XRefSections))
	}
	if len(doc.StartXRefOffsets) != 1 || doc.StartXRefOffsets[0] != 110 {
		t.Errorf("StartXRefOffsets = %v, want [110]", doc.StartXRefOffsets)
	}
}

func TestParseDocumentLookupFindsObject(t *testing.T) {
	doc, err := ParseDocument([]byte(minimalPDF))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	obj, ok := doc.Lookup(1)
	if !ok {
		t.Fatal("Lookup(1): not found")
	}
	d, ok := obj.Value.(Dict)
	if !ok {
		t.Fatalf("Value = %T, want Dict", obj.Value)
	}
	typ, _ := d.Get(Name("Type"))
	if !nameEquals(typ, "Catalog") {
		t.Errorf("Type = %#v, want Name(\"Catalog\")", typ)
	}
}

func TestParseDocumentIncrementalUpdateLookup(t *testing.T) {
	in := "%PDF-1.4\n" +
		"1 0 obj\n(version one)\nendobj\n" +
		"1 0 obj\n(version two)\nendobj\n"
	doc, err := ParseDocument([]byte(in))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	obj, ok := doc.Lookup(1)
	if !ok {
		t.Fatal("Lookup(1): not found")
	}
	if s, ok := obj.Value.(String); !ok || string(s) != "version two" {
		t.Errorf("Lookup(1).Value = %#v, want the later definition", obj.Value)
	}
}

func TestParseDocumentMissingHeader(t *testing.T) {
	if _, err := ParseDocument([]byte("1 0 obj\nnull\nendobj\n")); err == nil {
		t.Error("expected an error for a missing '%PDF-' header")
	}
}

func TestParseDocumentEmptyBody(t *testing.T) {
	if _, err := ParseDocument([]byte("%PDF-1.4\n")); err == nil {
		t.Error("expected an error when the body has no objects at all (many1 requires at least one)")
	}
}

func TestParseDocumentTrailingGarbage(t *testing.T) {
	in := "%PDF-1.4\n1 0 obj\nnull\nendobj\nnot a valid tail"
	if _, err := ParseDocument([]byte(in)); err == nil {
		t.Error("expected an error for unparseable trailing content")
	}
}

func TestParseDocumentDebugReportsFurthestPosition(t *testing.T) {
	good := "%PDF-1.4\n1 0 obj\nnull\nendobj"
	in := good + "\ngarbage that is not a valid tail"
	doc, furthest := ParseDocumentDebug([]byte(in))
	if len(doc.Objects) != 1 {
		t.Fatalf("len(Objects) = %d, want 1", len(doc.Objects))
	}
	if furthest != int64(len(good)) {
		t.Errorf("furthest = %d, want %d (end of the last successfully parsed tail)", furthest, len(good))
	}
	if furthest >= int64(len(in)) {
		t.Error("furthest should stop short of the unparseable garbage")
	}
}
