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

import "io"

// DictEntry is one key/value pair of a Dict, in the order it was parsed.
type DictEntry struct {
	Key   Name
	Value Object
}

// Dict represents a PDF dictionary object.
//
// The teacher library represents Dict as a plain Go map (map[Name]Object);
// spec.md §3 instead requires that parsing preserve key order and tolerate
// duplicate keys, which a map cannot express, so Dict here is an ordered
// slice of entries with map-like helpers layered on top.  A duplicate key
// is kept (not merged) and reported through Duplicates, per spec.md §9
// ("the source does not enforce uniqueness... implementers should preserve
// insertion order in the AST and emit a warning, not an error, on
// duplicates").
type Dict struct {
	entries    []DictEntry
	Duplicates []Name
}

// NewDict builds a Dict from entries, exactly as parsed (no deduplication).
func NewDict(entries ...DictEntry) Dict {
	d := Dict{}
	for _, e := range entries {
		d.add(e.Key, e.Value)
	}
	return d
}

func (d *Dict) add(key Name, value Object) {
	if _, ok := d.lookup(key); ok {
		d.Duplicates = append(d.Duplicates, key)
	}
	d.entries = append(d.entries, DictEntry{Key: key, Value: value})
}

func (d Dict) lookup(key Name) (Object, bool) {
	for i := len(d.entries) - 1; i >= 0; i-- {
		if string(d.entries[i].Key) == string(key) {
			return d.entries[i].Value, true
		}
	}
	return nil, false
}

// Get returns the value for key, using the last occurrence if the key was
// duplicated, and reports whether the key was present at all.
func (d Dict) Get(key Name) (Object, bool) {
	return d.lookup(key)
}

// Entries returns the dictionary's entries in parse order.  The returned
// slice must not be mutated.
func (d Dict) Entries() []DictEntry {
	return d.entries
}

// Len returns the number of entries, including duplicates.
func (d Dict) Len() int {
	return len(d.entries)
}

func (d Dict) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "<<"); err != nil {
		return err
	}
	for _, e := range d.entries {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := e.Key.PDF(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := formatObject(w, e.Value); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, " >>")
	return err
}
