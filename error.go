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
	"errors"
	"strconv"
)

var (
	errVersion = errors.New("unsupported PDF version")
	errNoParse = errors.New("no parse")
)

// MalformedFileError indicates that the PDF file could not be parsed.
type MalformedFileError struct {
	Err error
	Pos int64
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos >= 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid PDF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// XRefWalkError indicates that the backwards walk over a file's chain of
// cross-reference sections (see [WalkXRefChain]) could not be continued.
// The sections gathered before the failure are still returned alongside
// this error.
type XRefWalkError struct {
	Err error
	Pos int64
}

func (err *XRefWalkError) Error() string {
	tail := " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	if err.Err == nil {
		return "xref walk failed" + tail
	}
	return err.Err.Error() + tail
}

func (err *XRefWalkError) Unwrap() error {
	return err.Err
}
