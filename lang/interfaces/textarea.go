// Figura
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
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

package interfaces

import (
	"fmt"
	"strings"
)

// Location is a position in the source text. The index is a byte offset, and
// the line and column are one-based, which is what we show to the user.
type Location struct {
	Index  int
	Line   int
	Column int
}

// StartLocation returns the location of the first character of a file.
func StartLocation() Location {
	return Location{
		Index:  0,
		Line:   1,
		Column: 1,
	}
}

// String returns the location in the form that is printed ahead of messages.
func (obj Location) String() string {
	return fmt.Sprintf("(line %d:%d)", obj.Line, obj.Column)
}

// Textarea stores the start and end locations of a token, expression or error.
// Either end may be missing.
type Textarea struct {
	Start *Location
	End   *Location
}

// Locate sets both ends of the area. Nil values are allowed.
func (obj *Textarea) Locate(start, end *Location) {
	obj.Start = start
	obj.End = end
}

// IsSet returns true if the start of the area is known.
func (obj *Textarea) IsSet() bool {
	return obj.Start != nil
}

// Byline gives a succinct representation of the area. It is mostly useful in
// debugging. To show the user the surrounding source, use HighlightText.
func (obj *Textarea) Byline() string {
	if obj.Start == nil {
		return "<unknown>"
	}
	if obj.End == nil {
		return fmt.Sprintf("@ %d:%d", obj.Start.Line, obj.Start.Column)
	}
	return fmt.Sprintf("@ %d:%d-%d:%d", obj.Start.Line, obj.Start.Column, obj.End.Line, obj.End.Column)
}

// HighlightText returns the source line of the area with the columns it covers
// underlined. If the area spans multiple lines, only the start is marked. If it
// can't generate a valid snippet, then it returns the empty string.
func (obj *Textarea) HighlightText(source string) string {
	if obj.Start == nil {
		return ""
	}
	lines := strings.Split(source, "\n")
	if obj.Start.Line < 1 || obj.Start.Line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[obj.Start.Line-1], "\r")
	text := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(text)]
	offset := obj.Start.Column - 1 - len(indent)
	if offset < 0 {
		offset = 0
	}

	width := 1
	if obj.End != nil && obj.End.Line == obj.Start.Line && obj.End.Column > obj.Start.Column {
		width = obj.End.Column - obj.Start.Column
	}

	result := &strings.Builder{}
	result.WriteString(line)
	result.WriteString("\n")
	result.WriteString(indent)
	result.WriteString(strings.Repeat(" ", offset))
	if obj.End != nil && obj.End.Line > obj.Start.Line {
		result.WriteString("^ from here ...\n")
		return result.String()
	}
	result.WriteString(strings.Repeat("^", width))
	result.WriteString("\n")
	return result.String()
}
