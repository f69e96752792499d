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

//go:build !root

package interfaces

import (
	"testing"
)

func TestCompileErrorString(t *testing.T) {
	start := &Location{Index: 12, Line: 2, Column: 5}
	end := &Location{Index: 15, Line: 2, Column: 8}
	if s := NewError("boom", start, end).Error(); s != "(line 2:5) boom" {
		t.Errorf("unexpected message: %s", s)
	}
	if s := NewError("boom", nil, nil).Error(); s != "boom" {
		t.Errorf("unexpected message: %s", s)
	}
	if s := Errorf(start, nil, "expected %d", 3).Error(); s != "(line 2:5) expected 3" {
		t.Errorf("unexpected message: %s", s)
	}
}

func TestConstError(t *testing.T) {
	const errFoo = Error("foo")
	var err error = errFoo
	if err.Error() != "foo" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestHighlightText(t *testing.T) {
	source := "var a = 1;\n\tpublic { a + ; }\n"
	start := &Location{Index: 20, Line: 2, Column: 11}
	end := &Location{Index: 23, Line: 2, Column: 14}
	obj := NewError("expected an operand", start, end)

	exp := "\tpublic { a + ; }\n\t         ^^^\n"
	if s := obj.HighlightText(source); s != exp {
		t.Errorf("unexpected highlight:\n%q\n%q", s, exp)
	}
	if s := obj.Byline(); s != "@ 2:11-2:14" {
		t.Errorf("unexpected byline: %s", s)
	}
}

func TestHighlightTextMissing(t *testing.T) {
	obj := NewError("boom", nil, nil)
	if s := obj.HighlightText("abc"); s != "" {
		t.Errorf("expected no highlight, got: %q", s)
	}
	obj = NewError("boom", &Location{Line: 9, Column: 1}, nil)
	if s := obj.HighlightText("abc"); s != "" {
		t.Errorf("expected no highlight, got: %q", s)
	}
}
