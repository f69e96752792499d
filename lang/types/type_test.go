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

package types

import (
	"fmt"
	"testing"
)

func TestCanCoerceTo0(t *testing.T) {
	type test struct { // an individual test
		from *Type
		to   *Type
		exp  bool
	}
	testCases := []test{
		{TypeInt, TypeReal, true},
		{TypeReal, TypeInt, false},
		{TypeBool, TypePoint, false},
		{TypeBool, TypeReal, true},
		{TypeBool, TypeInt, true},
		{TypeReal, TypeBool, false},
		{NewList(TypeInt), NewList(TypeReal), true},
		{NewList(TypeReal), NewList(TypeInt), false},
		{NewList(TypeInt), TypeInt, false},
		{TypeIPoint, TypePoint, true},
		{TypePoint, TypeIPoint, false},
		{TypeInt, NewUser("Dir"), true},
		{NewUser("Dir"), TypeInt, true},
		{NewUser("Dir"), TypeReal, true},
		{NewUser("Dir"), NewUser("Dir"), true},
		{NewUser("Dir"), NewUser("Mode"), false},
		{TypeUnknown, TypeReal, true},
		{TypeReal, TypeUnknown, true},
		{TypeUnknown, TypeStr, false},
		{TypeStr, TypeUnknown, false},
		{TypeUnknown, NewAction("a"), false},
		{TypeVoid, TypeUnknown, false},
		{TypeStr, TypeStr, true},
		{TypeColor, TypeColor, true},
		{TypeColor, TypeReal, false},
		{NewList(TypeUnknown), NewList(TypePoint), true},
	}

	for index, tc := range testCases {
		if got := tc.from.CanCoerceTo(tc.to); got != tc.exp {
			t.Errorf("test #%d: %s to %s: expected %t, got %t", index, tc.from, tc.to, tc.exp, got)
		}
	}
}

func TestMerge0(t *testing.T) {
	type test struct { // an individual test
		name    string
		a, b    *Type
		numeric bool
		exp     *Type // nil for failure
	}
	testCases := []test{
		{"int int", TypeInt, TypeInt, true, TypeInt},
		{"int real", TypeInt, TypeReal, true, TypeReal},
		{"bool int", TypeBool, TypeInt, true, TypeInt},
		{"unknown", TypeUnknown, TypeReal, true, TypeUnknown},
		{"enum int", NewUser("Dir"), TypeInt, true, TypeInt},
		{"point real", TypePoint, TypeReal, true, nil},
		{"str", TypeStr, TypeStr, true, nil},
		{"merge int real", TypeInt, TypeReal, false, TypeReal},
		{"merge real int", TypeReal, TypeInt, false, TypeReal},
		{"merge points", TypePoint, TypeIPoint, false, TypePoint},
		{"merge lists", NewList(TypeInt), NewList(TypeReal), false, NewList(TypeReal)},
		{"merge unknown", TypeStr, TypeUnknown, false, TypeUnknown},
		{"merge str point", TypeStr, TypePoint, false, nil},
		{"merge colors", TypeColor, TypeColor, false, TypeColor},
	}

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			merge := Merge
			if tc.numeric {
				merge = MergeNumeric
			}
			typ, err := merge(tc.a, tc.b)
			if tc.exp == nil {
				if err == nil {
					t.Errorf("test #%d: expected failure, got: %s", index, typ)
				}
				return
			}
			if err != nil {
				t.Errorf("test #%d: merge failed: %+v", index, err)
				return
			}
			if err := typ.Cmp(tc.exp); err != nil {
				t.Errorf("test #%d: expected %s, got %s: %+v", index, tc.exp, typ, err)
			}
		})
	}
}

func TestPointType(t *testing.T) {
	if typ, err := PointType(TypeInt, TypeBool); err != nil || typ.Cmp(TypeIPoint) != nil {
		t.Errorf("expected ipoint, got %v (%v)", typ, err)
	}
	if typ, err := PointType(TypeInt, TypeReal); err != nil || typ.Cmp(TypePoint) != nil {
		t.Errorf("expected point, got %v (%v)", typ, err)
	}
	if typ, err := PointType(TypeUnknown, TypeInt); err != nil || typ.Cmp(TypePoint) != nil {
		t.Errorf("expected point, got %v (%v)", typ, err)
	}
	if _, err := PointType(TypeStr, TypeInt); err == nil {
		t.Errorf("expected failure for a str component")
	}
}

func TestTypeString(t *testing.T) {
	testCases := []struct {
		exp string
		typ *Type
	}{
		{"?", TypeUnknown},
		{"void", TypeVoid},
		{"real", TypeReal},
		{"ipoint", TypeIPoint},
		{"[int]", NewList(TypeInt)},
		{"[[?]]", NewList(NewList(TypeUnknown))},
		{"Dir", NewUser("Dir")},
		{"<function f>", NewFunction("f")},
		{"<action next>", NewAction("next")},
		{"segment", TypeSegment},
		{"[color]", NewList(TypeColor)},
		{"str", NewType("str")},
		{"polygon", NewType("polygon")},
		{"SomethingElse", NewType("SomethingElse")},
		{"[<action a>]", NewList(NewAction("a"))},
		{"[[Dir]]", NewList(NewList(NewUser("Dir")))},
		{"bool", NewType("bool")},
		{"[point]", NewList(NewType("point"))},
		{"color", NewType("color")},
		{"<function scale>", NewFunction("scale")},
	}
	for index, tc := range testCases {
		if s := tc.typ.String(); s != tc.exp {
			t.Errorf("test #%d: expected %s, got %s", index, tc.exp, s)
		}
	}
}

func TestTypeCmp(t *testing.T) {
	if err := NewList(TypeInt).Cmp(NewList(TypeInt)); err != nil {
		t.Errorf("lists should match: %+v", err)
	}
	if err := NewList(TypeInt).Cmp(NewList(TypeReal)); err == nil {
		t.Errorf("lists should differ")
	}
	if err := NewUser("a").Cmp(NewUser("b")); err == nil {
		t.Errorf("enums should differ")
	}
	typ := NewList(TypeInt)
	c := typ.Copy()
	c.Val = TypeReal
	if err := typ.Cmp(NewList(TypeInt)); err != nil {
		t.Errorf("copy changed the original: %+v", err)
	}
}
