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
	"testing"
)

func TestValueString(t *testing.T) {
	testCases := []struct {
		v   Value
		exp string
	}{
		{&RealValue{V: 0}, "0"},
		{&RealValue{V: -4.25}, "-4.25"},
		{&RealValue{V: 1e21}, "1000000000000000000000"},
		{&IntValue{V: -13}, "-13"},
		{&BoolValue{V: true}, "true"},
		{&PointValue{X: 1.5, Y: -2}, "(1.5, -2)"},
		{&IPointValue{X: 1, Y: 2}, "(1, 2)"},
		{&StrValue{V: "hello\tworld"}, `"hello\tworld"`},
		{&EnumValue{Enum: "Dir", Variant: "Up"}, "Dir.Up"},
		{&ListValue{T: TypeInt, V: []Value{}}, "[]"},
		{&ListValue{T: TypeInt, V: []Value{&IntValue{V: 42}, &IntValue{V: 0}}}, "[42, 0]"},
		{&ColorValue{Model: ColorHSV, A: 120, B: 1, C: 0.5}, "hsv(120, 1, 0.5)"},
		{&SegmentValue{A: PointValue{X: 0, Y: 0}, B: PointValue{X: 1, Y: 1}}, "segment((0, 0), (1, 1))"},
		{&PolygonValue{V: []PointValue{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}, "polygon((0, 0), (1, 0), (0, 1))"},
	}
	for index, tc := range testCases {
		if s := tc.v.String(); s != tc.exp {
			t.Errorf("test #%d: expected %s, got %s", index, tc.exp, s)
		}
	}
}

func TestValueCmp(t *testing.T) {
	if err := (&IntValue{V: 1}).Cmp(&IntValue{V: 1}); err != nil {
		t.Errorf("equal ints differ: %+v", err)
	}
	if err := (&IntValue{V: 1}).Cmp(&RealValue{V: 1}); err == nil {
		t.Errorf("int and real should differ")
	}
	a := &ListValue{T: TypeInt, V: []Value{&IntValue{V: 1}, &IntValue{V: 2}}}
	b := &ListValue{T: TypeInt, V: []Value{&IntValue{V: 1}, &IntValue{V: 3}}}
	if err := a.Cmp(b); err == nil {
		t.Errorf("lists should differ")
	}
	if err := a.Cmp(a.Copy()); err != nil {
		t.Errorf("copy should match: %+v", err)
	}
	if err := (&EnumValue{Enum: "Dir", Variant: "Up"}).Cmp(&EnumValue{Enum: "Dir", Variant: "Down", Ordinal: 1}); err == nil {
		t.Errorf("variants should differ")
	}
	if err := (&ColorValue{A: 1}).Cmp(&ColorValue{Model: ColorHSV, A: 1}); err == nil {
		t.Errorf("color models should differ")
	}
}

func TestNumber(t *testing.T) {
	testCases := []struct {
		v   Value
		exp float64
		ok  bool
	}{
		{&RealValue{V: 2.5}, 2.5, true},
		{&IntValue{V: -3}, -3, true},
		{&BoolValue{V: true}, 1, true},
		{&BoolValue{V: false}, 0, true},
		{&EnumValue{Enum: "Dir", Variant: "Down", Ordinal: 1}, 1, true},
		{&StrValue{V: "1"}, 0, false},
		{&PointValue{}, 0, false},
	}
	for index, tc := range testCases {
		f, ok := Number(tc.v)
		if ok != tc.ok || f != tc.exp {
			t.Errorf("test #%d: expected %v (%t), got %v (%t)", index, tc.exp, tc.ok, f, ok)
		}
	}
}
