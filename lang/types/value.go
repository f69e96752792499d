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

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Value represents a constant that is known at compile time. The analyzer folds
// literal expressions into these, and the target compiler renders them.
type Value interface {
	fmt.Stringer // String() string (for display purposes)
	Type() *Type
	Cmp(Value) error // error if the two values aren't the same
	Copy() Value     // returns a copy of this value
}

// Number returns the numeric value of a constant that can be used as a real,
// and false if it can't be.
func Number(v Value) (float64, bool) {
	switch x := v.(type) {
	case *RealValue:
		return x.V, true
	case *IntValue:
		return float64(x.V), true
	case *BoolValue:
		if x.V {
			return 1, true
		}
		return 0, true
	case *EnumValue:
		return float64(x.Ordinal), true
	}
	return 0, false
}

// Integer returns the exact value of an integer like constant. Reals are not
// integers, even when they have no fraction.
func Integer(v Value) (int64, bool) {
	switch x := v.(type) {
	case *IntValue:
		return x.V, true
	case *BoolValue:
		if x.V {
			return 1, true
		}
		return 0, true
	case *EnumValue:
		return int64(x.Ordinal), true
	}
	return 0, false
}

// cmpType is the common first step of every Cmp method.
func cmpType(obj, val Value) error {
	if val == nil {
		return fmt.Errorf("cannot compare to nil")
	}
	if err := obj.Type().Cmp(val.Type()); err != nil {
		return err
	}
	return nil
}

// RealValue represents a real number.
type RealValue struct {
	V float64
}

// String returns a visual representation of this value.
func (obj *RealValue) String() string {
	return strconv.FormatFloat(obj.V, 'f', -1, 64)
}

// Type returns the type data structure that represents this type.
func (obj *RealValue) Type() *Type { return TypeReal }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *RealValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if obj.V != val.(*RealValue).V {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *RealValue) Copy() Value { return &RealValue{V: obj.V} }

// IntValue represents an integer.
type IntValue struct {
	V int64
}

// String returns a visual representation of this value.
func (obj *IntValue) String() string { return strconv.FormatInt(obj.V, 10) }

// Type returns the type data structure that represents this type.
func (obj *IntValue) Type() *Type { return TypeInt }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *IntValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if obj.V != val.(*IntValue).V {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *IntValue) Copy() Value { return &IntValue{V: obj.V} }

// BoolValue represents a boolean.
type BoolValue struct {
	V bool
}

// String returns a visual representation of this value.
func (obj *BoolValue) String() string { return strconv.FormatBool(obj.V) }

// Type returns the type data structure that represents this type.
func (obj *BoolValue) Type() *Type { return TypeBool }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *BoolValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if obj.V != val.(*BoolValue).V {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *BoolValue) Copy() Value { return &BoolValue{V: obj.V} }

// PointValue represents a point with real coordinates.
type PointValue struct {
	X float64
	Y float64
}

// String returns a visual representation of this value.
func (obj *PointValue) String() string {
	x := strconv.FormatFloat(obj.X, 'f', -1, 64)
	y := strconv.FormatFloat(obj.Y, 'f', -1, 64)
	return fmt.Sprintf("(%s, %s)", x, y)
}

// Type returns the type data structure that represents this type.
func (obj *PointValue) Type() *Type { return TypePoint }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *PointValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if p := val.(*PointValue); obj.X != p.X || obj.Y != p.Y {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *PointValue) Copy() Value { return &PointValue{X: obj.X, Y: obj.Y} }

// IPointValue represents a point with integer coordinates.
type IPointValue struct {
	X int64
	Y int64
}

// String returns a visual representation of this value.
func (obj *IPointValue) String() string { return fmt.Sprintf("(%d, %d)", obj.X, obj.Y) }

// Type returns the type data structure that represents this type.
func (obj *IPointValue) Type() *Type { return TypeIPoint }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *IPointValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if p := val.(*IPointValue); obj.X != p.X || obj.Y != p.Y {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *IPointValue) Copy() Value { return &IPointValue{X: obj.X, Y: obj.Y} }

// ColorModel says how the three channels of a color are interpreted.
type ColorModel int

const (
	// ColorRGB stores red, green and blue.
	ColorRGB ColorModel = iota

	// ColorHSV stores hue, saturation and value.
	ColorHSV
)

// ColorValue represents a color in either model.
type ColorValue struct {
	Model ColorModel
	A     float64 // red or hue
	B     float64 // green or saturation
	C     float64 // blue or value
}

// String returns a visual representation of this value.
func (obj *ColorValue) String() string {
	name := "rgb"
	if obj.Model == ColorHSV {
		name = "hsv"
	}
	return fmt.Sprintf("%s(%v, %v, %v)", name, obj.A, obj.B, obj.C)
}

// Type returns the type data structure that represents this type.
func (obj *ColorValue) Type() *Type { return TypeColor }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *ColorValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if c := val.(*ColorValue); *obj != *c {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *ColorValue) Copy() Value {
	c := *obj
	return &c
}

// PolygonValue represents a polygon by its vertices.
type PolygonValue struct {
	V []PointValue
}

// String returns a visual representation of this value.
func (obj *PolygonValue) String() string {
	s := []string{}
	for i := range obj.V {
		s = append(s, obj.V[i].String())
	}
	return fmt.Sprintf("polygon(%s)", strings.Join(s, ", "))
}

// Type returns the type data structure that represents this type.
func (obj *PolygonValue) Type() *Type { return TypePolygon }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *PolygonValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	p := val.(*PolygonValue)
	if len(obj.V) != len(p.V) {
		return fmt.Errorf("vertex count differs (%d != %d)", len(obj.V), len(p.V))
	}
	for i := range obj.V {
		if obj.V[i] != p.V[i] {
			return fmt.Errorf("vertex %d differs", i)
		}
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *PolygonValue) Copy() Value {
	return &PolygonValue{V: append([]PointValue{}, obj.V...)}
}

// SegmentValue represents a line segment between two points.
type SegmentValue struct {
	A PointValue
	B PointValue
}

// String returns a visual representation of this value.
func (obj *SegmentValue) String() string {
	return fmt.Sprintf("segment(%s, %s)", obj.A.String(), obj.B.String())
}

// Type returns the type data structure that represents this type.
func (obj *SegmentValue) Type() *Type { return TypeSegment }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *SegmentValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if s := val.(*SegmentValue); obj.A != s.A || obj.B != s.B {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *SegmentValue) Copy() Value { return &SegmentValue{A: obj.A, B: obj.B} }

// StrValue represents a string.
type StrValue struct {
	V string
}

// String returns a visual representation of this value.
func (obj *StrValue) String() string { return strconv.Quote(obj.V) }

// Type returns the type data structure that represents this type.
func (obj *StrValue) Type() *Type { return TypeStr }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *StrValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if obj.V != val.(*StrValue).V {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *StrValue) Copy() Value { return &StrValue{V: obj.V} }

// ListValue represents a homogeneous list. T is the item type.
type ListValue struct {
	T *Type
	V []Value
}

// String returns a visual representation of this value.
func (obj *ListValue) String() string {
	s := []string{}
	for _, x := range obj.V {
		s = append(s, x.String())
	}
	return fmt.Sprintf("[%s]", strings.Join(s, ", "))
}

// Type returns the type data structure that represents this type.
func (obj *ListValue) Type() *Type { return NewList(obj.T) }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *ListValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	l := val.(*ListValue)
	if len(obj.V) != len(l.V) {
		return fmt.Errorf("list lengths differ (%d != %d)", len(obj.V), len(l.V))
	}
	for i := range obj.V {
		if err := obj.V[i].Cmp(l.V[i]); err != nil {
			return fmt.Errorf("index %d differs: %v", i, err)
		}
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *ListValue) Copy() Value {
	v := []Value{}
	for _, x := range obj.V {
		v = append(v, x.Copy())
	}
	return &ListValue{T: obj.T.Copy(), V: v}
}

// EnumValue represents one variant of a user defined enum. The ordinal is the
// position of the variant in the declaration, starting at zero.
type EnumValue struct {
	Enum    string
	Variant string
	Ordinal int
}

// String returns a visual representation of this value.
func (obj *EnumValue) String() string { return obj.Enum + "." + obj.Variant }

// Type returns the type data structure that represents this type.
func (obj *EnumValue) Type() *Type { return NewUser(obj.Enum) }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *EnumValue) Cmp(val Value) error {
	if err := cmpType(obj, val); err != nil {
		return err
	}
	if obj.Variant != val.(*EnumValue).Variant {
		return fmt.Errorf("values differ (%s != %s)", obj, val)
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *EnumValue) Copy() Value {
	e := *obj
	return &e
}
