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

// Package types provides the type system of the language, along with the
// constant values that the analyzer folds expressions into.
package types

import (
	"fmt"
)

// Basic types defined here as a convenience for use with Type.Cmp(X).
var (
	TypeUnknown = &Type{Kind: KindUnknown}
	TypeVoid    = &Type{Kind: KindVoid}
	TypeReal    = &Type{Kind: KindReal}
	TypeInt     = &Type{Kind: KindInt}
	TypeBool    = &Type{Kind: KindBool}
	TypePoint   = &Type{Kind: KindPoint}
	TypeIPoint  = &Type{Kind: KindIPoint}
	TypeColor   = &Type{Kind: KindColor}
	TypePolygon = &Type{Kind: KindPolygon}
	TypeSegment = &Type{Kind: KindSegment}
	TypeStr     = &Type{Kind: KindStr}
)

// The Kind represents the base type of each value.
type Kind int

// Each Kind represents a type in the language type system.
const (
	KindUnknown Kind = iota
	KindVoid
	KindReal
	KindInt
	KindBool
	KindPoint
	KindIPoint
	KindColor
	KindPolygon
	KindSegment
	KindStr
	KindList
	KindFunction
	KindAction
	KindUser
)

// String returns the name of the kind.
func (obj Kind) String() string {
	switch obj {
	case KindUnknown:
		return "unknown"
	case KindVoid:
		return "void"
	case KindReal:
		return "real"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindPoint:
		return "point"
	case KindIPoint:
		return "ipoint"
	case KindColor:
		return "color"
	case KindPolygon:
		return "polygon"
	case KindSegment:
		return "segment"
	case KindStr:
		return "str"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindAction:
		return "action"
	case KindUser:
		return "user"
	}
	return fmt.Sprintf("Kind(%d)", int(obj))
}

// Type is the datastructure representing any type. It is recursive for lists.
type Type struct {
	Kind Kind

	Val  *Type  // if Kind == List, use Val only
	Name string // if Kind == Function, Action or User
}

// NewType returns the type for a type name as written in source code. Any name
// that isn't a builtin type refers to a user defined enum.
func NewType(name string) *Type {
	switch name {
	case "real":
		return TypeReal
	case "int":
		return TypeInt
	case "bool":
		return TypeBool
	case "point":
		return TypePoint
	case "ipoint":
		return TypeIPoint
	case "color":
		return TypeColor
	case "polygon":
		return TypePolygon
	case "segment":
		return TypeSegment
	case "str":
		return TypeStr
	}
	return NewUser(name)
}

// NewList returns a list type of the given item type.
func NewList(val *Type) *Type {
	return &Type{
		Kind: KindList,
		Val:  val,
	}
}

// NewUser returns the type of the named enum.
func NewUser(name string) *Type {
	return &Type{
		Kind: KindUser,
		Name: name,
	}
}

// NewFunction returns the type of the named const or let that takes arguments.
func NewFunction(name string) *Type {
	return &Type{
		Kind: KindFunction,
		Name: name,
	}
}

// NewAction returns the type of the named action.
func NewAction(name string) *Type {
	return &Type{
		Kind: KindAction,
		Name: name,
	}
}

// String returns the textual representation for this type, as it would appear
// in source code where possible.
func (obj *Type) String() string {
	switch obj.Kind {
	case KindUnknown:
		return "?"
	case KindVoid, KindReal, KindInt, KindBool, KindPoint, KindIPoint, KindColor, KindPolygon, KindSegment, KindStr:
		return obj.Kind.String()

	case KindList:
		if obj.Val == nil {
			panic("malformed list type")
		}
		return "[" + obj.Val.String() + "]"

	case KindFunction:
		return fmt.Sprintf("<function %s>", obj.Name)
	case KindAction:
		return fmt.Sprintf("<action %s>", obj.Name)
	case KindUser:
		return obj.Name
	}

	panic("malformed type")
}

// Cmp compares this type to another, and errors if they are not identical.
func (obj *Type) Cmp(typ *Type) error {
	if obj == nil || typ == nil {
		return fmt.Errorf("cannot compare to nil")
	}
	if obj.Kind != typ.Kind {
		return fmt.Errorf("base kind does not match (%s != %s)", obj.Kind, typ.Kind)
	}
	switch obj.Kind {
	case KindList:
		if obj.Val == nil || typ.Val == nil {
			panic("malformed list type")
		}
		return obj.Val.Cmp(typ.Val)

	case KindFunction, KindAction, KindUser:
		if obj.Name != typ.Name {
			return fmt.Errorf("name does not match (%s != %s)", obj.Name, typ.Name)
		}
	}
	return nil
}

// Copy copies this type so that inplace modification won't affect the original.
func (obj *Type) Copy() *Type {
	typ := &Type{
		Kind: obj.Kind,
		Name: obj.Name,
	}
	if obj.Val != nil {
		typ.Val = obj.Val.Copy()
	}
	return typ
}

// IsUnknown returns true if this type still needs to be inferred.
func (obj *Type) IsUnknown() bool {
	return obj == nil || obj.Kind == KindUnknown
}

// IsNumeric returns true for the types that arithmetic operates on directly.
func (obj *Type) IsNumeric() bool {
	switch obj.Kind {
	case KindReal, KindInt, KindBool, KindUser:
		return true
	}
	return false
}

// IsPoint returns true for both kinds of point.
func (obj *Type) IsPoint() bool {
	return obj.Kind == KindPoint || obj.Kind == KindIPoint
}
