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
)

// CanCoerceTo returns true if a value of this type can be used where a value
// of the other type is expected. The relation is directed: int coerces to
// real, but real does not coerce to int. The unknown type coerces both ways
// with everything except void, functions, actions and strings.
func (obj *Type) CanCoerceTo(typ *Type) bool {
	if obj == nil || typ == nil {
		return false
	}
	if obj.Kind == KindUnknown {
		return !typ.isOpaque()
	}
	if typ.Kind == KindUnknown {
		return !obj.isOpaque()
	}

	switch obj.Kind {
	case KindInt:
		return typ.Kind == KindReal || typ.Kind == KindInt || typ.Kind == KindUser
	case KindBool:
		return typ.Kind == KindReal || typ.Kind == KindInt || typ.Kind == KindBool
	case KindIPoint:
		return typ.Kind == KindPoint || typ.Kind == KindIPoint
	case KindUser:
		if typ.Kind == KindReal || typ.Kind == KindInt {
			return true // enums are ordinals
		}
		return typ.Kind == KindUser && typ.Name == obj.Name
	case KindList:
		if typ.Kind != KindList {
			return false
		}
		return obj.Val.CanCoerceTo(typ.Val)
	}

	return obj.Cmp(typ) == nil
}

// isOpaque is true for the types that never take part in inference.
func (obj *Type) isOpaque() bool {
	switch obj.Kind {
	case KindVoid, KindFunction, KindAction, KindStr:
		return true
	}
	return false
}

// MergeNumeric returns the smallest numeric type that both of the inputs can
// be used as. If either is still unknown, then so is the result.
func MergeNumeric(a, b *Type) (*Type, error) {
	if a.IsUnknown() || b.IsUnknown() {
		return TypeUnknown, nil
	}
	if a.CanCoerceTo(TypeInt) && b.CanCoerceTo(TypeInt) {
		return TypeInt, nil
	}
	if a.CanCoerceTo(TypeReal) && b.CanCoerceTo(TypeReal) {
		return TypeReal, nil
	}
	return nil, fmt.Errorf("cannot find a common numeric type for '%s' and '%s'", a, b)
}

// Merge returns the type that both of the inputs can be coerced to, preferring
// the wider one. It is used to find the item type of lists and the result type
// of conditionals. If either is still unknown, then so is the result.
func Merge(a, b *Type) (*Type, error) {
	if a.IsUnknown() || b.IsUnknown() {
		return TypeUnknown, nil
	}
	if a.CanCoerceTo(b) {
		return b, nil
	}
	if b.CanCoerceTo(a) {
		return a, nil
	}
	return nil, fmt.Errorf("cannot merge '%s' with '%s'", a, b)
}

// PointType returns the point type that two components of the given types
// build. Integer components make an ipoint, anything else a point.
func PointType(x, y *Type) (*Type, error) {
	typ, err := MergeNumeric(x, y)
	if err != nil {
		return nil, err
	}
	if typ.Kind == KindInt {
		return TypeIPoint, nil
	}
	return TypePoint, nil
}
