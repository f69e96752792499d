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

package semantics

import (
	"math"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/types"
)

// convert changes a constant into the representation of a type that it can be
// coerced to. Anything that has no conversion is returned unchanged.
func convert(v types.Value, typ *types.Type) types.Value {
	switch typ.Kind {
	case types.KindReal:
		if _, ok := v.(*types.RealValue); ok {
			return v
		}
		if n, ok := types.Number(v); ok {
			return &types.RealValue{V: n}
		}

	case types.KindInt:
		switch v.(type) {
		case *types.BoolValue, *types.EnumValue:
			n, _ := types.Number(v)
			return &types.IntValue{V: int64(n)}
		}

	case types.KindPoint:
		if p, ok := v.(*types.IPointValue); ok {
			return &types.PointValue{X: float64(p.X), Y: float64(p.Y)}
		}

	case types.KindList:
		l, ok := v.(*types.ListValue)
		if !ok || typ.Val.IsUnknown() {
			return v
		}
		values := []types.Value{}
		for _, x := range l.V {
			values = append(values, convert(x, typ.Val))
		}
		return &types.ListValue{T: typ.Val, V: values}
	}
	return v
}

// point returns the coordinates of either kind of point constant.
func point(v types.Value) (float64, float64, bool) {
	switch p := v.(type) {
	case *types.PointValue:
		return p.X, p.Y, true
	case *types.IPointValue:
		return float64(p.X), float64(p.Y), true
	}
	return 0, 0, false
}

// makePoint builds a point constant of the given point type.
func makePoint(typ *types.Type, x, y float64) types.Value {
	if typ.Kind == types.KindIPoint {
		return &types.IPointValue{X: int64(x), Y: int64(y)}
	}
	return &types.PointValue{X: x, Y: y}
}

// makeNumber builds a number constant of the given numeric type.
func makeNumber(typ *types.Type, n float64) types.Value {
	if typ.Kind == types.KindInt {
		return &types.IntValue{V: int64(n)}
	}
	return &types.RealValue{V: n}
}

// foldSign evaluates unary plus and minus.
func foldSign(op ast.Operation, v types.Value) (types.Value, bool) {
	sign := 1.0
	if op == ast.OpNegate {
		sign = -1
	}
	if x, y, ok := point(v); ok {
		return makePoint(v.Type(), sign*x, sign*y), true
	}
	n, ok := types.Number(v)
	if !ok {
		return nil, false
	}
	i, isInt := types.Integer(v)
	if !isInt {
		return &types.RealValue{V: sign * n}, true
	}
	if op != ast.OpNegate {
		return &types.IntValue{V: i}, true
	}
	if i == math.MinInt64 {
		return nil, false // no positive counterpart
	}
	return &types.IntValue{V: -i}, true
}

// foldArithmetic evaluates a binary arithmetic operator whose result type is
// already known. It returns false for anything it won't evaluate, such as an
// integer modulus by zero.
func foldArithmetic(op ast.Operation, a, b types.Value, typ *types.Type) (types.Value, bool) {
	if typ.IsPoint() {
		return foldPoint(op, a, b, typ)
	}
	if typ.Kind == types.KindInt {
		ia, oka := types.Integer(a)
		ib, okb := types.Integer(b)
		if !oka || !okb {
			return nil, false
		}
		return foldInteger(op, ia, ib)
	}

	na, oka := types.Number(a)
	nb, okb := types.Number(b)
	if !oka || !okb {
		return nil, false
	}
	switch op {
	case ast.OpAdd:
		return &types.RealValue{V: na + nb}, true
	case ast.OpSubtract:
		return &types.RealValue{V: na - nb}, true
	case ast.OpMultiply:
		return &types.RealValue{V: na * nb}, true
	case ast.OpDivide:
		return &types.RealValue{V: na / nb}, true
	case ast.OpModulus:
		return &types.RealValue{V: na - nb*math.Floor(na/nb)}, true
	case ast.OpExponent:
		return &types.RealValue{V: math.Pow(na, nb)}, true
	}
	return nil, false
}

// foldInteger evaluates integer arithmetic exactly. A result which would
// overflow is left for the target to compute.
func foldInteger(op ast.Operation, a, b int64) (types.Value, bool) {
	var r int64
	var ok bool
	switch op {
	case ast.OpAdd:
		r, ok = addInt(a, b)
	case ast.OpSubtract:
		if b == math.MinInt64 {
			return nil, false
		}
		r, ok = addInt(a, -b)
	case ast.OpMultiply:
		r, ok = mulInt(a, b)
	case ast.OpModulus:
		if b == 0 {
			return nil, false
		}
		// the result takes the sign of the divisor
		if r, ok = a%b, true; r != 0 && (r < 0) != (b < 0) {
			r += b
		}
	case ast.OpExponent:
		r, ok = powInt(a, b)
	}
	if !ok {
		return nil, false
	}
	return &types.IntValue{V: r}, true
}

func addInt(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return r, true
}

// powInt computes a**b by squaring, so it takes at most one step per bit of
// the exponent. Negative exponents aren't integers.
func powInt(a, b int64) (int64, bool) {
	if b < 0 {
		return 0, false
	}
	r := int64(1)
	for b > 0 {
		var ok bool
		if b&1 == 1 {
			if r, ok = mulInt(r, a); !ok {
				return 0, false
			}
		}
		b >>= 1
		if b == 0 {
			break
		}
		if a, ok = mulInt(a, a); !ok {
			return 0, false
		}
	}
	return r, true
}

// foldPoint evaluates the point arithmetic: sums, differences and scaling.
func foldPoint(op ast.Operation, a, b types.Value, typ *types.Type) (types.Value, bool) {
	ax, ay, pa := point(a)
	bx, by, pb := point(b)
	switch {
	case pa && pb && op == ast.OpAdd:
		return makePoint(typ, ax+bx, ay+by), true
	case pa && pb && op == ast.OpSubtract:
		return makePoint(typ, ax-bx, ay-by), true
	case pa && !pb:
		n, ok := types.Number(b)
		if !ok {
			return nil, false
		}
		if op == ast.OpDivide {
			return makePoint(typ, ax/n, ay/n), true
		}
		return makePoint(typ, ax*n, ay*n), true
	case !pa && pb:
		n, ok := types.Number(a)
		if !ok {
			return nil, false
		}
		return makePoint(typ, n*bx, n*by), true
	}
	return nil, false
}

// foldComparison evaluates the ordering and equality operators.
func foldComparison(op ast.Operation, a, b types.Value) (types.Value, bool) {
	na, oka := types.Number(a)
	nb, okb := types.Number(b)
	if oka && okb {
		var v bool
		switch op {
		case ast.OpLessThan:
			v = na < nb
		case ast.OpGreaterThan:
			v = na > nb
		case ast.OpLessEqual:
			v = na <= nb
		case ast.OpGreaterEqual:
			v = na >= nb
		case ast.OpEqual:
			v = na == nb
		case ast.OpNotEqual:
			v = na != nb
		}
		return &types.BoolValue{V: v}, true
	}

	if op != ast.OpEqual && op != ast.OpNotEqual {
		return nil, false
	}
	var equal bool
	if ax, ay, ok := point(a); ok {
		bx, by, ok := point(b)
		if !ok {
			return nil, false
		}
		equal = ax == bx && ay == by
	} else {
		equal = a.Cmp(b) == nil
	}
	return &types.BoolValue{V: equal == (op == ast.OpEqual)}, true
}
