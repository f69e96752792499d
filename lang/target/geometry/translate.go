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

package geometry

import (
	"fmt"
	"strings"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/latex"
	"github.com/purpleidea/figura/lang/types"
)

// base is the letter that every user name is a subscript of.
const base = 'X'

// fillName is the iteration variable of a `[v; n]` fill. User names can't
// start with a digit, so it never collides with one.
const fillName = "0"

// name returns the target form of a user name, `X_{name}` with the
// underscores removed.
func name(s string) latex.SyntaxNode {
	return &latex.SubscriptNode{
		Base:   &latex.Letter{Value: base},
		Script: &latex.Alphanumeric{Value: strings.ReplaceAll(s, "_", "")},
	}
}

func decimal(v float64) latex.SyntaxNode { return &latex.Decimal{Value: v} }

func seq(elements ...latex.SyntaxNode) *latex.Sequence {
	return &latex.Sequence{Elements: elements}
}

func paren(elements ...latex.SyntaxNode) latex.SyntaxNode {
	return &latex.Paren{Content: seq(elements...)}
}

func call(command string, args ...latex.SyntaxNode) latex.SyntaxNode {
	return &latex.Call{Callee: &latex.Command{Name: command}, Args: seq(args...)}
}

// piecewise builds `{cond: value, ..., default}`. The values alternate with the
// conditions they belong to.
func piecewise(branches ...latex.SyntaxNode) latex.SyntaxNode {
	return &latex.Piecewise{Content: seq(branches...)}
}

func colon(lhs, rhs latex.SyntaxNode) latex.SyntaxNode {
	return &latex.Colon{Lhs: lhs, Rhs: rhs}
}

func equality(lhs, rhs latex.SyntaxNode) latex.SyntaxNode {
	return &latex.Equality{Lhs: lhs, Rhs: rhs}
}

func point(x, y float64) latex.SyntaxNode { return paren(decimal(x), decimal(y)) }

// translateValue returns the target form of a constant.
func translateValue(v types.Value) (latex.SyntaxNode, error) {
	switch x := v.(type) {
	case *types.RealValue:
		return decimal(x.V), nil
	case *types.IntValue:
		return decimal(float64(x.V)), nil
	case *types.BoolValue:
		if x.V {
			return decimal(1), nil
		}
		return decimal(0), nil
	case *types.PointValue:
		return point(x.X, x.Y), nil
	case *types.IPointValue:
		return point(float64(x.X), float64(x.Y)), nil

	case *types.ColorValue:
		command := "rgb"
		if x.Model == types.ColorHSV {
			command = "hsv"
		}
		return call(command, decimal(x.A), decimal(x.B), decimal(x.C)), nil

	case *types.PolygonValue:
		vertices := []latex.SyntaxNode{}
		for _, p := range x.V {
			vertices = append(vertices, point(p.X, p.Y))
		}
		return call("polygon", vertices...), nil

	case *types.SegmentValue:
		return call("segment", point(x.A.X, x.A.Y), point(x.B.X, x.B.Y)), nil

	case *types.StrValue:
		return &latex.Alphanumeric{Value: x.V}, nil

	case *types.ListValue:
		items := []latex.SyntaxNode{}
		for _, item := range x.V {
			node, err := translateValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, node)
		}
		return &latex.List{Content: seq(items...)}, nil

	case *types.EnumValue:
		return decimal(float64(x.Ordinal)), nil
	}
	return nil, fmt.Errorf("no translation for constant %s", v)
}

// translateExpr returns the target form of an expression.
func (obj *compiler) translateExpr(expr *ast.Expr) (latex.SyntaxNode, error) {
	switch expr.Kind {
	case ast.ExprLiteral:
		return translateValue(expr.Value)
	case ast.ExprName:
		return name(expr.Name), nil
	case ast.ExprTimeStep:
		return &latex.Alphanumeric{Value: ast.TimeStep}, nil
	}

	switch expr.Op {
	case ast.OpListFill:
		return obj.translateFill(expr)
	case ast.OpListMap:
		return obj.translateMap(expr)
	case ast.OpListFilter:
		return obj.translateFilter(expr)
	case ast.OpExclusiveRange, ast.OpInclusiveRange:
		return obj.translateRange(expr)

	case ast.OpMemberAccess:
		lhs, err := obj.translateExpr(expr.Operands[0])
		if err != nil {
			return nil, err
		}
		member := []rune(expr.Operands[1].Name)
		return &latex.Dot{Lhs: lhs, Rhs: &latex.Letter{Value: member[0]}}, nil

	case ast.OpBuiltIn:
		return &latex.Command{Name: expr.Operands[0].Name}, nil

	case ast.OpActionCall:
		return obj.translateCall(expr.Operands[0], expr.Operands[1:])

	case ast.OpWith:
		return obj.translateWith(expr)
	}

	operands := []latex.SyntaxNode{}
	for _, x := range expr.Operands {
		node, err := obj.translateExpr(x)
		if err != nil {
			return nil, err
		}
		operands = append(operands, node)
	}

	switch expr.Op {
	case ast.OpPointLiteral:
		return paren(operands...), nil
	case ast.OpListLiteral:
		return &latex.List{Content: seq(operands...)}, nil
	case ast.OpCall:
		// a parameterless definition is referenced by its bare name
		if callee := expr.Operands[0]; callee.Kind == ast.ExprName && len(operands) == 1 {
			if sig, exists := obj.sigs.Lookup(callee.Name); exists && len(sig.Params) == 0 {
				return operands[0], nil
			}
		}
		return &latex.Call{Callee: operands[0], Args: seq(operands[1:]...)}, nil
	case ast.OpIndex:
		return &latex.Index{Indexee: operands[0], Index: operands[1]}, nil

	case ast.OpPosate:
		return &latex.Paren{Content: &latex.Pos{Value: operands[0]}}, nil
	case ast.OpNegate:
		return &latex.Paren{Content: &latex.Neg{Value: operands[0]}}, nil
	case ast.OpNot:
		return piecewise(equality(operands[0], decimal(0)), decimal(0)), nil

	case ast.OpExponent:
		return &latex.SuperscriptNode{Base: operands[0], Script: operands[1]}, nil
	case ast.OpMultiply:
		return &latex.Paren{Content: &latex.Mul{Lhs: operands[0], Rhs: operands[1]}}, nil
	case ast.OpDivide:
		return &latex.FracNode{Numerator: operands[0], Denominator: operands[1]}, nil
	case ast.OpModulus:
		return call("mod", operands[0], operands[1]), nil
	case ast.OpAdd:
		return &latex.Paren{Content: &latex.Add{Lhs: operands[0], Rhs: operands[1]}}, nil
	case ast.OpSubtract:
		return &latex.Paren{Content: &latex.Sub{Lhs: operands[0], Rhs: operands[1]}}, nil

	case ast.OpLessThan:
		return compare(operands[0], latex.Less, operands[1]), nil
	case ast.OpGreaterThan:
		return compare(operands[0], latex.Greater, operands[1]), nil
	case ast.OpLessEqual:
		return compare(operands[0], latex.LessEqual, operands[1]), nil
	case ast.OpGreaterEqual:
		return compare(operands[0], latex.GreaterEqual, operands[1]), nil
	case ast.OpEqual:
		return piecewise(equality(operands[0], operands[1]), decimal(0)), nil
	case ast.OpNotEqual:
		// there is no inequality test, so negate the equality
		return piecewise(colon(equality(operands[0], operands[1]), decimal(0)), decimal(1)), nil
	case ast.OpAnd:
		return piecewise(colon(equality(operands[0], decimal(0)), decimal(0)), operands[1]), nil
	case ast.OpOr:
		return piecewise(colon(equality(operands[0], decimal(1)), decimal(1)), operands[1]), nil

	case ast.OpConditional:
		branches := []latex.SyntaxNode{}
		for len(operands) > 1 {
			branches = append(branches, colon(equality(operands[0], decimal(1)), operands[1]))
			operands = operands[2:]
		}
		branches = append(branches, operands...) // the default, if any
		return piecewise(branches...), nil

	case ast.OpAssignment:
		return equality(operands[0], operands[1]), nil
	case ast.OpUpdate:
		return &latex.RightArrow{Lhs: operands[0], Rhs: operands[1]}, nil
	}
	return nil, fmt.Errorf("no translation for operation %s", expr.Op)
}

// compare builds the piecewise form of an ordering, `{a < b, 0}`.
func compare(lhs latex.SyntaxNode, typ latex.InequalityType, rhs latex.SyntaxNode) latex.SyntaxNode {
	return piecewise(&latex.InequalityChain{Lhs: lhs, Type: typ, Rhs: rhs}, decimal(0))
}

// translateCall builds a call to an action. A parameterless action is called
// by its bare name.
func (obj *compiler) translateCall(callee *ast.Expr, args []*ast.Expr) (latex.SyntaxNode, error) {
	target := name(callee.Name)
	if sig, exists := obj.sigs.Lookup(callee.Name); exists && len(sig.Params) == 0 && len(args) == 0 {
		return target, nil
	}
	nodes := []latex.SyntaxNode{}
	for _, x := range args {
		node, err := obj.translateExpr(x)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return &latex.Call{Callee: target, Args: seq(nodes...)}, nil
}

// translateFill builds `[v for X_0 = [1...n]]`.
func (obj *compiler) translateFill(expr *ast.Expr) (latex.SyntaxNode, error) {
	item, err := obj.translateExpr(expr.Operands[0])
	if err != nil {
		return nil, err
	}
	count, err := obj.translateExpr(expr.Operands[1])
	if err != nil {
		return nil, err
	}
	source := &latex.List{Content: &latex.Ellipsis{Lhs: decimal(1), Rhs: count}}
	return &latex.List{Content: &latex.For{
		Lhs: item,
		Rhs: equality(name(fillName), source),
	}}, nil
}

// comprehension returns the body of a chain of `for` clauses, and the
// equalities which bind its variables, outermost first.
func (obj *compiler) comprehension(expr *ast.Expr) (*ast.Expr, latex.SyntaxNode, error) {
	bindings := []latex.SyntaxNode{}
	body := expr
	for body.IsOp(ast.OpListMap) {
		source, err := obj.translateExpr(body.Operands[2])
		if err != nil {
			return nil, nil, err
		}
		bindings = append(bindings, equality(name(body.Operands[1].Name), source))
		body = body.Operands[0]
	}
	return body, seq(bindings...), nil
}

// translateMap builds `[e for X_x = s, X_y = t]`. Nested clauses share one
// `for`, which makes a flat list.
func (obj *compiler) translateMap(expr *ast.Expr) (latex.SyntaxNode, error) {
	body, bindings, err := obj.comprehension(expr)
	if err != nil {
		return nil, err
	}
	node, err := obj.translateExpr(body)
	if err != nil {
		return nil, err
	}
	return &latex.List{Content: &latex.For{Lhs: node, Rhs: bindings}}, nil
}

// translateFilter builds `l[c = 1]`. After `for` clauses the condition is
// mapped over the same bindings, so that it selects item by item.
func (obj *compiler) translateFilter(expr *ast.Expr) (latex.SyntaxNode, error) {
	list, err := obj.translateExpr(expr.Operands[0])
	if err != nil {
		return nil, err
	}
	cond, err := obj.translateExpr(expr.Operands[1])
	if err != nil {
		return nil, err
	}
	if expr.Operands[0].IsOp(ast.OpListMap) {
		_, bindings, err := obj.comprehension(expr.Operands[0])
		if err != nil {
			return nil, err
		}
		cond = &latex.List{Content: &latex.For{Lhs: cond, Rhs: bindings}}
	}
	return &latex.Index{Indexee: list, Index: equality(cond, decimal(1))}, nil
}

// translateRange builds `[a...b]`, or `[a, b...c]` with a step. An exclusive
// range stops one before its end.
func (obj *compiler) translateRange(expr *ast.Expr) (latex.SyntaxNode, error) {
	operands := []latex.SyntaxNode{}
	for _, x := range expr.Operands {
		node, err := obj.translateExpr(x)
		if err != nil {
			return nil, err
		}
		operands = append(operands, node)
	}

	last := expr.Operands[len(expr.Operands)-1]
	end := operands[len(operands)-1]
	if expr.Op == ast.OpExclusiveRange {
		if n, ok := number(last); ok {
			end = decimal(n - 1)
		} else {
			end = &latex.Paren{Content: &latex.Sub{Lhs: end, Rhs: decimal(1)}}
		}
	}

	items := append([]latex.SyntaxNode{}, operands[:len(operands)-2]...)
	items = append(items, &latex.Ellipsis{Lhs: operands[len(operands)-2], Rhs: end})
	return &latex.List{Content: seq(items...)}, nil
}

// translateWith builds `e with X_a = 1, X_b = 2`.
func (obj *compiler) translateWith(expr *ast.Expr) (latex.SyntaxNode, error) {
	body, err := obj.translateExpr(expr.Operands[0])
	if err != nil {
		return nil, err
	}
	bindings := []latex.SyntaxNode{}
	rhs := expr.Operands[1]
	for ; rhs.IsOp(ast.OpWith); rhs = rhs.Operands[1] {
		node, err := obj.translateExpr(rhs.Operands[0])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, node)
	}
	node, err := obj.translateExpr(rhs)
	if err != nil {
		return nil, err
	}
	bindings = append(bindings, node)
	return &latex.With{Lhs: body, Rhs: seq(bindings...)}, nil
}

// translateAction returns the target form of an action.
func (obj *compiler) translateAction(action ast.Action) (latex.SyntaxNode, error) {
	switch x := action.(type) {
	case *ast.ActionBlock:
		nodes := []latex.SyntaxNode{}
		for _, a := range x.Actions {
			node, err := obj.translateAction(a)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
		return paren(nodes...), nil

	case *ast.ActionUpdate:
		target, err := obj.translateExpr(x.Target)
		if err != nil {
			return nil, err
		}
		value, err := obj.translateExpr(x.Value)
		if err != nil {
			return nil, err
		}
		return &latex.RightArrow{Lhs: target, Rhs: value}, nil

	case *ast.ActionCall:
		return obj.translateCall(x.Callee, x.Args)

	case *ast.ActionConditional:
		branches := []latex.SyntaxNode{}
		for _, b := range x.Branches {
			cond, err := obj.translateExpr(b.Cond)
			if err != nil {
				return nil, err
			}
			body, err := obj.translateAction(b.Body)
			if err != nil {
				return nil, err
			}
			branches = append(branches, colon(equality(cond, decimal(1)), body))
		}
		if x.Default != nil {
			body, err := obj.translateAction(x.Default)
			if err != nil {
				return nil, err
			}
			branches = append(branches, body)
		}
		return piecewise(branches...), nil
	}
	return nil, fmt.Errorf("no translation for action %T", action)
}

// number returns the value of a numeric constant.
func number(expr *ast.Expr) (float64, bool) {
	if !expr.IsLiteral() {
		return 0, false
	}
	return types.Number(expr.Value)
}
