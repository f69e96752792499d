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
	"fmt"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/funcs"
	"github.com/purpleidea/figura/lang/types"
)

// analyzeExpr fills in the type of an expression and of all of its children,
// and folds it into a constant where every operand is one.
func (obj *Analyzer) analyzeExpr(scope *ast.Scope, expr *ast.Expr) error {
	switch expr.Kind {
	case ast.ExprLiteral:
		expr.Type = expr.Value.Type()
		return nil
	case ast.ExprName:
		return obj.lookupName(scope, expr)
	case ast.ExprTimeStep:
		expr.Type = types.TypeReal
		return nil
	}

	switch expr.Op {
	case ast.OpPointLiteral:
		return obj.analyzePoint(scope, expr)
	case ast.OpListLiteral:
		return obj.analyzeList(scope, expr)
	case ast.OpListFill:
		return obj.analyzeListFill(scope, expr)
	case ast.OpListMap:
		_, err := obj.analyzeListMap(scope, expr)
		return err
	case ast.OpListFilter:
		return obj.analyzeListFilter(scope, expr)
	case ast.OpMemberAccess:
		return obj.analyzeMember(scope, expr)
	case ast.OpBuiltIn:
		return obj.analyzeBuiltIn(expr)
	case ast.OpCall:
		return obj.analyzeCall(scope, expr)

	case ast.OpActionCall:
		sig, err := obj.analyzeActionCall(scope, expr.Operands[0], expr.Operands[1:])
		if err != nil {
			return err
		}
		expr.Type = types.NewAction(sig.Name)
		return nil

	case ast.OpIndex:
		return obj.analyzeIndex(scope, expr)
	case ast.OpPosate, ast.OpNegate:
		return obj.analyzeSign(scope, expr)

	case ast.OpNot:
		if err := obj.analyzeCondition(scope, expr.Operands[0]); err != nil {
			return err
		}
		expr.Type = types.TypeBool
		if v, ok := truth(expr.Operands[0]); ok {
			expr.Fold(&types.BoolValue{V: !v})
		}
		return nil

	case ast.OpExponent, ast.OpMultiply, ast.OpDivide, ast.OpModulus, ast.OpAdd, ast.OpSubtract:
		return obj.analyzeArithmetic(scope, expr)
	case ast.OpLessThan, ast.OpGreaterThan, ast.OpLessEqual, ast.OpGreaterEqual, ast.OpEqual, ast.OpNotEqual:
		return obj.analyzeComparison(scope, expr)

	case ast.OpAnd, ast.OpOr:
		a, b := expr.Operands[0], expr.Operands[1]
		for _, x := range expr.Operands {
			if err := obj.analyzeCondition(scope, x); err != nil {
				return err
			}
		}
		expr.Type = types.TypeBool
		va, oka := truth(a)
		vb, okb := truth(b)
		if oka && okb {
			v := va && vb
			if expr.Op == ast.OpOr {
				v = va || vb
			}
			expr.Fold(&types.BoolValue{V: v})
		}
		return nil

	case ast.OpExclusiveRange, ast.OpInclusiveRange:
		return obj.analyzeRange(scope, expr)
	case ast.OpConditional:
		return obj.analyzeConditional(scope, expr)

	case ast.OpAssignment:
		return errorAt(expr, "assignment is only valid in a 'with' clause")

	case ast.OpUpdate:
		if err := obj.analyzeUpdate(scope, expr.Operands[0], expr.Operands[1]); err != nil {
			return err
		}
		expr.Type = types.TypeVoid
		return nil

	case ast.OpWith:
		return obj.analyzeWith(scope, expr)
	}
	return fmt.Errorf("unknown operation: %s", expr.Op)
}

// analyzeAll analyzes each of the expressions in order.
func (obj *Analyzer) analyzeAll(scope *ast.Scope, exprs []*ast.Expr) error {
	for _, x := range exprs {
		if err := obj.analyzeExpr(scope, x); err != nil {
			return err
		}
	}
	return nil
}

// analyzePoint checks `(x, y)`. A list component makes a list of points.
func (obj *Analyzer) analyzePoint(scope *ast.Scope, expr *ast.Expr) error {
	if err := obj.analyzeAll(scope, expr.Operands); err != nil {
		return err
	}
	x, y := expr.Operands[0], expr.Operands[1]
	for _, c := range expr.Operands {
		if !itemType(c.Type).CanCoerceTo(types.TypeReal) {
			return coerceError(c, types.TypeReal)
		}
	}
	typ, err := types.PointType(itemType(x.Type), itemType(y.Type))
	if err != nil {
		return errorAt(expr, "%v", err)
	}
	if isList(x.Type) || isList(y.Type) {
		expr.Type = types.NewList(typ)
		return nil
	}
	expr.Type = typ

	if !x.IsLiteral() || !y.IsLiteral() {
		return nil
	}
	vx, _ := types.Number(x.Value)
	vy, _ := types.Number(y.Value)
	if typ.Kind == types.KindIPoint {
		expr.Fold(&types.IPointValue{X: int64(vx), Y: int64(vy)})
		return nil
	}
	expr.Fold(&types.PointValue{X: vx, Y: vy})
	return nil
}

// analyzeList checks a list literal. The item type is the merge of every item,
// and a list of constants folds into a list constant.
func (obj *Analyzer) analyzeList(scope *ast.Scope, expr *ast.Expr) error {
	if err := obj.analyzeAll(scope, expr.Operands); err != nil {
		return err
	}
	typ := types.TypeUnknown
	for i, x := range expr.Operands {
		if isList(x.Type) {
			return errorAt(x, "lists cannot be nested")
		}
		if i == 0 {
			typ = x.Type
			continue
		}
		merged, err := types.Merge(typ, x.Type)
		if err != nil {
			return errorAt(x, "cannot add '%s' to a list of '%s'", x.Type, typ)
		}
		typ = merged
	}
	expr.Type = types.NewList(typ)

	values := []types.Value{}
	for _, x := range expr.Operands {
		if !x.IsLiteral() {
			return nil
		}
		values = append(values, convert(x.Value, typ))
	}
	if typ.IsUnknown() && len(values) > 0 {
		return nil
	}
	expr.Fold(&types.ListValue{T: typ, V: values})
	return nil
}

// analyzeListFill checks `[v; n]`.
func (obj *Analyzer) analyzeListFill(scope *ast.Scope, expr *ast.Expr) error {
	if err := obj.analyzeAll(scope, expr.Operands); err != nil {
		return err
	}
	item, count := expr.Operands[0], expr.Operands[1]
	if isList(item.Type) {
		return errorAt(item, "lists cannot be nested")
	}
	if !count.Type.CanCoerceTo(types.TypeInt) {
		return coerceError(count, types.TypeInt)
	}
	expr.Type = types.NewList(item.Type)
	return nil
}

// analyzeListMap checks a chain of `for` clauses. The sources are all resolved
// in the enclosing scope, and the body sees every variable of the chain. The
// chain builds one flat list, so the result is a list of the body type. It
// returns the scope of the body.
func (obj *Analyzer) analyzeListMap(scope *ast.Scope, expr *ast.Expr) (*ast.Scope, error) {
	inner := scope
	chain := []*ast.Expr{}
	body := expr
	for body.IsOp(ast.OpListMap) {
		variable, source := body.Operands[1], body.Operands[2]
		if err := obj.analyzeExpr(scope, source); err != nil {
			return nil, err
		}
		if !variable.IsName() {
			return nil, errorAt(variable, "the variable of a comprehension must be a name")
		}
		if !isList(source.Type) && !source.Type.IsUnknown() {
			return nil, errorAt(source, "cannot iterate over '%s'", source.Type)
		}
		variable.Type = itemType(source.Type)
		inner = inner.Bind(variable.Name, variable.Type)
		chain = append(chain, body)
		body = body.Operands[0]
	}

	if err := obj.analyzeExpr(inner, body); err != nil {
		return nil, err
	}
	if isList(body.Type) {
		return nil, errorAt(body, "lists cannot be nested")
	}
	for _, x := range chain {
		x.Type = types.NewList(body.Type)
	}
	return inner, nil
}

// analyzeListFilter checks `[l where c]`. After `for` clauses the condition
// sees the variables of the comprehension.
func (obj *Analyzer) analyzeListFilter(scope *ast.Scope, expr *ast.Expr) error {
	list, cond := expr.Operands[0], expr.Operands[1]
	inner := scope
	if list.IsOp(ast.OpListMap) {
		s, err := obj.analyzeListMap(scope, list)
		if err != nil {
			return err
		}
		inner = s
	} else {
		if err := obj.analyzeExpr(scope, list); err != nil {
			return err
		}
		if !isList(list.Type) && !list.Type.IsUnknown() {
			return errorAt(list, "cannot filter '%s', it is not a list", list.Type)
		}
	}

	if err := obj.analyzeExpr(inner, cond); err != nil {
		return err
	}
	if !itemType(cond.Type).CanCoerceTo(types.TypeBool) {
		return coerceError(cond, types.TypeBool)
	}
	expr.Type = list.Type
	return nil
}

// analyzeMember checks `Enum.Variant` and the `.x` and `.y` of a point.
func (obj *Analyzer) analyzeMember(scope *ast.Scope, expr *ast.Expr) error {
	lhs, rhs := expr.Operands[0], expr.Operands[1]
	if !rhs.IsName() {
		return errorAt(rhs, "expected a member name")
	}

	if _, local := scope.Params[lhs.Name]; lhs.IsName() && !local {
		if sig, exists := obj.Signatures.Lookup(lhs.Name); exists && sig.Kind == ast.SignatureEnum {
			for i, x := range sig.Variants {
				if x == rhs.Name {
					expr.Fold(&types.EnumValue{Enum: sig.Name, Variant: x, Ordinal: i})
					return nil
				}
			}
			return errorAt(rhs, "enum '%s' has no variant '%s'", sig.Name, rhs.Name)
		}
	}

	if err := obj.analyzeExpr(scope, lhs); err != nil {
		return err
	}
	typ := itemType(lhs.Type)
	if (!typ.IsPoint() && !typ.IsUnknown()) || (rhs.Name != "x" && rhs.Name != "y") {
		return errorAt(expr, "'%s' has no member '%s'", lhs.Type, rhs.Name)
	}
	rhs.Type = types.TypeReal
	if typ.Kind == types.KindIPoint {
		rhs.Type = types.TypeInt
	}
	expr.Type = rhs.Type
	if isList(lhs.Type) {
		expr.Type = types.NewList(rhs.Type)
	}

	switch p := lhs.Value.(type) {
	case *types.PointValue:
		if lhs.IsLiteral() {
			expr.Fold(&types.RealValue{V: pick(rhs.Name, p.X, p.Y)})
		}
	case *types.IPointValue:
		if lhs.IsLiteral() {
			expr.Fold(&types.IntValue{V: int64(pick(rhs.Name, float64(p.X), float64(p.Y)))})
		}
	}
	return nil
}

// analyzeBuiltIn checks a bare `@name`. Calls to builtins are checked by
// analyzeCall.
func (obj *Analyzer) analyzeBuiltIn(expr *ast.Expr) error {
	fn, err := obj.lookupBuiltIn(expr)
	if err != nil {
		return err
	}
	expr.Type = fn.Result
	return nil
}

func (obj *Analyzer) lookupBuiltIn(expr *ast.Expr) (*funcs.Func, error) {
	name := expr.Operands[0]
	if !name.IsName() {
		return nil, errorAt(name, "expected the name of a builtin")
	}
	fn, err := funcs.Lookup(name.Name)
	if err != nil {
		return nil, errorAt(expr, "unknown builtin '@%s'", name.Name)
	}
	name.Type = fn.Result
	return fn, nil
}

// analyzeCall checks a call to a builtin or to a const or let with parameters.
// Builtins with a fold function are evaluated when every argument is constant.
func (obj *Analyzer) analyzeCall(scope *ast.Scope, expr *ast.Expr) error {
	callee, args := expr.Operands[0], expr.Operands[1:]

	if callee.IsOp(ast.OpBuiltIn) {
		fn, err := obj.lookupBuiltIn(callee)
		if err != nil {
			return err
		}
		callee.Type = fn.Result
		if err := fn.CheckArgs(len(args)); err != nil {
			return errorAt(expr, "%v", err)
		}
		if err := obj.analyzeAll(scope, args); err != nil {
			return err
		}
		expr.Type = fn.Result
		if fn.Fold == nil {
			return nil
		}
		values := []types.Value{}
		for _, x := range args {
			if !x.IsLiteral() {
				return nil
			}
			values = append(values, x.Value)
		}
		v, err := fn.Fold(values)
		if err != nil {
			return errorAt(expr, "%v", err)
		}
		expr.Fold(v)
		if obj.Debug {
			obj.Logf("folded call to @%s into %s", fn.Name, v)
		}
		return nil
	}

	desc := callee.String()
	if err := obj.analyzeExpr(scope, callee); err != nil {
		return err
	}
	if callee.Type.Kind != types.KindFunction {
		return errorAt(callee, "'%s' cannot be called", desc)
	}
	sig, _ := obj.Signatures.Lookup(callee.Type.Name)
	if len(args) != len(sig.Params) {
		return errorAt(expr, "%s expects %d arguments, got %d", sig, len(sig.Params), len(args))
	}
	for i, x := range args {
		if err := obj.analyzeExpr(scope, x); err != nil {
			return err
		}
		if typ := sig.Params[i].Type; !x.Type.CanCoerceTo(typ) {
			return errorAt(x, "argument %d of '%s': cannot coerce '%s' to '%s'", i+1, sig.Name, x.Type, typ)
		}
	}
	if sig.Type.IsUnknown() {
		if err := obj.analyzeIdentifier(sig.Name); err != nil {
			return err
		}
	}
	expr.Type = sig.Type
	return nil
}

// analyzeIndex checks `l[i]`.
func (obj *Analyzer) analyzeIndex(scope *ast.Scope, expr *ast.Expr) error {
	if !scope.AllowIndex {
		return errorAt(expr, "indexing is not allowed here")
	}
	if err := obj.analyzeAll(scope, expr.Operands); err != nil {
		return err
	}
	list, index := expr.Operands[0], expr.Operands[1]
	if !isList(list.Type) && !list.Type.IsUnknown() {
		return errorAt(list, "cannot index into '%s'", list.Type)
	}
	if !index.Type.CanCoerceTo(types.TypeInt) {
		return coerceError(index, types.TypeInt)
	}
	expr.Type = itemType(list.Type)
	return nil
}

// analyzeSign checks unary plus and minus.
func (obj *Analyzer) analyzeSign(scope *ast.Scope, expr *ast.Expr) error {
	x := expr.Operands[0]
	if err := obj.analyzeExpr(scope, x); err != nil {
		return err
	}
	typ := itemType(x.Type)
	switch {
	case typ.IsUnknown(), typ.IsPoint():
		expr.Type = x.Type
	case typ.IsNumeric():
		num, _ := types.MergeNumeric(typ, typ)
		expr.Type = num
		if isList(x.Type) {
			expr.Type = types.NewList(num)
		}
	default:
		return errorAt(x, "cannot apply '%s' to '%s'", expr.Op, x.Type)
	}

	if x.IsLiteral() {
		if v, ok := foldSign(expr.Op, x.Value); ok {
			expr.Fold(v)
		}
	}
	return nil
}

// analyzeArithmetic checks the binary arithmetic operators. Lists broadcast
// over their items, and points can be added, subtracted and scaled.
func (obj *Analyzer) analyzeArithmetic(scope *ast.Scope, expr *ast.Expr) error {
	if err := obj.analyzeAll(scope, expr.Operands); err != nil {
		return err
	}
	a, b := expr.Operands[0], expr.Operands[1]
	typ, err := arithmeticType(expr.Op, itemType(a.Type), itemType(b.Type))
	if err != nil {
		return errorAt(expr, "cannot coerce '%s' and '%s' to a common numeric type", a.Type, b.Type)
	}
	if isList(a.Type) || isList(b.Type) {
		expr.Type = types.NewList(typ)
		return nil
	}
	expr.Type = typ

	if a.IsLiteral() && b.IsLiteral() {
		if v, ok := foldArithmetic(expr.Op, a.Value, b.Value, typ); ok {
			expr.Fold(v)
		}
	}
	return nil
}

// arithmeticType returns the result type of an arithmetic operator on two
// items.
func arithmeticType(op ast.Operation, a, b *types.Type) (*types.Type, error) {
	if a.IsPoint() || b.IsPoint() {
		switch {
		case (op == ast.OpAdd || op == ast.OpSubtract) && pointLike(a) && pointLike(b):
			if a.Kind == types.KindIPoint && b.Kind == types.KindIPoint {
				return types.TypeIPoint, nil
			}
			return types.TypePoint, nil
		case op == ast.OpMultiply && ((a.IsPoint() && numberLike(b)) || (numberLike(a) && b.IsPoint())):
			if a.IsPoint() {
				return pointScale(a, b), nil
			}
			return pointScale(b, a), nil
		case op == ast.OpDivide && a.IsPoint() && numberLike(b):
			return types.TypePoint, nil
		}
		return nil, fmt.Errorf("cannot apply '%s' to '%s' and '%s'", op, a, b)
	}

	typ, err := types.MergeNumeric(a, b)
	if err != nil {
		return nil, err
	}
	if op == ast.OpDivide && !typ.IsUnknown() {
		return types.TypeReal, nil
	}
	return typ, nil
}

// pointScale is the type of a point multiplied by a number.
func pointScale(p, n *types.Type) *types.Type {
	if p.Kind == types.KindIPoint && n.CanCoerceTo(types.TypeInt) && !n.IsUnknown() {
		return types.TypeIPoint
	}
	return types.TypePoint
}

func pointLike(t *types.Type) bool { return t.IsPoint() || t.IsUnknown() }

func numberLike(t *types.Type) bool {
	return t.IsUnknown() || (t.IsNumeric() && t.CanCoerceTo(types.TypeReal))
}

// analyzeComparison checks the ordering and the equality operators. Ordering
// needs numbers, equality needs two types which merge. A list operand makes a
// list of bools, which is how lists are filtered.
func (obj *Analyzer) analyzeComparison(scope *ast.Scope, expr *ast.Expr) error {
	if err := obj.analyzeAll(scope, expr.Operands); err != nil {
		return err
	}
	a, b := expr.Operands[0], expr.Operands[1]
	ia, ib := itemType(a.Type), itemType(b.Type)

	if expr.Op == ast.OpEqual || expr.Op == ast.OpNotEqual {
		if _, err := types.Merge(ia, ib); err != nil {
			return errorAt(expr, "cannot compare '%s' with '%s'", a.Type, b.Type)
		}
	} else {
		for _, x := range expr.Operands {
			if !itemType(x.Type).CanCoerceTo(types.TypeReal) {
				return coerceError(x, types.TypeReal)
			}
		}
	}

	expr.Type = types.TypeBool
	if isList(a.Type) || isList(b.Type) {
		expr.Type = types.NewList(types.TypeBool)
		return nil
	}
	if a.IsLiteral() && b.IsLiteral() {
		if v, ok := foldComparison(expr.Op, a.Value, b.Value); ok {
			expr.Fold(v)
		}
	}
	return nil
}

// analyzeRange checks `[a .. b]`, `[a ..= b]` and `[a, b .. c]`.
func (obj *Analyzer) analyzeRange(scope *ast.Scope, expr *ast.Expr) error {
	if len(expr.Operands) > 3 {
		return errorAt(expr.Operands[2], "a range takes at most two starting values")
	}
	if err := obj.analyzeAll(scope, expr.Operands); err != nil {
		return err
	}
	for _, x := range expr.Operands {
		if !x.Type.CanCoerceTo(types.TypeInt) {
			return coerceError(x, types.TypeInt)
		}
	}
	expr.Type = types.NewList(types.TypeInt)
	return nil
}

// analyzeConditional checks `{c: v, ..., default}`. The operands alternate
// between conditions and values, and the default is the odd one out.
func (obj *Analyzer) analyzeConditional(scope *ast.Scope, expr *ast.Expr) error {
	typ := types.TypeUnknown
	first := true
	for i, x := range expr.Operands {
		isCond := i%2 == 0 && i != len(expr.Operands)-1
		if isCond {
			if err := obj.analyzeCondition(scope, x); err != nil {
				return err
			}
			continue
		}
		if err := obj.analyzeExpr(scope, x); err != nil {
			return err
		}
		if first {
			typ, first = x.Type, false
			continue
		}
		merged, err := types.Merge(typ, x.Type)
		if err != nil {
			return errorAt(x, "cannot merge '%s' with the earlier branches of type '%s'", x.Type, typ)
		}
		typ = merged
	}
	expr.Type = typ
	return nil
}

// analyzeWith checks `expr with name = value`. Several bindings chain with
// more `with` clauses. The values are resolved in the enclosing scope.
func (obj *Analyzer) analyzeWith(scope *ast.Scope, expr *ast.Expr) error {
	body := expr.Operands[0]
	inner := scope
	for _, x := range bindings(expr.Operands[1]) {
		if !x.IsOp(ast.OpAssignment) {
			return errorAt(x, "expected an assignment after 'with'")
		}
		name, value := x.Operands[0], x.Operands[1]
		if !name.IsName() {
			return errorAt(name, "the target of an assignment must be a name")
		}
		if err := obj.analyzeExpr(scope, value); err != nil {
			return err
		}
		name.Type = value.Type
		x.Type = value.Type
		inner = inner.Bind(name.Name, value.Type)
	}
	for x := expr.Operands[1]; x.IsOp(ast.OpWith); x = x.Operands[1] {
		x.Type = types.TypeVoid
	}

	if err := obj.analyzeExpr(inner, body); err != nil {
		return err
	}
	expr.Type = body.Type
	return nil
}

// bindings flattens the right hand side of a with clause. Since `with` groups
// to the right, `a with x = 1 with y = 2` nests the second binding.
func bindings(expr *ast.Expr) []*ast.Expr {
	if expr.IsOp(ast.OpWith) {
		return append(bindings(expr.Operands[0]), bindings(expr.Operands[1])...)
	}
	return []*ast.Expr{expr}
}

// truth returns the value of a constant condition.
func truth(expr *ast.Expr) (bool, bool) {
	if !expr.IsLiteral() {
		return false, false
	}
	v, ok := types.Number(expr.Value)
	return v != 0, ok
}

func isList(t *types.Type) bool { return t != nil && t.Kind == types.KindList }

// itemType returns the item type of a list, and any other type unchanged.
func itemType(t *types.Type) *types.Type {
	if isList(t) {
		return t.Val
	}
	return t
}

func pick(name string, x, y float64) float64 {
	if name == "x" {
		return x
	}
	return y
}
