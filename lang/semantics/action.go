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
	"github.com/purpleidea/figura/lang/types"
)

func (obj *Analyzer) analyzeAction(scope *ast.Scope, action ast.Action) error {
	switch x := action.(type) {
	case *ast.ActionBlock:
		for _, a := range x.Actions {
			if err := obj.analyzeAction(scope, a); err != nil {
				return err
			}
		}
		return nil

	case *ast.ActionUpdate:
		return obj.analyzeUpdate(scope, x.Target, x.Value)

	case *ast.ActionCall:
		_, err := obj.analyzeActionCall(scope, x.Callee, x.Args)
		return err

	case *ast.ActionConditional:
		for _, b := range x.Branches {
			if err := obj.analyzeCondition(scope, b.Cond); err != nil {
				return err
			}
			if err := obj.analyzeAction(scope, b.Body); err != nil {
				return err
			}
		}
		if x.Default != nil {
			return obj.analyzeAction(scope, x.Default)
		}
		return nil
	}
	return fmt.Errorf("unknown action: %T", action)
}

// analyzeUpdate checks `target := value`. Only a top level var can be updated.
func (obj *Analyzer) analyzeUpdate(scope *ast.Scope, target, value *ast.Expr) error {
	if !target.IsName() {
		return errorAt(target, "the target of an update must be a name")
	}
	if _, exists := scope.Params[target.Name]; exists {
		return errorAt(target, "cannot update '%s', only a var can be updated", target.Name)
	}
	sig, exists := obj.Signatures.Lookup(target.Name)
	if !exists {
		return errorAt(target, "unknown name '%s'", target.Name)
	}
	if sig.Kind != ast.SignatureVar {
		return errorAt(target, "cannot update '%s', only a var can be updated", sig)
	}
	if err := obj.analyzeIdentifier(sig.Name); err != nil {
		return err
	}
	target.Type = sig.Type

	if err := obj.analyzeExpr(scope, value); err != nil {
		return err
	}
	if !value.Type.CanCoerceTo(sig.Type) {
		return coerceError(value, sig.Type)
	}
	return nil
}

// analyzeActionCall checks the callee and the arguments of an action call, and
// returns the signature of the action.
func (obj *Analyzer) analyzeActionCall(scope *ast.Scope, callee *ast.Expr, args []*ast.Expr) (*ast.Signature, error) {
	if !callee.IsName() {
		return nil, errorAt(callee, "expected the name of an action")
	}
	sig, exists := obj.Signatures.Lookup(callee.Name)
	if _, local := scope.Params[callee.Name]; local || !exists {
		if !exists && !local {
			return nil, errorAt(callee, "unknown name '%s'", callee.Name)
		}
		return nil, errorAt(callee, "'%s' is not an action", callee.Name)
	}
	if sig.Kind != ast.SignatureAction {
		return nil, errorAt(callee, "%s is not an action", sig)
	}
	callee.Type = types.NewAction(sig.Name)

	if len(args) != len(sig.Params) {
		return nil, errorAt(callee, "action '%s' expects %d arguments, got %d", sig.Name, len(sig.Params), len(args))
	}
	for i, x := range args {
		if err := obj.analyzeExpr(scope, x); err != nil {
			return nil, err
		}
		if typ := sig.Params[i].Type; !x.Type.CanCoerceTo(typ) {
			return nil, errorAt(x, "argument %d of action '%s': cannot coerce '%s' to '%s'", i+1, sig.Name, x.Type, typ)
		}
	}
	return sig, nil
}

// analyzeCondition checks an expression which must be usable as a bool.
func (obj *Analyzer) analyzeCondition(scope *ast.Scope, cond *ast.Expr) error {
	if err := obj.analyzeExpr(scope, cond); err != nil {
		return err
	}
	if !cond.Type.CanCoerceTo(types.TypeBool) {
		return coerceError(cond, types.TypeBool)
	}
	return nil
}
