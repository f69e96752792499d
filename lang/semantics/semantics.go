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

// Package semantics checks the types of a parsed program, infers the types that
// were left out, and folds the constant expressions. It mutates the definitions
// in place, and the target compiler relies on the annotations it leaves.
package semantics

import (
	"fmt"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/types"
	"github.com/purpleidea/figura/util"
)

// status tracks the lazy analysis of a top level identifier.
type status int

const (
	statusPending status = iota
	statusActive
	statusDone
)

// Analyzer holds the state of one analysis.
type Analyzer struct {
	Signatures  *ast.Signatures
	Definitions *ast.Definitions

	Debug bool
	Logf  func(format string, v ...interface{})

	status map[string]status
}

// Analyze is the main entry point. It checks every identifier, action, public
// entry, the ticker and the display block, and returns the first error found.
func Analyze(sigs *ast.Signatures, defs *ast.Definitions, logf func(format string, v ...interface{})) error {
	obj := &Analyzer{
		Signatures:  sigs,
		Definitions: defs,
		Logf:        logf,
	}
	return obj.Analyze()
}

// Analyze runs the analysis. Identifiers are visited in name order, but since
// a name is analyzed on first use, the order of the declarations never
// matters.
func (obj *Analyzer) Analyze() error {
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {}
	}
	obj.status = make(map[string]status)

	for _, name := range util.SortedKeys(obj.Definitions.Identifiers) {
		if err := obj.analyzeIdentifier(name); err != nil {
			return err
		}
	}
	obj.Logf("analyzed %d identifiers", len(obj.Definitions.Identifiers))

	for _, name := range util.SortedKeys(obj.Definitions.Actions) {
		sig, exists := obj.Signatures.Lookup(name)
		if !exists {
			return fmt.Errorf("action '%s' has no signature", name)
		}
		scope := ast.NewScope().WithParams(sig.Params)
		if err := obj.analyzeAction(scope, obj.Definitions.Actions[name]); err != nil {
			return err
		}
	}
	obj.Logf("analyzed %d actions", len(obj.Definitions.Actions))

	for _, x := range obj.Definitions.Public {
		if err := obj.analyzeExpr(ast.NewScope(), x); err != nil {
			return err
		}
	}

	if ticker := obj.Definitions.Ticker; ticker != nil {
		if err := obj.analyzeTicker(ticker); err != nil {
			return err
		}
	}

	for _, x := range obj.Definitions.Display {
		if err := obj.analyzeElement(x); err != nil {
			return err
		}
	}
	if obj.Debug {
		obj.Logf("analyzed %d public entries and %d display elements", len(obj.Definitions.Public), len(obj.Definitions.Display))
	}
	return nil
}

// analyzeIdentifier checks the body of a const, let or var the first time it is
// needed. A reference back into an identifier which is still being analyzed
// sees its declared type, which may be unknown.
func (obj *Analyzer) analyzeIdentifier(name string) error {
	if obj.status[name] != statusPending {
		return nil
	}
	obj.status[name] = statusActive
	defer func() { obj.status[name] = statusDone }()

	sig, exists := obj.Signatures.Lookup(name)
	if !exists {
		return fmt.Errorf("identifier '%s' has no signature", name)
	}
	expr := obj.Definitions.Identifiers[name]

	scope := ast.NewScope().WithParams(sig.Params)
	if err := obj.analyzeExpr(scope, expr); err != nil {
		return err
	}

	switch {
	case sig.Kind == ast.SignatureConst && !sig.HasParams() && !expr.IsLiteral():
		return errorAt(expr, "the value of %s must be a constant", sig)
	case sig.Kind == ast.SignatureVar && !expr.IsLiteral():
		return errorAt(expr, "the initial value of %s must be a constant", sig)
	}

	if sig.Type.IsUnknown() {
		sig.Type = expr.Type
		return nil
	}
	if !expr.Type.CanCoerceTo(sig.Type) {
		return coerceError(expr, sig.Type)
	}
	if expr.IsLiteral() {
		expr.Fold(convert(expr.Value, sig.Type))
	}
	return nil
}

func (obj *Analyzer) analyzeTicker(ticker *ast.Ticker) error {
	if ticker.Interval != nil {
		// the interval sees the top level scope, but not the time step
		if err := obj.analyzeExpr(ast.NewScope(), ticker.Interval); err != nil {
			return err
		}
		if !ticker.Interval.Type.CanCoerceTo(types.TypeReal) {
			return coerceError(ticker.Interval, types.TypeReal)
		}
	}
	scope := ast.NewScope()
	scope.AllowTime = true
	return obj.analyzeAction(scope, ticker.Action)
}

// analyzeElement resolves the expressions of a display element. The types of
// the attributes are not enforced.
func (obj *Analyzer) analyzeElement(element *ast.Element) error {
	for _, x := range element.Exprs() {
		if err := obj.analyzeExpr(ast.NewScope(), x); err != nil {
			return err
		}
	}
	if element.Click != nil {
		return obj.analyzeAction(ast.NewScope(), element.Click.Action)
	}
	return nil
}

// lookupName finds the type of a name. Local names shadow the time step, which
// shadows the top level names.
func (obj *Analyzer) lookupName(scope *ast.Scope, expr *ast.Expr) error {
	name := expr.Name
	if typ, exists := scope.Params[name]; exists {
		expr.Type = typ
		return nil
	}
	if scope.AllowTime && name == ast.TimeStep {
		expr.Kind = ast.ExprTimeStep
		expr.Type = types.TypeReal
		return nil
	}

	sig, exists := obj.Signatures.Lookup(name)
	if !exists {
		return errorAt(expr, "unknown name '%s'", name)
	}
	switch sig.Kind {
	case ast.SignatureAction:
		expr.Type = types.NewAction(name)
		return nil
	case ast.SignatureEnum:
		expr.Type = types.NewUser(name)
		return nil
	}
	if sig.HasParams() {
		expr.Type = types.NewFunction(name)
		return nil
	}

	if sig.Type.IsUnknown() || sig.Kind == ast.SignatureConst {
		if err := obj.analyzeIdentifier(name); err != nil {
			return err
		}
	}
	if body := obj.Definitions.Identifiers[name]; sig.Kind == ast.SignatureConst && body.IsLiteral() {
		expr.Fold(body.Value.Copy())
		return nil
	}
	expr.Type = sig.Type
	return nil
}

// errorAt builds an error which covers an expression.
func errorAt(expr *ast.Expr, format string, v ...interface{}) error {
	return interfaces.Errorf(expr.Start, expr.End, format, v...)
}

// coerceError is the error for a value which can't be used as the type.
func coerceError(expr *ast.Expr, typ *types.Type) error {
	return errorAt(expr, "cannot coerce '%s' to '%s'", expr.Type, typ)
}
