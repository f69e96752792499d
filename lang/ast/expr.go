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

// Package ast contains the structs of the abstract syntax tree of the diagram
// language, and some utility functions for walking and printing them.
package ast

import (
	"fmt"
	"strings"

	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/types"
)

// ExprKind says which of the value fields of an expression is in use.
type ExprKind int

// These are the shapes of an expression.
const (
	ExprLiteral ExprKind = iota
	ExprName
	ExprOperator

	// ExprTimeStep is a name which the analyzer resolved to the time step of
	// the ticker.
	ExprTimeStep
)

// TimeStep is the name of the time elapsed since the previous tick. It is only
// visible inside the ticker action.
const TimeStep = "dt"

// Expr is a node of the expression tree. Each node is owned by exactly one
// parent. The type starts out as unknown and is filled in by the analyzer.
type Expr struct {
	interfaces.Textarea

	Type *types.Type
	Kind ExprKind

	Value    types.Value // for literals
	Name     string      // for names
	Op       Operation   // for operators
	Operands []*Expr     // for operators
}

// NewLiteral builds a literal expression from a constant.
func NewLiteral(v types.Value) *Expr {
	return &Expr{
		Type:  v.Type(),
		Kind:  ExprLiteral,
		Value: v,
	}
}

// NewName builds an expression which refers to a name.
func NewName(name string) *Expr {
	return &Expr{
		Type: types.TypeUnknown,
		Kind: ExprName,
		Name: name,
	}
}

// NewOperator builds an operator expression. The area covered is taken from
// the first and last operands.
func NewOperator(op Operation, operands []*Expr) *Expr {
	obj := &Expr{
		Type:     types.TypeUnknown,
		Kind:     ExprOperator,
		Op:       op,
		Operands: operands,
	}
	if len(operands) > 0 {
		obj.Start = operands[0].Start
		obj.End = operands[len(operands)-1].End
	}
	return obj
}

// IsLiteral returns true if this expression is a constant.
func (obj *Expr) IsLiteral() bool { return obj.Kind == ExprLiteral }

// IsName returns true if this expression is a bare name.
func (obj *Expr) IsName() bool { return obj.Kind == ExprName }

// IsOp returns true if this is an operator expression of the given operation.
func (obj *Expr) IsOp(op Operation) bool {
	return obj.Kind == ExprOperator && obj.Op == op
}

// Fold replaces this expression in place with a constant. The location is
// kept so that later errors still point at the source.
func (obj *Expr) Fold(v types.Value) {
	obj.Kind = ExprLiteral
	obj.Value = v
	obj.Type = v.Type()
	obj.Name = ""
	obj.Operands = nil
}

// Str returns the string constant in this expression, if it is one.
func (obj *Expr) Str() (string, bool) {
	if obj.Kind != ExprLiteral {
		return "", false
	}
	s, ok := obj.Value.(*types.StrValue)
	if !ok {
		return "", false
	}
	return s.V, true
}

// String returns a short, lisp like representation of the tree. It is used in
// debugging and in tests.
func (obj *Expr) String() string {
	switch obj.Kind {
	case ExprLiteral:
		return obj.Value.String()
	case ExprName, ExprTimeStep:
		return obj.Name
	}
	s := []string{obj.Op.String()}
	for _, x := range obj.Operands {
		s = append(s, x.String())
	}
	return fmt.Sprintf("(%s)", strings.Join(s, " "))
}

// Apply is a general purpose iterator method that operates on every node of
// the tree. Children are visited before their parent. If fn returns an error,
// then the walk stops and that error is returned.
func (obj *Expr) Apply(fn func(*Expr) error) error {
	for _, x := range obj.Operands {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}
