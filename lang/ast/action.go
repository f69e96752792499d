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

package ast

import (
	"fmt"
	"strings"
)

// Action is a statement with an effect, such as a variable update. Actions are
// the bodies of named actions, the ticker and click handlers.
type Action interface {
	fmt.Stringer

	// Apply runs fn on every expression node contained in the action.
	Apply(fn func(*Expr) error) error
}

// ActionBlock runs a list of actions at the same time.
type ActionBlock struct {
	Actions []Action
}

// String returns a short representation of this action.
func (obj *ActionBlock) String() string {
	s := []string{}
	for _, x := range obj.Actions {
		s = append(s, x.String())
	}
	return fmt.Sprintf("{%s}", strings.Join(s, ", "))
}

// Apply runs fn on every expression node contained in the action.
func (obj *ActionBlock) Apply(fn func(*Expr) error) error {
	for _, x := range obj.Actions {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return nil
}

// ActionUpdate assigns a new value to a var.
type ActionUpdate struct {
	Target *Expr
	Value  *Expr
}

// String returns a short representation of this action.
func (obj *ActionUpdate) String() string {
	return fmt.Sprintf("%s := %s", obj.Target, obj.Value)
}

// Apply runs fn on every expression node contained in the action.
func (obj *ActionUpdate) Apply(fn func(*Expr) error) error {
	if err := obj.Target.Apply(fn); err != nil {
		return err
	}
	return obj.Value.Apply(fn)
}

// ActionCall invokes a named action.
type ActionCall struct {
	Callee *Expr
	Args   []*Expr
}

// String returns a short representation of this action.
func (obj *ActionCall) String() string {
	s := []string{}
	for _, x := range obj.Args {
		s = append(s, x.String())
	}
	return fmt.Sprintf("action %s(%s)", obj.Callee, strings.Join(s, ", "))
}

// Apply runs fn on every expression node contained in the action.
func (obj *ActionCall) Apply(fn func(*Expr) error) error {
	if err := obj.Callee.Apply(fn); err != nil {
		return err
	}
	for _, x := range obj.Args {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return nil
}

// Branch is one `if` or `elif` arm of a conditional action.
type Branch struct {
	Cond *Expr
	Body Action
}

// ActionConditional runs the body of the first branch whose condition holds,
// or the default if none do. The default may be nil.
type ActionConditional struct {
	Branches []*Branch
	Default  Action
}

// String returns a short representation of this action.
func (obj *ActionConditional) String() string {
	s := []string{}
	for i, x := range obj.Branches {
		kw := "elif"
		if i == 0 {
			kw = "if"
		}
		s = append(s, fmt.Sprintf("%s %s: %s", kw, x.Cond, x.Body))
	}
	if obj.Default != nil {
		s = append(s, fmt.Sprintf("else: %s", obj.Default))
	}
	return strings.Join(s, " ")
}

// Apply runs fn on every expression node contained in the action.
func (obj *ActionConditional) Apply(fn func(*Expr) error) error {
	for _, x := range obj.Branches {
		if err := x.Cond.Apply(fn); err != nil {
			return err
		}
		if err := x.Body.Apply(fn); err != nil {
			return err
		}
	}
	if obj.Default == nil {
		return nil
	}
	return obj.Default.Apply(fn)
}
