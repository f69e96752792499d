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

	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/types"
)

// SignatureKind is the declaration keyword of a top level name.
type SignatureKind int

// These are the kinds of top level declarations.
const (
	SignatureConst SignatureKind = iota
	SignatureLet
	SignatureVar
	SignatureAction
	SignatureEnum
)

// String returns the keyword that declares this kind.
func (obj SignatureKind) String() string {
	switch obj {
	case SignatureConst:
		return "const"
	case SignatureLet:
		return "let"
	case SignatureVar:
		return "var"
	case SignatureAction:
		return "action"
	case SignatureEnum:
		return "enum"
	}
	return fmt.Sprintf("<kind %d>", int(obj))
}

// Qualifier modifies a var declaration.
type Qualifier int

const (
	// QualifierNone is a plain var.
	QualifierNone Qualifier = iota

	// QualifierTimer is a var that is advanced by the ticker.
	QualifierTimer
)

// Param is a named and typed parameter of a const, let or action.
type Param struct {
	Name string
	Type *types.Type
}

// Signature is everything that is known about a top level name without
// looking at its body. The area is that of the name token.
type Signature struct {
	interfaces.Textarea

	Kind SignatureKind
	Name string

	// Params is nil when the declaration had no parameter list at all,
	// which is different from an empty list.
	Params []*Param

	// Type is the declared type, or unknown when it was omitted.
	Type *types.Type

	Qualifier Qualifier // var only
	Variants  []string  // enum only
}

// String returns the declaration keyword and the name.
func (obj *Signature) String() string {
	return fmt.Sprintf("%s %s", obj.Kind, obj.Name)
}

// HasParams returns true if the declaration had a parameter list.
func (obj *Signature) HasParams() bool {
	return obj.Params != nil
}

// Signatures is the table of every top level name. It is filled by the parser
// and then read by the later stages, which lets any body refer to any name,
// regardless of the order of the declarations.
type Signatures struct {
	Names map[string]*Signature
}

// NewSignatures returns an empty table.
func NewSignatures() *Signatures {
	return &Signatures{
		Names: make(map[string]*Signature),
	}
}

// Add inserts a signature. If the name is taken, the previous signature is
// returned along with false, and the table is not changed.
func (obj *Signatures) Add(sig *Signature) (*Signature, bool) {
	if prev, exists := obj.Names[sig.Name]; exists {
		return prev, false
	}
	obj.Names[sig.Name] = sig
	return sig, true
}

// Lookup returns the signature of a name.
func (obj *Signatures) Lookup(name string) (*Signature, bool) {
	sig, exists := obj.Names[name]
	return sig, exists
}

// Ticker is the periodic action. The interval is optional.
type Ticker struct {
	Interval *Expr
	Action   Action
}

// Definitions holds the bodies of every top level name and the contents of the
// public, ticker and display blocks.
type Definitions struct {
	Identifiers map[string]*Expr   // const, let and var
	Actions     map[string]Action  // action
	Enums       map[string][]string

	// HasPublic is set once a public block was seen, even an empty one.
	HasPublic bool
	Public    []*Expr

	Ticker *Ticker

	// HasDisplay is set once a display block was seen, even an empty one.
	HasDisplay bool
	Display    []*Element
}

// NewDefinitions returns an empty set of definitions.
func NewDefinitions() *Definitions {
	return &Definitions{
		Identifiers: make(map[string]*Expr),
		Actions:     make(map[string]Action),
		Enums:       make(map[string][]string),
		Public:      []*Expr{},
		Display:     []*Element{},
	}
}

// Scope is the set of local names visible to an expression, plus the
// capabilities of the context it appears in.
type Scope struct {
	Params map[string]*types.Type

	// AllowTime is set inside the ticker, where the time step is visible.
	AllowTime bool

	// AllowIndex is set where list indexing may be used.
	AllowIndex bool
}

// NewScope returns the empty top level scope.
func NewScope() *Scope {
	return &Scope{
		Params:     make(map[string]*types.Type),
		AllowIndex: true,
	}
}

// Copy returns a copy of the scope which can be extended without changing the
// original.
func (obj *Scope) Copy() *Scope {
	params := make(map[string]*types.Type, len(obj.Params))
	for k, v := range obj.Params {
		params[k] = v
	}
	return &Scope{
		Params:     params,
		AllowTime:  obj.AllowTime,
		AllowIndex: obj.AllowIndex,
	}
}

// Bind returns a copy of the scope with one more local name.
func (obj *Scope) Bind(name string, typ *types.Type) *Scope {
	scope := obj.Copy()
	scope.Params[name] = typ
	return scope
}

// WithParams returns a copy of the scope extended with the parameters.
func (obj *Scope) WithParams(params []*Param) *Scope {
	scope := obj.Copy()
	for _, x := range params {
		scope.Params[x.Name] = x.Type
	}
	return scope
}
