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

// Package geometry compiles an analyzed program into a document for the
// geometry calculator. Every name becomes a subscript of one base letter, and
// since the calculator has no booleans, conditions are encoded as piecewise
// expressions which evaluate to one or zero.
package geometry

import (
	"fmt"
	"strconv"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/document"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/latex"
	"github.com/purpleidea/figura/util"
)

// compiler holds the state of one compilation.
type compiler struct {
	sigs *ast.Signatures
	defs *ast.Definitions

	nextID int
}

// id returns the next entry id. Folders and expressions share the counter.
func (obj *compiler) id() string {
	s := strconv.Itoa(obj.nextID)
	obj.nextID++
	return s
}

// Compile builds the document. The definitions must have been analyzed. The
// output only depends on the input, so repeated compiles are identical.
func Compile(defs *ast.Definitions, sigs *ast.Signatures, metadata *interfaces.Metadata) (*document.State, error) {
	if metadata == nil {
		metadata = interfaces.DefaultMetadata()
	}
	obj := &compiler{
		sigs: sigs,
		defs: defs,
	}
	state := document.New(metadata)

	geometry := document.NewFolder(obj.id(), metadata.Folders.Geometry)
	geometry.Collapsed = true
	geometry.Secret = true
	state.Append(geometry)

	for _, x := range defs.Public {
		if s, ok := x.Str(); ok {
			state.Append(document.NewText(obj.id(), "", s))
			continue
		}
		node, err := obj.translateExpr(x)
		if err != nil {
			return nil, err
		}
		state.Append(document.NewExpression(obj.id(), "", latex.Render(node)))
	}

	actions := document.NewFolder(obj.id(), metadata.Folders.Actions)
	actions.Collapsed = true
	state.Append(actions)
	for _, name := range util.SortedKeys(defs.Actions) {
		node, err := obj.translateAction(defs.Actions[name])
		if err != nil {
			return nil, err
		}
		entry, err := obj.definition(actions.ID, name, node)
		if err != nil {
			return nil, err
		}
		state.Append(entry)
	}

	definitions := document.NewFolder(obj.id(), metadata.Folders.Definitions)
	definitions.Collapsed = true
	state.Append(definitions)
	for _, name := range util.SortedKeys(defs.Identifiers) {
		node, err := obj.translateExpr(defs.Identifiers[name])
		if err != nil {
			return nil, err
		}
		entry, err := obj.definition(definitions.ID, name, node)
		if err != nil {
			return nil, err
		}
		state.Append(entry)
	}

	if defs.HasDisplay {
		display := document.NewFolder(obj.id(), metadata.Folders.Display)
		state.Append(display)
		for _, x := range defs.Display {
			entry, err := obj.element(display.ID, x)
			if err != nil {
				return nil, err
			}
			state.Append(entry)
		}
	}

	if ticker := defs.Ticker; ticker != nil {
		handler, err := obj.translateAction(ticker.Action)
		if err != nil {
			return nil, err
		}
		state.Expressions.Ticker = &document.Ticker{
			Open:         true,
			Playing:      metadata.Playing,
			HandlerLatex: latex.Render(handler),
		}
		if ticker.Interval != nil {
			step, err := obj.translateExpr(ticker.Interval)
			if err != nil {
				return nil, err
			}
			state.Expressions.Ticker.MinStepLatex = latex.Render(step)
		}
	}

	return state, nil
}

// definition builds the hidden entry that defines a top level name.
func (obj *compiler) definition(folderID, name string, value latex.SyntaxNode) (*document.Expression, error) {
	sig, exists := obj.sigs.Lookup(name)
	if !exists {
		return nil, fmt.Errorf("'%s' has no signature", name)
	}
	lhs := obj.signature(sig)
	entry := document.NewExpression(obj.id(), folderID, latex.Render(&latex.Equality{Lhs: lhs, Rhs: value}))
	entry.Hidden = true
	return entry, nil
}

// signature is the left hand side of a definition: the bare name, or the name
// applied to its parameters.
func (obj *compiler) signature(sig *ast.Signature) latex.SyntaxNode {
	if len(sig.Params) == 0 {
		return name(sig.Name)
	}
	params := []latex.SyntaxNode{}
	for _, x := range sig.Params {
		params = append(params, name(x.Name))
	}
	return &latex.Call{Callee: name(sig.Name), Args: &latex.Sequence{Elements: params}}
}
