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

package parser

import (
	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/token"
)

var actionEnd = []token.Symbol{token.SymbolComma, token.SymbolCurlyRight}

// ParseAction parses a braced block of actions. If inline is allowed, a single
// update or action call may also appear without the braces, and the cursor is
// left on the comma or brace that ends it. A block is consumed including its
// closing brace, and a block of one action is returned as that action.
func (obj *Parser) ParseAction(allowInline bool) (ast.Action, error) {
	at, err := obj.IsAtSymbol(token.SymbolCurlyLeft)
	if err != nil {
		return nil, err
	}
	if !at {
		if !allowInline {
			return nil, obj.ExpectSymbol(token.SymbolCurlyLeft)
		}
		return obj.parseInlineAction()
	}
	obj.Next()

	actions := []ast.Action{}
	for {
		at, err := obj.IsAtSymbol(token.SymbolCurlyRight)
		if err != nil {
			return nil, err
		}
		if at {
			break
		}

		var action ast.Action
		if at, _ := obj.IsAtKeyword(token.KeywordIf); at {
			action, err = obj.parseIf()
		} else {
			action, err = obj.ParseAction(true)
		}
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)

		if at, _ := obj.IsAtSymbol(token.SymbolComma); at {
			obj.Next()
		}
	}
	obj.Next()

	if len(actions) == 1 {
		return actions[0], nil
	}
	return &ast.ActionBlock{Actions: actions}, nil
}

// parseInlineAction reads one expression and reinterprets its top operator as
// an update or an action call.
func (obj *Parser) parseInlineAction() (ast.Action, error) {
	expr, err := obj.ParseExpr(actionEnd, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case expr.IsOp(ast.OpUpdate):
		return &ast.ActionUpdate{
			Target: expr.Operands[0],
			Value:  expr.Operands[1],
		}, nil

	case expr.IsOp(ast.OpActionCall):
		return &ast.ActionCall{
			Callee: expr.Operands[0],
			Args:   expr.Operands[1:],
		}, nil
	}
	return nil, interfaces.NewError(string(ErrParseExpectedAction), expr.Start, expr.End)
}

// parseIf parses an `if c: a, elif c: a, else: a` chain. Each branch body is an
// inline action or a braced block, and may be followed by a comma.
func (obj *Parser) parseIf() (ast.Action, error) {
	action := &ast.ActionConditional{
		Branches: []*ast.Branch{},
	}
	kw := token.KeywordIf
	for {
		if at, err := obj.IsAtKeyword(kw); err != nil {
			return nil, err
		} else if !at {
			break
		}
		obj.Next()
		cond, err := obj.ParseExpr([]token.Symbol{token.SymbolColon}, nil)
		if err != nil {
			return nil, err
		}
		obj.Next()
		body, err := obj.parseBranch()
		if err != nil {
			return nil, err
		}
		action.Branches = append(action.Branches, &ast.Branch{
			Cond: cond,
			Body: body,
		})
		kw = token.KeywordElif
	}

	if at, _ := obj.IsAtKeyword(token.KeywordElse); !at {
		return action, nil
	}
	obj.Next()
	if err := obj.ExpectSymbol(token.SymbolColon); err != nil {
		return nil, err
	}
	obj.Next()
	body, err := obj.parseBranch()
	if err != nil {
		return nil, err
	}
	action.Default = body
	return action, nil
}

// parseBranch parses the body of one arm and skips a trailing comma, so that
// an `elif` or `else` can follow.
func (obj *Parser) parseBranch() (ast.Action, error) {
	body, err := obj.ParseAction(true)
	if err != nil {
		return nil, err
	}
	if at, _ := obj.IsAtSymbol(token.SymbolComma); at {
		obj.Next()
	}
	return body, nil
}
