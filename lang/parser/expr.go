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
	"fmt"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/token"
	"github.com/purpleidea/figura/lang/types"
)

// pending is an operator waiting on the stack for its operands.
type pending struct {
	op    ast.Operation
	count int
}

// stacks holds the state of one expression being parsed.
type stacks struct {
	operators []pending
	operands  []*ast.Expr
}

func (obj *stacks) push(expr *ast.Expr) {
	obj.operands = append(obj.operands, expr)
}

// reduce pops the top operator and wraps its operands into one expression.
func (obj *Parser) reduce(s *stacks) error {
	p := s.operators[len(s.operators)-1]
	s.operators = s.operators[:len(s.operators)-1]

	n := len(s.operands)
	if n < p.count {
		msg := fmt.Sprintf("too few operands for operation (expected %d, got %d)", p.count, n)
		tok, err := obj.Token()
		if err != nil {
			return interfaces.NewError(msg, nil, nil)
		}
		start := tok.Start
		return interfaces.NewError(msg, &start, &start)
	}
	children := append([]*ast.Expr{}, s.operands[n-p.count:]...)
	s.operands = s.operands[:n-p.count]
	s.push(ast.NewOperator(p.op, children))
	return nil
}

// operand builds the expression for a literal or name token.
func operand(tok *token.Token) *ast.Expr {
	var expr *ast.Expr
	switch tok.Kind {
	case token.KindName:
		expr = ast.NewName(tok.Name)
	case token.KindInt:
		expr = ast.NewLiteral(&types.IntValue{V: tok.Int})
	case token.KindReal:
		expr = ast.NewLiteral(&types.RealValue{V: tok.Real})
	case token.KindBool:
		expr = ast.NewLiteral(&types.BoolValue{V: tok.Bool})
	case token.KindStr:
		expr = ast.NewLiteral(&types.StrValue{V: tok.Str})
	default:
		panic(fmt.Sprintf("token is not an operand: %s", tok))
	}
	start, end := tok.Start, tok.End
	expr.Locate(&start, &end)
	return expr
}

// operation returns the operation a symbol or keyword token stands for.
func operation(tok *token.Token, expectOperand bool) (ast.Operation, bool) {
	switch tok.Kind {
	case token.KindSymbol:
		return ast.OperationFromSymbol(tok.Symbol, expectOperand)
	case token.KindKeyword:
		return ast.OperationFromKeyword(tok.Keyword, expectOperand)
	}
	return 0, false
}

// ParseExpr parses one expression with operator precedence. The cursor is left
// on the terminator, which is the first of the given symbols or keywords found
// where an operator could appear. This makes the parser reentrant for the
// nested parts of containers, calls and declarations.
func (obj *Parser) ParseExpr(endSymbols []token.Symbol, endKeywords []token.Keyword) (*ast.Expr, error) {
	s := &stacks{}
	expectOperand := true

	for {
		tok, err := obj.Token()
		if err != nil {
			return nil, err
		}
		if (!expectOperand || len(s.operands) == 0) && tok.IsOneOf(endSymbols, endKeywords) {
			break
		}

		if !tok.IsSymbolOrKeyword() {
			if !expectOperand {
				return nil, errorAt(tok, expectedOneOf(endSymbols, endKeywords))
			}
			s.push(operand(tok))
			expectOperand = false
			obj.Next()
			continue
		}

		if expectOperand {
			var container *ast.Expr
			switch {
			case tok.IsSymbol(token.SymbolParenLeft):
				container, err = obj.parseParen()
			case tok.IsSymbol(token.SymbolSquareLeft):
				container, err = obj.parseList()
			case tok.IsSymbol(token.SymbolCurlyLeft):
				container, err = obj.parseConditional()
			}
			if err != nil {
				return nil, err
			}
			if container != nil {
				s.push(container)
				expectOperand = false
				continue
			}
		}

		op, ok := operation(tok, expectOperand)
		if !ok {
			if expectOperand {
				return nil, errorAt(tok, string(ErrParseExpectedOperand))
			}
			return nil, errorAt(tok, expectedOneOf(endSymbols, endKeywords))
		}
		for len(s.operators) > 0 && s.operators[len(s.operators)-1].op.Precedes(op) {
			if err := obj.reduce(s); err != nil {
				return nil, err
			}
		}

		count := 2
		if op == ast.OpActionCall {
			obj.Next()
			nameTok, err := obj.Token()
			if err != nil {
				return nil, err
			}
			if _, err := obj.ExpectName(); err != nil {
				return nil, err
			}
			s.push(operand(nameTok))
			obj.Next()
		}

		switch op {
		case ast.OpCall, ast.OpActionCall:
			args, err := obj.ParseCall()
			if err != nil {
				return nil, err
			}
			count = 1 + len(args)
			s.operands = append(s.operands, args...)

		case ast.OpIndex:
			obj.Next()
			index, err := obj.ParseExpr([]token.Symbol{token.SymbolSquareRight}, nil)
			if err != nil {
				return nil, err
			}
			s.push(index)

		case ast.OpBuiltIn, ast.OpPosate, ast.OpNegate, ast.OpNot:
			count = 1
		}

		s.operators = append(s.operators, pending{op: op, count: count})
		switch op {
		case ast.OpCall, ast.OpActionCall, ast.OpIndex:
			if err := obj.reduce(s); err != nil {
				return nil, err
			}
			expectOperand = false
		default:
			expectOperand = true
		}
		obj.Next()
	}

	tok, err := obj.Token()
	if err != nil {
		return nil, err
	}
	start := tok.Start
	if expectOperand {
		return nil, interfaces.NewError(string(ErrParseExpectedOperand), &start, &start)
	}
	for len(s.operators) > 0 {
		if err := obj.reduce(s); err != nil {
			return nil, err
		}
	}
	if n := len(s.operands); n != 1 {
		return nil, interfaces.Errorf(&start, &start, "expression resolved to %d operands instead of 1 as expected", n)
	}
	return s.operands[0], nil
}

// enclose sets the area of a container expression to span its brackets.
func enclose(expr *ast.Expr, open, closer *token.Token) *ast.Expr {
	start, end := open.Start, closer.End
	expr.Locate(&start, &end)
	return expr
}

// parseParen parses a parenthesized expression or a point literal `(x, y)`.
func (obj *Parser) parseParen() (*ast.Expr, error) {
	open, _ := obj.Token()
	obj.Next()
	first, err := obj.ParseExpr([]token.Symbol{token.SymbolComma, token.SymbolParenRight}, nil)
	if err != nil {
		return nil, err
	}
	expr := first
	if ok, _ := obj.IsAtSymbol(token.SymbolComma); ok {
		obj.Next()
		second, err := obj.ParseExpr([]token.Symbol{token.SymbolParenRight}, nil)
		if err != nil {
			return nil, err
		}
		expr = ast.NewOperator(ast.OpPointLiteral, []*ast.Expr{first, second})
	}
	closer, _ := obj.Token() // on the closing paren
	obj.Next()
	if expr != first {
		enclose(expr, open, closer)
	}
	return expr, nil
}

// parseList parses every bracketed list form: literals, `[v; n]` fills, the
// `for` and `where` comprehensions, and ranges. A `where` after `for` clauses
// filters the comprehension.
func (obj *Parser) parseList() (*ast.Expr, error) {
	open, _ := obj.Token()
	obj.Next()
	closing := []token.Symbol{token.SymbolSquareRight}
	items := []*ast.Expr{}

	for {
		at, err := obj.IsAtSymbol(token.SymbolSquareRight)
		if err != nil {
			return nil, err
		}
		if at {
			break
		}

		item, err := obj.ParseExpr([]token.Symbol{
			token.SymbolComma,
			token.SymbolSquareRight,
			token.SymbolSemicolon,
			token.SymbolExclusiveRange,
			token.SymbolInclusiveRange,
		}, []token.Keyword{
			token.KeywordFor,
			token.KeywordWhere,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		tok, _ := obj.Token() // on the terminator
		switch {
		case tok.IsSymbol(token.SymbolComma):
			obj.Next()

		case tok.IsSymbol(token.SymbolSemicolon):
			if len(items) != 1 {
				return nil, errorAt(tok, string(ErrParseUnexpectedFill))
			}
			obj.Next()
			count, err := obj.ParseExpr(closing, nil)
			if err != nil {
				return nil, err
			}
			expr := ast.NewOperator(ast.OpListFill, []*ast.Expr{item, count})
			return obj.closeList(expr, open), nil

		case tok.IsKeyword(token.KeywordWhere):
			if len(items) != 1 {
				return nil, errorAt(tok, string(ErrParseComprehension))
			}
			obj.Next()
			cond, err := obj.ParseExpr(closing, nil)
			if err != nil {
				return nil, err
			}
			expr := ast.NewOperator(ast.OpListFilter, []*ast.Expr{item, cond})
			return obj.closeList(expr, open), nil

		case tok.IsKeyword(token.KeywordFor):
			if len(items) != 1 {
				return nil, errorAt(tok, string(ErrParseComprehension))
			}
			expr := item
			for {
				if at, err := obj.IsAtKeyword(token.KeywordFor); err != nil {
					return nil, err
				} else if !at {
					break
				}
				obj.Next()
				variable, err := obj.ParseExpr(nil, []token.Keyword{token.KeywordIn})
				if err != nil {
					return nil, err
				}
				obj.Next()
				source, err := obj.ParseExpr(closing, []token.Keyword{token.KeywordFor, token.KeywordWhere})
				if err != nil {
					return nil, err
				}
				expr = ast.NewOperator(ast.OpListMap, []*ast.Expr{expr, variable, source})
			}
			if at, _ := obj.IsAtKeyword(token.KeywordWhere); at {
				obj.Next()
				cond, err := obj.ParseExpr(closing, nil)
				if err != nil {
					return nil, err
				}
				expr = ast.NewOperator(ast.OpListFilter, []*ast.Expr{expr, cond})
			}
			return obj.closeList(expr, open), nil

		case tok.IsSymbol(token.SymbolExclusiveRange), tok.IsSymbol(token.SymbolInclusiveRange):
			op := ast.OpExclusiveRange
			if tok.IsSymbol(token.SymbolInclusiveRange) {
				op = ast.OpInclusiveRange
			}
			obj.Next()
			last, err := obj.ParseExpr(closing, nil)
			if err != nil {
				return nil, err
			}
			expr := ast.NewOperator(op, append(items, last))
			return obj.closeList(expr, open), nil
		}
	}

	return obj.closeList(ast.NewOperator(ast.OpListLiteral, items), open), nil
}

// closeList consumes the closing bracket of a list form.
func (obj *Parser) closeList(expr *ast.Expr, open *token.Token) *ast.Expr {
	closer, _ := obj.Token()
	obj.Next()
	return enclose(expr, open, closer)
}

// parseConditional parses `{cond: value, cond: value, default}`. The default
// is optional, so the operand count is odd exactly when it is present.
func (obj *Parser) parseConditional() (*ast.Expr, error) {
	open, _ := obj.Token()
	obj.Next()
	cond, err := obj.ParseExpr([]token.Symbol{token.SymbolColon}, nil)
	if err != nil {
		return nil, err
	}
	operands := []*ast.Expr{cond}

	for {
		if at, err := obj.IsAtSymbol(token.SymbolColon); err != nil {
			return nil, err
		} else if !at {
			break
		}
		obj.Next()
		value, err := obj.ParseExpr([]token.Symbol{token.SymbolComma, token.SymbolCurlyRight}, nil)
		if err != nil {
			return nil, err
		}
		operands = append(operands, value)
		if at, _ := obj.IsAtSymbol(token.SymbolComma); at {
			obj.Next()
		}
		if at, err := obj.IsAtSymbol(token.SymbolCurlyRight); err != nil {
			return nil, err
		} else if at {
			break
		}
		next, err := obj.ParseExpr([]token.Symbol{token.SymbolColon, token.SymbolComma, token.SymbolCurlyRight}, nil)
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}

	if at, _ := obj.IsAtSymbol(token.SymbolCurlyRight); !at {
		obj.Next()
		if err := obj.ExpectSymbol(token.SymbolCurlyRight); err != nil {
			return nil, err
		}
	}
	closer, _ := obj.Token()
	obj.Next()
	return enclose(ast.NewOperator(ast.OpConditional, operands), open, closer), nil
}

// ParseCall parses a parenthesized argument list. The cursor must be on the
// opening paren, and is left on the closing one.
func (obj *Parser) ParseCall() ([]*ast.Expr, error) {
	if err := obj.ExpectSymbol(token.SymbolParenLeft); err != nil {
		return nil, err
	}
	obj.Next()
	args := []*ast.Expr{}
	for {
		at, err := obj.IsAtSymbol(token.SymbolParenRight)
		if err != nil {
			return nil, err
		}
		if at {
			break
		}
		arg, err := obj.ParseExpr([]token.Symbol{token.SymbolComma, token.SymbolParenRight}, nil)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if at, _ := obj.IsAtSymbol(token.SymbolComma); at {
			obj.Next()
		}
	}
	return args, nil
}

// ParseType parses a type: a name, `?` for unknown, or `[T]` for a list. The
// type must be followed by one of the given symbols or keywords.
func (obj *Parser) ParseType(endSymbols []token.Symbol, endKeywords []token.Keyword) (*types.Type, error) {
	isList, err := obj.IsAtSymbol(token.SymbolSquareLeft)
	if err != nil {
		return nil, err
	}
	if isList {
		obj.Next()
	}

	typ := types.TypeUnknown
	if at, err := obj.IsAtSymbol(token.SymbolQuestion); err != nil {
		return nil, err
	} else if !at {
		name, err := obj.ExpectName()
		if err != nil {
			return nil, err
		}
		typ = types.NewType(name)
	}
	obj.Next()

	if isList {
		if err := obj.ExpectSymbol(token.SymbolSquareRight); err != nil {
			return nil, err
		}
		obj.Next()
		typ = types.NewList(typ)
	}
	if err := obj.ExpectOneOf(endSymbols, endKeywords); err != nil {
		return nil, err
	}
	return typ, nil
}

// parseParams parses the optional parameter list after a declared name. The
// cursor must be on the name. It returns nil if there is no list at all.
func (obj *Parser) parseParams() ([]*ast.Param, error) {
	obj.Next()
	if at, err := obj.IsAtSymbol(token.SymbolParenLeft); err != nil || !at {
		return nil, err
	}
	obj.Next()

	params := []*ast.Param{}
	for {
		at, err := obj.IsAtSymbol(token.SymbolParenRight)
		if err != nil {
			return nil, err
		}
		if at {
			break
		}
		name, err := obj.ExpectName()
		if err != nil {
			return nil, err
		}
		obj.Next()
		if err := obj.ExpectOneOf([]token.Symbol{token.SymbolColon, token.SymbolComma, token.SymbolParenRight}, nil); err != nil {
			return nil, err
		}
		param := &ast.Param{
			Name: name,
			Type: types.TypeUnknown,
		}
		if at, _ := obj.IsAtSymbol(token.SymbolColon); at {
			obj.Next()
			typ, err := obj.ParseType([]token.Symbol{token.SymbolComma, token.SymbolParenRight}, nil)
			if err != nil {
				return nil, err
			}
			param.Type = typ
		}
		params = append(params, param)
		if at, _ := obj.IsAtSymbol(token.SymbolComma); at {
			obj.Next()
		}
	}
	obj.Next()
	return params, nil
}
