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

// attrArgs parses the argument list of an attribute and checks its arity. The
// cursor must be on the attribute name, and is left after the closing paren.
func (obj *Parser) attrArgs(name string, lo, hi int) ([]*ast.Expr, error) {
	tok, _ := obj.Token()
	start := tok.Start
	obj.Next()
	args, err := obj.ParseCall()
	if err != nil {
		return nil, err
	}
	closer, _ := obj.Token()
	end := closer.End
	obj.Next()

	if len(args) < lo || len(args) > hi {
		msg := fmt.Sprintf("expected %d-%d arguments for '%s' attribute", lo, hi, name)
		if lo == hi {
			msg = fmt.Sprintf("expected %d argument for '%s' attribute", lo, name)
		}
		return nil, interfaces.NewError(msg, &start, &end)
	}
	return args, nil
}

// optional returns the argument at index i, or a real constant if there are
// not enough arguments.
func optional(args []*ast.Expr, i int, def float64) *ast.Expr {
	if i < len(args) {
		return args[i]
	}
	return ast.NewLiteral(&types.RealValue{V: def})
}

// constantString returns the string in a literal expression.
func constantString(expr *ast.Expr) (string, error) {
	s, ok := expr.Str()
	if !ok {
		return "", interfaces.NewError(string(ErrParseExpectedString), expr.Start, expr.End)
	}
	return s, nil
}

// choice reads a string argument which must be one of the given choices.
func choice(expr *ast.Expr, choices ...string) (string, error) {
	s, err := constantString(expr)
	if err != nil {
		return "", err
	}
	for _, x := range choices {
		if s == x {
			return s, nil
		}
	}
	return "", interfaces.NewError("expected string "+oneOf(choices), expr.Start, expr.End)
}

func (obj *Parser) parsePointAttr() (*ast.PointAttr, error) {
	args, err := obj.attrArgs("point", 1, 3)
	if err != nil {
		return nil, err
	}
	attr := &ast.PointAttr{
		Size:    args[0],
		Opacity: optional(args, 1, 1),
		Style:   ast.PointStylePoint,
	}
	if len(args) == 3 {
		s, err := choice(args[2], string(ast.PointStylePoint), string(ast.PointStyleOpen), string(ast.PointStyleCross))
		if err != nil {
			return nil, err
		}
		attr.Style = ast.PointStyle(s)
	}
	return attr, nil
}

func (obj *Parser) parseStrokeAttr() (*ast.StrokeAttr, error) {
	args, err := obj.attrArgs("stroke", 1, 3)
	if err != nil {
		return nil, err
	}
	attr := &ast.StrokeAttr{
		Width:   args[0],
		Opacity: optional(args, 1, 1),
		Style:   ast.StrokeStyleSolid,
	}
	if len(args) == 3 {
		s, err := choice(args[2], string(ast.StrokeStyleSolid), string(ast.StrokeStyleDashed), string(ast.StrokeStyleDotted))
		if err != nil {
			return nil, err
		}
		attr.Style = ast.StrokeStyle(s)
	}
	return attr, nil
}

func (obj *Parser) parseFillAttr() (*ast.FillAttr, error) {
	args, err := obj.attrArgs("fill", 0, 1)
	if err != nil {
		return nil, err
	}
	return &ast.FillAttr{
		Opacity: optional(args, 0, 1),
	}, nil
}

var labelOrientations = []string{
	string(ast.LabelCenter),
	string(ast.LabelLeft),
	string(ast.LabelRight),
	string(ast.LabelAbove),
	string(ast.LabelBelow),
	string(ast.LabelAboveLeft),
	string(ast.LabelAboveRight),
	string(ast.LabelBelowLeft),
	string(ast.LabelBelowRight),
}

func (obj *Parser) parseLabelAttr() (*ast.LabelAttr, error) {
	args, err := obj.attrArgs("label", 1, 5)
	if err != nil {
		return nil, err
	}
	text, err := constantString(args[0])
	if err != nil {
		return nil, err
	}
	attr := &ast.LabelAttr{
		Text:        text,
		Opacity:     optional(args, 1, 1),
		Scale:       optional(args, 2, 1),
		Angle:       optional(args, 3, 0),
		Orientation: ast.LabelCenter,
	}
	if len(args) == 5 {
		s, err := choice(args[4], labelOrientations...)
		if err != nil {
			return nil, err
		}
		attr.Orientation = ast.LabelOrientation(s)
	}
	return attr, nil
}

func (obj *Parser) parseDragAttr() (*ast.DragAttr, error) {
	args, err := obj.attrArgs("drag", 0, 1)
	if err != nil {
		return nil, err
	}
	attr := &ast.DragAttr{
		Mode: ast.DragXY,
	}
	if len(args) == 1 {
		s, err := choice(args[0], string(ast.DragXY), string(ast.DragX), string(ast.DragY))
		if err != nil {
			return nil, err
		}
		attr.Mode = ast.DragMode(s)
	}
	return attr, nil
}

func (obj *Parser) parseClickAttr() (*ast.ClickAttr, error) {
	obj.Next()
	action, err := obj.ParseAction(false)
	if err != nil {
		return nil, err
	}
	return &ast.ClickAttr{
		Action: action,
	}, nil
}

func (obj *Parser) parseDescriptionAttr() (*ast.DescriptionAttr, error) {
	args, err := obj.attrArgs("description", 1, 1)
	if err != nil {
		return nil, err
	}
	text, err := constantString(args[0])
	if err != nil {
		return nil, err
	}
	return &ast.DescriptionAttr{
		Text: text,
	}, nil
}

// parseElement parses one `what: color, attr(...), ...;` display element. The
// cursor is left on the semicolon.
func (obj *Parser) parseElement() (*ast.Element, error) {
	what, err := obj.ParseExpr([]token.Symbol{token.SymbolColon}, nil)
	if err != nil {
		return nil, err
	}
	obj.Next()
	color, err := obj.ParseExpr([]token.Symbol{token.SymbolComma, token.SymbolSemicolon}, nil)
	if err != nil {
		return nil, err
	}
	element := &ast.Element{
		What:  what,
		Color: color,
	}
	if at, _ := obj.IsAtSymbol(token.SymbolComma); at {
		obj.Next()
	}

	for {
		at, err := obj.IsAtSymbol(token.SymbolSemicolon)
		if err != nil {
			return nil, err
		}
		if at {
			break
		}

		tok, _ := obj.Token()
		name, err := obj.ExpectName()
		if err != nil {
			return nil, err
		}
		duplicate := errorAt(tok, fmt.Sprintf("only one '%s' attribute can be defined per element", name))

		switch name {
		case "point":
			if element.Point != nil {
				return nil, duplicate
			}
			element.Point, err = obj.parsePointAttr()
		case "stroke":
			if element.Stroke != nil {
				return nil, duplicate
			}
			element.Stroke, err = obj.parseStrokeAttr()
		case "fill":
			if element.Fill != nil {
				return nil, duplicate
			}
			element.Fill, err = obj.parseFillAttr()
		case "label":
			if element.Label != nil {
				return nil, duplicate
			}
			element.Label, err = obj.parseLabelAttr()
		case "drag":
			if element.Drag != nil {
				return nil, duplicate
			}
			element.Drag, err = obj.parseDragAttr()
		case "click":
			if element.Click != nil {
				return nil, duplicate
			}
			element.Click, err = obj.parseClickAttr()
		case "description":
			if element.Description != nil {
				return nil, duplicate
			}
			element.Description, err = obj.parseDescriptionAttr()
		default:
			return nil, errorAt(tok, fmt.Sprintf("%s '%s'", ErrParseUnknownAttribute, name))
		}
		if err != nil {
			return nil, err
		}

		if err := obj.ExpectOneOf([]token.Symbol{token.SymbolComma, token.SymbolSemicolon}, nil); err != nil {
			return nil, err
		}
		if at, _ := obj.IsAtSymbol(token.SymbolComma); at {
			obj.Next()
		}
	}
	return element, nil
}
