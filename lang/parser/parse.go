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
	"github.com/purpleidea/figura/lang/token"
	"github.com/purpleidea/figura/lang/types"
)

var itemStart = []token.Keyword{
	token.KeywordPublic,
	token.KeywordTicker,
	token.KeywordDisplay,
	token.KeywordAction,
	token.KeywordConst,
	token.KeywordLet,
	token.KeywordVar,
	token.KeywordEnum,
}

var semicolon = []token.Symbol{token.SymbolSemicolon}

// Parse consumes all of the tokens and returns the table of signatures and the
// definitions. Every top level item starts with a keyword, or is a stray
// semicolon which is ignored.
func Parse(tokens []*token.Token) (*ast.Signatures, *ast.Definitions, error) {
	obj := NewParser(tokens)
	sigs := ast.NewSignatures()
	defs := ast.NewDefinitions()

	for !obj.Done() {
		if err := obj.ExpectOneOf(semicolon, itemStart); err != nil {
			return nil, nil, err
		}
		tok, _ := obj.Token()

		var err error
		switch {
		case tok.IsSymbol(token.SymbolSemicolon):
			obj.Next()
		case tok.IsKeyword(token.KeywordPublic):
			err = obj.parsePublic(defs)
		case tok.IsKeyword(token.KeywordTicker):
			err = obj.parseTicker(defs)
		case tok.IsKeyword(token.KeywordDisplay):
			err = obj.parseDisplay(defs)
		case tok.IsKeyword(token.KeywordAction):
			err = obj.parseActionDecl(sigs, defs)
		case tok.IsKeyword(token.KeywordConst):
			err = obj.parseValueDecl(sigs, defs, ast.SignatureConst)
		case tok.IsKeyword(token.KeywordLet):
			err = obj.parseValueDecl(sigs, defs, ast.SignatureLet)
		case tok.IsKeyword(token.KeywordVar):
			err = obj.parseVarDecl(sigs, defs)
		case tok.IsKeyword(token.KeywordEnum):
			err = obj.parseEnumDecl(sigs, defs)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return sigs, defs, nil
}

// declare adds a signature, and errors at the name token if it is taken.
func declare(sigs *ast.Signatures, sig *ast.Signature, nameTok *token.Token) error {
	start, end := nameTok.Start, nameTok.End
	sig.Locate(&start, &end)
	if prev, ok := sigs.Add(sig); !ok {
		return errorAt(nameTok, fmt.Sprintf("%s '%s'", ErrParseNameConflict, prev))
	}
	return nil
}

// duplicateBlock is the error for a second public, ticker or display block.
func duplicateBlock(tok *token.Token) error {
	return errorAt(tok, fmt.Sprintf("only one '%s' block can be declared", tok.Keyword))
}

// parseBlockOpen checks for a repeated block and moves past the opening brace.
func (obj *Parser) parseBlockOpen() error {
	obj.Next()
	if err := obj.ExpectSymbol(token.SymbolCurlyLeft); err != nil {
		return err
	}
	obj.Next()
	return nil
}

func (obj *Parser) parsePublic(defs *ast.Definitions) error {
	tok, _ := obj.Token()
	if defs.HasPublic {
		return duplicateBlock(tok)
	}
	if err := obj.parseBlockOpen(); err != nil {
		return err
	}
	defs.HasPublic = true

	for {
		at, err := obj.IsAtSymbol(token.SymbolCurlyRight)
		if err != nil {
			return err
		}
		if at {
			break
		}
		expr, err := obj.ParseExpr([]token.Symbol{token.SymbolSemicolon, token.SymbolCurlyRight}, nil)
		if err != nil {
			return err
		}
		defs.Public = append(defs.Public, expr)
		for {
			if at, _ := obj.IsAtSymbol(token.SymbolSemicolon); !at {
				break
			}
			obj.Next()
		}
	}
	obj.Next()
	return nil
}

func (obj *Parser) parseTicker(defs *ast.Definitions) error {
	tok, _ := obj.Token()
	if defs.Ticker != nil {
		return duplicateBlock(tok)
	}
	obj.Next()

	ticker := &ast.Ticker{}
	if at, err := obj.IsAtSymbol(token.SymbolParenLeft); err != nil {
		return err
	} else if at {
		obj.Next()
		interval, err := obj.ParseExpr([]token.Symbol{token.SymbolParenRight}, nil)
		if err != nil {
			return err
		}
		ticker.Interval = interval
		obj.Next()
	}
	action, err := obj.ParseAction(false)
	if err != nil {
		return err
	}
	ticker.Action = action
	defs.Ticker = ticker
	return nil
}

func (obj *Parser) parseDisplay(defs *ast.Definitions) error {
	tok, _ := obj.Token()
	if defs.HasDisplay {
		return duplicateBlock(tok)
	}
	if err := obj.parseBlockOpen(); err != nil {
		return err
	}
	defs.HasDisplay = true

	for {
		at, err := obj.IsAtSymbol(token.SymbolCurlyRight)
		if err != nil {
			return err
		}
		if at {
			break
		}
		element, err := obj.parseElement()
		if err != nil {
			return err
		}
		defs.Display = append(defs.Display, element)
		for {
			if at, _ := obj.IsAtSymbol(token.SymbolSemicolon); !at {
				break
			}
			obj.Next()
		}
	}
	obj.Next()
	return nil
}

// parseName returns the name token under the cursor.
func (obj *Parser) parseName() (*token.Token, error) {
	tok, err := obj.Token()
	if err != nil {
		return nil, err
	}
	if _, err := obj.ExpectName(); err != nil {
		return nil, err
	}
	return tok, nil
}

func (obj *Parser) parseActionDecl(sigs *ast.Signatures, defs *ast.Definitions) error {
	obj.Next()
	nameTok, err := obj.parseName()
	if err != nil {
		return err
	}
	params, err := obj.parseParams()
	if err != nil {
		return err
	}
	body, err := obj.ParseAction(false)
	if err != nil {
		return err
	}
	sig := &ast.Signature{
		Kind:   ast.SignatureAction,
		Name:   nameTok.Name,
		Params: params,
		Type:   types.NewAction(nameTok.Name),
	}
	if err := declare(sigs, sig, nameTok); err != nil {
		return err
	}
	defs.Actions[sig.Name] = body
	return nil
}

// parseDeclType parses the optional `: type` and the `=` which follows.
func (obj *Parser) parseDeclType() (*types.Type, error) {
	typ := types.TypeUnknown
	at, err := obj.IsAtSymbol(token.SymbolColon)
	if err != nil {
		return nil, err
	}
	if at {
		obj.Next()
		if typ, err = obj.ParseType([]token.Symbol{token.SymbolEqual}, nil); err != nil {
			return nil, err
		}
	} else if err := obj.ExpectSymbol(token.SymbolEqual); err != nil {
		return nil, err
	}
	obj.Next()
	return typ, nil
}

// parseValue parses the initializer up to and including the semicolon.
func (obj *Parser) parseValue() (*ast.Expr, error) {
	value, err := obj.ParseExpr(semicolon, nil)
	if err != nil {
		return nil, err
	}
	obj.Next()
	return value, nil
}

func (obj *Parser) parseValueDecl(sigs *ast.Signatures, defs *ast.Definitions, kind ast.SignatureKind) error {
	obj.Next()
	nameTok, err := obj.parseName()
	if err != nil {
		return err
	}
	params, err := obj.parseParams()
	if err != nil {
		return err
	}
	typ, err := obj.parseDeclType()
	if err != nil {
		return err
	}
	value, err := obj.parseValue()
	if err != nil {
		return err
	}
	sig := &ast.Signature{
		Kind:   kind,
		Name:   nameTok.Name,
		Params: params,
		Type:   typ,
	}
	if err := declare(sigs, sig, nameTok); err != nil {
		return err
	}
	defs.Identifiers[sig.Name] = value
	return nil
}

func (obj *Parser) parseVarDecl(sigs *ast.Signatures, defs *ast.Definitions) error {
	obj.Next()
	qualifier := ast.QualifierNone
	if at, err := obj.IsAtKeyword(token.KeywordTimer); err != nil {
		return err
	} else if at {
		qualifier = ast.QualifierTimer
		obj.Next()
	}
	nameTok, err := obj.parseName()
	if err != nil {
		return err
	}
	obj.Next()
	typ, err := obj.parseDeclType()
	if err != nil {
		return err
	}
	value, err := obj.parseValue()
	if err != nil {
		return err
	}
	sig := &ast.Signature{
		Kind:      ast.SignatureVar,
		Name:      nameTok.Name,
		Type:      typ,
		Qualifier: qualifier,
	}
	if err := declare(sigs, sig, nameTok); err != nil {
		return err
	}
	defs.Identifiers[sig.Name] = value
	return nil
}

func (obj *Parser) parseEnumDecl(sigs *ast.Signatures, defs *ast.Definitions) error {
	obj.Next()
	nameTok, err := obj.parseName()
	if err != nil {
		return err
	}
	obj.Next()
	if err := obj.ExpectSymbol(token.SymbolCurlyLeft); err != nil {
		return err
	}
	obj.Next()

	variants := []string{}
	for {
		at, err := obj.IsAtSymbol(token.SymbolCurlyRight)
		if err != nil {
			return err
		}
		if at {
			break
		}
		variant, err := obj.ExpectName()
		if err != nil {
			return err
		}
		variants = append(variants, variant)
		obj.Next()
		if err := obj.ExpectOneOf([]token.Symbol{token.SymbolComma, token.SymbolCurlyRight}, nil); err != nil {
			return err
		}
		if at, _ := obj.IsAtSymbol(token.SymbolComma); at {
			obj.Next()
		}
	}
	obj.Next()

	sig := &ast.Signature{
		Kind:     ast.SignatureEnum,
		Name:     nameTok.Name,
		Type:     types.NewUser(nameTok.Name),
		Variants: variants,
	}
	if err := declare(sigs, sig, nameTok); err != nil {
		return err
	}
	defs.Enums[sig.Name] = variants
	return nil
}
