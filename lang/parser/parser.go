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

// Package parser turns a list of tokens into the signature table and the
// definitions of a program.
package parser

import (
	"fmt"
	"strings"

	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/token"
)

// These constants represent the different possible parser errors.
const (
	ErrParseUnexpectedEOF    = interfaces.Error("unexpected end of file")
	ErrParseExpectedOperand  = interfaces.Error("expected an operand")
	ErrParseExpectedName     = interfaces.Error("expected a name")
	ErrParseExpectedString   = interfaces.Error("expected a string")
	ErrParseExpectedAction   = interfaces.Error("expected action call or variable update")
	ErrParseUnexpectedFill   = interfaces.Error("unexpected ';'")
	ErrParseComprehension    = interfaces.Error("list comprehension following multiple elements")
	ErrParseNameConflict     = interfaces.Error("name conflicts with previous")
	ErrParseUnknownAttribute = interfaces.Error("unknown display attribute")
)

// Parser is a cursor over a list of tokens. The methods which parse something
// leave the cursor on the first token they did not consume.
type Parser struct {
	tokens []*token.Token
	index  int
}

// NewParser returns a parser at the start of the tokens.
func NewParser(tokens []*token.Token) *Parser {
	return &Parser{
		tokens: tokens,
		index:  0,
	}
}

// Done returns true when every token was consumed.
func (obj *Parser) Done() bool {
	return obj.index >= len(obj.tokens)
}

// Next moves the cursor forward by one token.
func (obj *Parser) Next() {
	obj.index++
}

// Token returns the token under the cursor. It errors at the end of the input,
// with the location of the end of the last token.
func (obj *Parser) Token() (*token.Token, error) {
	if obj.index < len(obj.tokens) {
		return obj.tokens[obj.index], nil
	}
	if len(obj.tokens) == 0 {
		return nil, interfaces.NewError(string(ErrParseUnexpectedEOF), nil, nil)
	}
	end := obj.tokens[len(obj.tokens)-1].End
	return nil, interfaces.NewError(string(ErrParseUnexpectedEOF), &end, &end)
}

// IsAtSymbol returns true if the cursor is on the given symbol.
func (obj *Parser) IsAtSymbol(sym token.Symbol) (bool, error) {
	tok, err := obj.Token()
	if err != nil {
		return false, err
	}
	return tok.IsSymbol(sym), nil
}

// IsAtKeyword returns true if the cursor is on the given keyword.
func (obj *Parser) IsAtKeyword(kw token.Keyword) (bool, error) {
	tok, err := obj.Token()
	if err != nil {
		return false, err
	}
	return tok.IsKeyword(kw), nil
}

// ExpectSymbol errors unless the cursor is on the given symbol.
func (obj *Parser) ExpectSymbol(sym token.Symbol) error {
	tok, err := obj.Token()
	if err != nil {
		return err
	}
	if !tok.IsSymbol(sym) {
		return errorAt(tok, fmt.Sprintf("expected '%s'", sym))
	}
	return nil
}

// ExpectOneOf errors unless the cursor is on one of the symbols or keywords.
func (obj *Parser) ExpectOneOf(symbols []token.Symbol, keywords []token.Keyword) error {
	tok, err := obj.Token()
	if err != nil {
		return err
	}
	if !tok.IsOneOf(symbols, keywords) {
		return errorAt(tok, expectedOneOf(symbols, keywords))
	}
	return nil
}

// ExpectName returns the name under the cursor, or errors if it isn't one.
func (obj *Parser) ExpectName() (string, error) {
	tok, err := obj.Token()
	if err != nil {
		return "", err
	}
	if tok.Kind != token.KindName {
		return "", errorAt(tok, string(ErrParseExpectedName))
	}
	return tok.Name, nil
}

// errorAt builds an error which covers a token.
func errorAt(tok *token.Token, message string) error {
	start, end := tok.Start, tok.End
	return interfaces.NewError(message, &start, &end)
}

// expectedOneOf builds the message listing the accepted tokens, for example:
// expected 'a', 'b', or 'c'.
func expectedOneOf(symbols []token.Symbol, keywords []token.Keyword) string {
	literals := []string{}
	for _, x := range symbols {
		literals = append(literals, x.String())
	}
	for _, x := range keywords {
		literals = append(literals, x.String())
	}
	return "expected " + oneOf(literals)
}

// oneOf quotes a list of choices and joins them with commas and a final or.
// The commas are only used for three or more choices.
func oneOf(choices []string) string {
	count := len(choices)
	b := &strings.Builder{}
	for i, x := range choices {
		if i < count-1 {
			fmt.Fprintf(b, "'%s'", x)
			if count > 2 {
				b.WriteString(",")
			}
			b.WriteString(" ")
			continue
		}
		if count > 1 {
			b.WriteString("or ")
		}
		fmt.Fprintf(b, "'%s'", x)
	}
	return b.String()
}
