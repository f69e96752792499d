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

// Package token contains the lexical tokens of the language and the lexer
// which produces them from source text.
package token

import (
	"fmt"
	"strconv"

	"github.com/purpleidea/figura/lang/interfaces"
)

// Kind says which of the value fields of a token is in use.
type Kind int

// These are the different kinds of tokens.
const (
	KindSymbol Kind = iota
	KindKeyword
	KindName
	KindInt
	KindReal
	KindBool
	KindStr
)

// Symbol is a punctuation or operator token.
type Symbol int

// These are all the symbols the lexer knows about. Not all of them have a
// meaning in the grammar yet.
const (
	SymbolPlus Symbol = iota
	SymbolMinus
	SymbolStar
	SymbolSlash
	SymbolPercent
	SymbolStar2
	SymbolTilde
	SymbolAmpersand
	SymbolCaret
	SymbolPipe
	SymbolBang
	SymbolAmpersand2
	SymbolCaret2
	SymbolPipe2
	SymbolLessThan2
	SymbolGreaterThan2
	SymbolEqual2
	SymbolNotEqual
	SymbolLessThan
	SymbolGreaterThan
	SymbolLessEqual
	SymbolGreaterEqual
	SymbolEqual
	SymbolColonEqual
	SymbolDot
	SymbolComma
	SymbolColon
	SymbolSemicolon
	SymbolParenLeft
	SymbolParenRight
	SymbolSquareLeft
	SymbolSquareRight
	SymbolCurlyLeft
	SymbolCurlyRight
	SymbolQuestion
	SymbolAtSign
	SymbolHash
	SymbolDollar
	SymbolBackslash
	SymbolExclusiveRange
	SymbolInclusiveRange
	SymbolRightArrow
	SymbolRightEqualArrow
	SymbolColon2
)

var symbolLiterals = []string{
	SymbolPlus:            "+",
	SymbolMinus:           "-",
	SymbolStar:            "*",
	SymbolSlash:           "/",
	SymbolPercent:         "%",
	SymbolStar2:           "**",
	SymbolTilde:           "~",
	SymbolAmpersand:       "&",
	SymbolCaret:           "^",
	SymbolPipe:            "|",
	SymbolBang:            "!",
	SymbolAmpersand2:      "&&",
	SymbolCaret2:          "^^",
	SymbolPipe2:           "||",
	SymbolLessThan2:       "<<",
	SymbolGreaterThan2:    ">>",
	SymbolEqual2:          "==",
	SymbolNotEqual:        "!=",
	SymbolLessThan:        "<",
	SymbolGreaterThan:     ">",
	SymbolLessEqual:       "<=",
	SymbolGreaterEqual:    ">=",
	SymbolEqual:           "=",
	SymbolColonEqual:      ":=",
	SymbolDot:             ".",
	SymbolComma:           ",",
	SymbolColon:           ":",
	SymbolSemicolon:       ";",
	SymbolParenLeft:       "(",
	SymbolParenRight:      ")",
	SymbolSquareLeft:      "[",
	SymbolSquareRight:     "]",
	SymbolCurlyLeft:       "{",
	SymbolCurlyRight:      "}",
	SymbolQuestion:        "?",
	SymbolAtSign:          "@",
	SymbolHash:            "#",
	SymbolDollar:          "$",
	SymbolBackslash:       "\\",
	SymbolExclusiveRange:  "..",
	SymbolInclusiveRange:  "..=",
	SymbolRightArrow:      "->",
	SymbolRightEqualArrow: "=>",
	SymbolColon2:          "::",
}

var symbolMap = func() map[string]Symbol {
	m := make(map[string]Symbol, len(symbolLiterals))
	for i, s := range symbolLiterals {
		m[s] = Symbol(i)
	}
	return m
}()

// SymbolFromLiteral looks up the symbol spelled by s.
func SymbolFromLiteral(s string) (Symbol, bool) {
	sym, exists := symbolMap[s]
	return sym, exists
}

// String returns the source spelling of the symbol.
func (obj Symbol) String() string {
	if obj < 0 || int(obj) >= len(symbolLiterals) {
		return fmt.Sprintf("<symbol %d>", int(obj))
	}
	return symbolLiterals[obj]
}

// Keyword is a reserved word.
type Keyword int

// These are the reserved words of the language.
const (
	KeywordPublic Keyword = iota
	KeywordTicker
	KeywordDisplay
	KeywordEnum
	KeywordAction
	KeywordLet
	KeywordConst
	KeywordVar
	KeywordTimer
	KeywordIf
	KeywordElif
	KeywordElse
	KeywordFor
	KeywordIn
	KeywordWhere
	KeywordWith
)

var keywordLiterals = []string{
	KeywordPublic:  "public",
	KeywordTicker:  "ticker",
	KeywordDisplay: "display",
	KeywordEnum:    "enum",
	KeywordAction:  "action",
	KeywordLet:     "let",
	KeywordConst:   "const",
	KeywordVar:     "var",
	KeywordTimer:   "timer",
	KeywordIf:      "if",
	KeywordElif:    "elif",
	KeywordElse:    "else",
	KeywordFor:     "for",
	KeywordIn:      "in",
	KeywordWhere:   "where",
	KeywordWith:    "with",
}

// KeywordFromLiteral looks up the keyword spelled by s.
func KeywordFromLiteral(s string) (Keyword, bool) {
	for i, k := range keywordLiterals {
		if k == s {
			return Keyword(i), true
		}
	}
	return 0, false
}

// String returns the source spelling of the keyword.
func (obj Keyword) String() string {
	if obj < 0 || int(obj) >= len(keywordLiterals) {
		return fmt.Sprintf("<keyword %d>", int(obj))
	}
	return keywordLiterals[obj]
}

// Token is a single lexical token. Only the field matching the kind is valid.
type Token struct {
	Kind Kind

	Symbol  Symbol
	Keyword Keyword
	Name    string
	Int     int64
	Real    float64
	Bool    bool
	Str     string

	Start interfaces.Location
	End   interfaces.Location
}

// IsSymbol returns true if this token is the given symbol.
func (obj *Token) IsSymbol(sym Symbol) bool {
	return obj.Kind == KindSymbol && obj.Symbol == sym
}

// IsKeyword returns true if this token is the given keyword.
func (obj *Token) IsKeyword(kw Keyword) bool {
	return obj.Kind == KindKeyword && obj.Keyword == kw
}

// IsOneOf returns true if this token is any of the symbols or keywords.
func (obj *Token) IsOneOf(symbols []Symbol, keywords []Keyword) bool {
	switch obj.Kind {
	case KindSymbol:
		for _, s := range symbols {
			if s == obj.Symbol {
				return true
			}
		}
	case KindKeyword:
		for _, k := range keywords {
			if k == obj.Keyword {
				return true
			}
		}
	}
	return false
}

// IsSymbolOrKeyword returns true for punctuation and reserved words.
func (obj *Token) IsSymbolOrKeyword() bool {
	return obj.Kind == KindSymbol || obj.Kind == KindKeyword
}

// String returns a representation of the token similar to its source form.
func (obj *Token) String() string {
	switch obj.Kind {
	case KindSymbol:
		return obj.Symbol.String()
	case KindKeyword:
		return obj.Keyword.String()
	case KindName:
		return obj.Name
	case KindInt:
		return strconv.FormatInt(obj.Int, 10)
	case KindReal:
		return strconv.FormatFloat(obj.Real, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(obj.Bool)
	case KindStr:
		return strconv.Quote(obj.Str)
	}
	return "<invalid>"
}
