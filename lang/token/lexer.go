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

package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/purpleidea/figura/lang/interfaces"
)

// These constants represent the different possible lexer errors.
const (
	ErrLexerInvalidInteger  = interfaces.Error("invalid integer literal")
	ErrLexerInvalidReal     = interfaces.Error("invalid floating-point literal")
	ErrLexerUnterminatedStr = interfaces.Error("string has no closing quote")
	ErrLexerInvalidSymbol   = interfaces.Error("invalid symbol")
	ErrLexerUnexpectedChar  = interfaces.Error("unexpected character")
)

// lexer is a cursor over the source text which keeps track of the location.
type lexer struct {
	source   string
	location interfaces.Location
	tokens   []*Token
}

// peek returns the next rune without consuming it.
func (obj *lexer) peek() (rune, bool) {
	if obj.location.Index >= len(obj.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(obj.source[obj.location.Index:])
	return r, true
}

// next consumes the next rune and advances the location.
func (obj *lexer) next() (rune, bool) {
	if obj.location.Index >= len(obj.source) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(obj.source[obj.location.Index:])
	obj.location.Index += size
	if r == '\n' {
		obj.location.Line++
		obj.location.Column = 1
	} else {
		obj.location.Column++
	}
	return r, true
}

func (obj *lexer) push(tok *Token, start interfaces.Location) {
	tok.Start = start
	tok.End = obj.location
	obj.tokens = append(obj.tokens, tok)
}

func isWordStart(r rune) bool {
	return r == '_' || (r < utf8.RuneSelf && ('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'))
}

func isWord(r rune) bool {
	return isWordStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isGraphic(r rune) bool {
	return r > ' ' && r < 0x7f
}

// Tokenize turns source text into a list of tokens. The tokens are in source
// order, and their spans never overlap. Whitespace and comments are dropped.
func Tokenize(source string) ([]*Token, error) {
	obj := &lexer{
		source:   source,
		location: interfaces.StartLocation(),
		tokens:   []*Token{},
	}
	for {
		r, ok := obj.peek()
		if !ok {
			break
		}
		start := obj.location

		switch {
		case unicode.IsSpace(r):
			obj.next()

		case isWordStart(r):
			obj.word(start)

		case isDigit(r):
			if err := obj.number(start); err != nil {
				return nil, err
			}

		case r == '/' && obj.comment():
			// skipped

		case r == '"':
			if err := obj.str(start); err != nil {
				return nil, err
			}

		case isGraphic(r):
			if err := obj.symbol(start); err != nil {
				return nil, err
			}

		default:
			obj.next()
			end := obj.location
			return nil, interfaces.Errorf(&start, &end, "%s: %c", ErrLexerUnexpectedChar, r)
		}
	}
	return obj.tokens, nil
}

func (obj *lexer) word(start interfaces.Location) {
	b := &strings.Builder{}
	for {
		r, ok := obj.peek()
		if !ok || !isWord(r) {
			break
		}
		obj.next()
		b.WriteRune(r)
	}
	s := b.String()

	if kw, exists := KeywordFromLiteral(s); exists {
		obj.push(&Token{Kind: KindKeyword, Keyword: kw}, start)
		return
	}
	switch s {
	case "true":
		obj.push(&Token{Kind: KindBool, Bool: true}, start)
	case "false":
		obj.push(&Token{Kind: KindBool, Bool: false}, start)
	default:
		obj.push(&Token{Kind: KindName, Name: s}, start)
	}
}

// number lexes an integer or real literal. Underscores and apostrophes may be
// used as digit separators. An integer directly followed by `..` or `..=` is
// split from the range symbol, so that `1..5` is three tokens.
func (obj *lexer) number(start interfaces.Location) error {
	raw := []byte{}
	isInteger := true
	end := obj.location
	var deferred *Token

	for {
		r, ok := obj.peek()
		if !ok {
			break
		}
		if r == '_' || r == '\'' {
			obj.next()
			continue
		}
		if r == '.' || r == 'e' || r == 'E' {
			isInteger = false
		} else if !isDigit(r) {
			break
		}
		end = obj.location
		obj.next()
		raw = append(raw, byte(r))

		if r == '.' {
			if p, ok := obj.peek(); ok && p == '.' {
				obj.next()
				sym := SymbolExclusiveRange
				if p, ok := obj.peek(); ok && p == '=' {
					obj.next()
					sym = SymbolInclusiveRange
				}
				deferred = &Token{
					Kind:   KindSymbol,
					Symbol: sym,
					Start:  end,
					End:    obj.location,
				}
				isInteger = true
				raw = raw[:len(raw)-1]
				break
			}
		}
		end = obj.location
	}

	tok := &Token{
		Start: start,
		End:   end,
	}
	if isInteger {
		i, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return interfaces.NewError(string(ErrLexerInvalidInteger), &start, &end)
		}
		tok.Kind = KindInt
		tok.Int = i
	} else {
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return interfaces.NewError(string(ErrLexerInvalidReal), &start, &end)
		}
		tok.Kind = KindReal
		tok.Real = f
	}
	obj.tokens = append(obj.tokens, tok)
	if deferred != nil {
		obj.tokens = append(obj.tokens, deferred)
	}
	return nil
}

// comment skips a line or block comment if one starts here. A backslash inside
// a line comment continues it onto the next line.
func (obj *lexer) comment() bool {
	rest := obj.source[obj.location.Index:]
	switch {
	case strings.HasPrefix(rest, "//"):
		obj.next()
		ignoreNewline := false
		for {
			r, ok := obj.next()
			if !ok {
				break
			}
			if ignoreNewline {
				if r == '\n' || !unicode.IsSpace(r) {
					ignoreNewline = false
				}
			} else if r == '\n' {
				break
			} else if r == '\\' {
				ignoreNewline = true
			}
		}
		return true

	case strings.HasPrefix(rest, "/*"):
		obj.next()
		obj.next()
		canClose := false
		for {
			r, ok := obj.next()
			if !ok {
				break
			}
			if canClose && r == '/' {
				break
			}
			canClose = r == '*'
		}
		return true
	}
	return false
}

func (obj *lexer) str(start interfaces.Location) error {
	obj.next() // opening quote
	b := &strings.Builder{}
	escaped := false
	for {
		r, ok := obj.next()
		if !ok {
			return interfaces.NewError(string(ErrLexerUnterminatedStr), &start, nil)
		}
		if escaped {
			switch r {
			case 'n':
				r = '\n'
			case 'r':
				r = '\r'
			case 't':
				r = '\t'
			case '0':
				r = 0
			}
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '"' {
			break
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	obj.push(&Token{Kind: KindStr, Str: b.String()}, start)
	return nil
}

// symbol lexes the longest symbol that can be built one character at a time.
func (obj *lexer) symbol(start interfaces.Location) error {
	r, _ := obj.next()
	raw := string(r)
	peek := raw
	for {
		r, ok := obj.peek()
		if !ok {
			break
		}
		peek = raw + string(r)
		if _, exists := SymbolFromLiteral(peek); !exists {
			break
		}
		obj.next()
		raw = peek
	}
	sym, exists := SymbolFromLiteral(raw)
	if !exists {
		end := obj.location
		return interfaces.NewError(fmt.Sprintf("%s: %s", ErrLexerInvalidSymbol, peek), &start, &end)
	}
	obj.push(&Token{Kind: KindSymbol, Symbol: sym}, start)
	return nil
}
