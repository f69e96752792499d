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

// Package latex builds the markup that the graphing calculator reads. The
// primitives in this file render text, and the syntax nodes in syntax.go are
// the tree that the target compiler produces and lowers into them.
package latex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BracketType is the shape of a pair of brackets.
type BracketType int

// These are the supported bracket shapes.
const (
	BracketParen BracketType = iota
	BracketSquare
	BracketCurly
	BracketPipe
)

// Left returns the opening markup of this bracket.
func (obj BracketType) Left() string {
	switch obj {
	case BracketSquare:
		return "["
	case BracketCurly:
		return `\{`
	case BracketPipe:
		return "|"
	}
	return "("
}

// Right returns the closing markup of this bracket.
func (obj BracketType) Right() string {
	switch obj {
	case BracketSquare:
		return "]"
	case BracketCurly:
		return `\}`
	case BracketPipe:
		return "|"
	}
	return ")"
}

// Node is one markup primitive.
type Node interface {
	// render writes the node. The flag says whether the previous node ended
	// in a letter, since two runs of letters must be kept apart.
	render(b *strings.Builder, afterAlpha bool)

	// endsAlpha returns true if the rendered node ends in a letter.
	endsAlpha() bool
}

// Group is `{content}`.
type Group struct {
	Content *Latex
}

// Sqrt is a square root, or an nth root when the index is set.
type Sqrt struct {
	Index    *Latex
	Radicand *Latex
}

// Frac is `\frac{n}{d}`.
type Frac struct {
	Numerator   *Latex
	Denominator *Latex
}

// Superscript is `^{content}`.
type Superscript struct {
	Content *Latex
}

// Subscript is `_{content}`.
type Subscript struct {
	Content *Latex
}

// Left is a sized opening bracket.
type Left struct {
	Bracket BracketType
}

// Right is a sized closing bracket.
type Right struct {
	Bracket BracketType
}

// OperatorName is `\operatorname{content}`.
type OperatorName struct {
	Content string
}

// Escape is a control sequence such as `\cdot`.
type Escape struct {
	Value string
}

// Symbol is a single character. Characters which are special in the markup
// are escaped.
type Symbol struct {
	Value rune
}

// Symbols is a run of characters written as they are.
type Symbols struct {
	Value string
}

func (obj *Group) render(b *strings.Builder, _ bool) {
	b.WriteString("{" + obj.Content.String() + "}")
}

func (obj *Sqrt) render(b *strings.Builder, _ bool) {
	b.WriteString(`\sqrt`)
	if obj.Index != nil {
		b.WriteString("[" + obj.Index.String() + "]")
	}
	b.WriteString("{" + obj.Radicand.String() + "}")
}

func (obj *Frac) render(b *strings.Builder, _ bool) {
	b.WriteString(`\frac{` + obj.Numerator.String() + "}{" + obj.Denominator.String() + "}")
}

func (obj *Superscript) render(b *strings.Builder, _ bool) {
	b.WriteString("^{" + obj.Content.String() + "}")
}

func (obj *Subscript) render(b *strings.Builder, _ bool) {
	b.WriteString("_{" + obj.Content.String() + "}")
}

func (obj *Left) render(b *strings.Builder, _ bool) {
	b.WriteString(`\left` + obj.Bracket.Left())
}

func (obj *Right) render(b *strings.Builder, _ bool) {
	b.WriteString(`\right` + obj.Bracket.Right())
}

func (obj *OperatorName) render(b *strings.Builder, _ bool) {
	b.WriteString(`\operatorname{` + obj.Content + "}")
}

func (obj *Escape) render(b *strings.Builder, _ bool) {
	b.WriteString(`\` + obj.Value)
}

func (obj *Symbol) render(b *strings.Builder, afterAlpha bool) {
	switch c := obj.Value; {
	case strings.ContainsRune("&%$#{}", c):
		b.WriteString(`\` + string(c))
	case c == '~':
		b.WriteString(`\sim`)
	case afterAlpha && unicode.IsLetter(c):
		b.WriteString(" " + string(c))
	default:
		b.WriteRune(c)
	}
}

func (obj *Symbols) render(b *strings.Builder, afterAlpha bool) {
	if r, _ := utf8.DecodeRuneInString(obj.Value); afterAlpha && obj.Value != "" && unicode.IsLetter(r) {
		b.WriteString(" ")
	}
	b.WriteString(obj.Value)
}

func (obj *Group) endsAlpha() bool        { return false }
func (obj *Sqrt) endsAlpha() bool         { return false }
func (obj *Frac) endsAlpha() bool         { return false }
func (obj *Superscript) endsAlpha() bool  { return false }
func (obj *Subscript) endsAlpha() bool    { return false }
func (obj *Left) endsAlpha() bool         { return false }
func (obj *Right) endsAlpha() bool        { return false }
func (obj *OperatorName) endsAlpha() bool { return false }
func (obj *Escape) endsAlpha() bool       { return lastIsLetter(obj.Value) }
func (obj *Symbol) endsAlpha() bool       { return obj.Value == '~' || unicode.IsLetter(obj.Value) }
func (obj *Symbols) endsAlpha() bool      { return lastIsLetter(obj.Value) }

func lastIsLetter(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	return size > 0 && unicode.IsLetter(r)
}

// Latex is a sequence of primitives. The builder methods append to it and
// return it so that calls can be chained.
type Latex struct {
	Nodes []Node
}

// New returns an empty sequence.
func New() *Latex {
	return &Latex{Nodes: []Node{}}
}

// Add appends all the nodes of another sequence.
func (obj *Latex) Add(l *Latex) *Latex {
	obj.Nodes = append(obj.Nodes, l.Nodes...)
	return obj
}

// AddNode appends a single primitive.
func (obj *Latex) AddNode(node Node) *Latex {
	obj.Nodes = append(obj.Nodes, node)
	return obj
}

// AddGroup appends `{content}`.
func (obj *Latex) AddGroup(content *Latex) *Latex {
	return obj.AddNode(&Group{Content: content})
}

// AddSqrt appends a root. The index may be nil.
func (obj *Latex) AddSqrt(index, radicand *Latex) *Latex {
	return obj.AddNode(&Sqrt{Index: index, Radicand: radicand})
}

// AddFrac appends a fraction.
func (obj *Latex) AddFrac(numerator, denominator *Latex) *Latex {
	return obj.AddNode(&Frac{Numerator: numerator, Denominator: denominator})
}

// AddSuperscript appends `^{content}`.
func (obj *Latex) AddSuperscript(content *Latex) *Latex {
	return obj.AddNode(&Superscript{Content: content})
}

// AddSubscript appends `_{content}`.
func (obj *Latex) AddSubscript(content *Latex) *Latex {
	return obj.AddNode(&Subscript{Content: content})
}

// AddLeft appends an opening bracket.
func (obj *Latex) AddLeft(bracket BracketType) *Latex {
	return obj.AddNode(&Left{Bracket: bracket})
}

// AddRight appends a closing bracket.
func (obj *Latex) AddRight(bracket BracketType) *Latex {
	return obj.AddNode(&Right{Bracket: bracket})
}

// AddOperatorName appends `\operatorname{content}`.
func (obj *Latex) AddOperatorName(content string) *Latex {
	return obj.AddNode(&OperatorName{Content: content})
}

// AddEscape appends a control sequence.
func (obj *Latex) AddEscape(value string) *Latex {
	return obj.AddNode(&Escape{Value: value})
}

// AddSymbol appends a single character.
func (obj *Latex) AddSymbol(value rune) *Latex {
	return obj.AddNode(&Symbol{Value: value})
}

// AddSymbols appends a run of characters.
func (obj *Latex) AddSymbols(value string) *Latex {
	return obj.AddNode(&Symbols{Value: value})
}

// String renders the markup. A space is only inserted between a node ending in
// a letter and a letter that follows it.
func (obj *Latex) String() string {
	b := &strings.Builder{}
	afterAlpha := false
	for _, x := range obj.Nodes {
		x.render(b, afterAlpha)
		afterAlpha = x.endsAlpha()
	}
	return b.String()
}
