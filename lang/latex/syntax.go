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

package latex

import (
	"math"
	"strconv"
)

// SyntaxNode is a node of the expression tree of the target language. Each
// node lowers itself into markup.
type SyntaxNode interface {
	Latex() *Latex
}

// Render returns the markup of a syntax tree.
func Render(node SyntaxNode) string {
	return node.Latex().String()
}

// InequalityType is the relation of an inequality.
type InequalityType int

// These are the relations an inequality can use.
const (
	Less InequalityType = iota
	Greater
	LessEqual
	GreaterEqual
)

// Escape returns the control sequence of the relation.
func (obj InequalityType) Escape() string {
	switch obj {
	case Greater:
		return "gt"
	case LessEqual:
		return "le"
	case GreaterEqual:
		return "ge"
	}
	return "lt"
}

// Link is one more step of an inequality chain.
type Link struct {
	Type  InequalityType
	Value SyntaxNode
}

type (
	// Equality is `a=b`.
	Equality struct{ Lhs, Rhs SyntaxNode }

	// Inequality is `a\lt b` and its relatives.
	Inequality struct {
		Lhs  SyntaxNode
		Type InequalityType
		Rhs  SyntaxNode
	}

	// InequalityChain is `a\lt b\lt c`, with any number of extra links.
	InequalityChain struct {
		Lhs   SyntaxNode
		Type  InequalityType
		Rhs   SyntaxNode
		Chain []Link
	}

	// Regression is `a\sim b`.
	Regression struct{ Lhs, Rhs SyntaxNode }

	Pos struct{ Value SyntaxNode }
	Neg struct{ Value SyntaxNode }

	Add      struct{ Lhs, Rhs SyntaxNode }
	Sub      struct{ Lhs, Rhs SyntaxNode }
	Mul      struct{ Lhs, Rhs SyntaxNode }
	DotMul   struct{ Lhs, Rhs SyntaxNode }
	CrossMul struct{ Lhs, Rhs SyntaxNode }
	Div      struct{ Lhs, Rhs SyntaxNode }

	Factorial struct{ Value SyntaxNode }

	// Call is `f\left(args\right)`.
	Call struct{ Callee, Args SyntaxNode }

	// ImplicitCall is a call without brackets, as in `\sin x`.
	ImplicitCall struct{ Callee, Arg SyntaxNode }

	// Index is `l\left[i\right]`.
	Index struct{ Indexee, Index SyntaxNode }

	Paren struct{ Content SyntaxNode }
	List  struct{ Content SyntaxNode }
	Pipes struct{ Content SyntaxNode }

	SubscriptNode   struct{ Base, Script SyntaxNode }
	SuperscriptNode struct{ Base, Script SyntaxNode }

	Prime struct{ Value SyntaxNode }

	// Sequence joins its elements with commas.
	Sequence struct{ Elements []SyntaxNode }

	SqrtNode struct{ Radicand SyntaxNode }
	NthRoot  struct{ Index, Radicand SyntaxNode }
	FracNode struct{ Numerator, Denominator SyntaxNode }

	// Derivative is `\frac{d}{dx}body`.
	Derivative struct{ Differential, Body SyntaxNode }

	// Integral is `\int_{from}^{to}body dx`. The body may be nil.
	Integral struct{ Differential, From, To, Body SyntaxNode }

	Sum     struct{ Bottom, Top, Body SyntaxNode }
	Product struct{ Bottom, Top, Body SyntaxNode }

	// Piecewise is `\left\{content\right\}`.
	Piecewise struct{ Content SyntaxNode }

	Colon struct{ Lhs, Rhs SyntaxNode }

	// Ellipsis is `a...b`. The end may be nil.
	Ellipsis struct{ Lhs, Rhs SyntaxNode }

	For        struct{ Lhs, Rhs SyntaxNode }
	With       struct{ Lhs, Rhs SyntaxNode }
	Dot        struct{ Lhs, Rhs SyntaxNode }
	PercentOf  struct{ Lhs, Rhs SyntaxNode }
	RightArrow struct{ Lhs, Rhs SyntaxNode }

	MixedNumber struct{ Whole, Numerator, Denominator SyntaxNode }
	ImplicitMul struct{ Lhs, Rhs SyntaxNode }

	// Letter is a single letter variable name.
	Letter struct{ Value rune }

	// Decimal is a number. The special floating point values have their own
	// spellings.
	Decimal struct{ Value float64 }

	// Command is a named builtin such as `\operatorname{mod}`.
	Command struct{ Name string }

	// Alphanumeric is a run of letters and digits written as is.
	Alphanumeric struct{ Value string }
)

func binary(lhs SyntaxNode, sym rune, rhs SyntaxNode) *Latex {
	return lhs.Latex().AddSymbol(sym).Add(rhs.Latex())
}

func escaped(lhs SyntaxNode, esc string, rhs SyntaxNode) *Latex {
	return lhs.Latex().AddEscape(esc).Add(rhs.Latex())
}

func named(lhs SyntaxNode, name string, rhs SyntaxNode) *Latex {
	return lhs.Latex().AddOperatorName(name).Add(rhs.Latex())
}

func bracketed(bracket BracketType, content SyntaxNode) *Latex {
	return New().AddLeft(bracket).Add(content.Latex()).AddRight(bracket)
}

// Latex lowers the node into markup.
func (obj *Equality) Latex() *Latex { return binary(obj.Lhs, '=', obj.Rhs) }

// Latex lowers the node into markup.
func (obj *Inequality) Latex() *Latex { return escaped(obj.Lhs, obj.Type.Escape(), obj.Rhs) }

// Latex lowers the node into markup.
func (obj *InequalityChain) Latex() *Latex {
	l := escaped(obj.Lhs, obj.Type.Escape(), obj.Rhs)
	for _, x := range obj.Chain {
		l.AddEscape(x.Type.Escape()).Add(x.Value.Latex())
	}
	return l
}

func (obj *Regression) Latex() *Latex { return binary(obj.Lhs, '~', obj.Rhs) }

func (obj *Pos) Latex() *Latex { return New().AddSymbol('+').Add(obj.Value.Latex()) }
func (obj *Neg) Latex() *Latex { return New().AddSymbol('-').Add(obj.Value.Latex()) }

func (obj *Add) Latex() *Latex      { return binary(obj.Lhs, '+', obj.Rhs) }
func (obj *Sub) Latex() *Latex      { return binary(obj.Lhs, '-', obj.Rhs) }
func (obj *Mul) Latex() *Latex      { return binary(obj.Lhs, '*', obj.Rhs) }
func (obj *DotMul) Latex() *Latex   { return escaped(obj.Lhs, "cdot", obj.Rhs) }
func (obj *CrossMul) Latex() *Latex { return escaped(obj.Lhs, "cross", obj.Rhs) }
func (obj *Div) Latex() *Latex      { return binary(obj.Lhs, '/', obj.Rhs) }

func (obj *Factorial) Latex() *Latex { return obj.Value.Latex().AddSymbol('!') }

func (obj *Call) Latex() *Latex {
	return obj.Callee.Latex().AddLeft(BracketParen).Add(obj.Args.Latex()).AddRight(BracketParen)
}

func (obj *ImplicitCall) Latex() *Latex { return obj.Callee.Latex().Add(obj.Arg.Latex()) }

func (obj *Index) Latex() *Latex {
	return obj.Indexee.Latex().AddLeft(BracketSquare).Add(obj.Index.Latex()).AddRight(BracketSquare)
}

func (obj *Paren) Latex() *Latex { return bracketed(BracketParen, obj.Content) }
func (obj *List) Latex() *Latex  { return bracketed(BracketSquare, obj.Content) }
func (obj *Pipes) Latex() *Latex { return bracketed(BracketPipe, obj.Content) }

func (obj *SubscriptNode) Latex() *Latex {
	return obj.Base.Latex().AddSubscript(obj.Script.Latex())
}

func (obj *SuperscriptNode) Latex() *Latex {
	return obj.Base.Latex().AddSuperscript(obj.Script.Latex())
}

func (obj *Prime) Latex() *Latex { return obj.Value.Latex().AddSymbol('\'') }

// Latex joins the elements with commas. An empty sequence is empty markup.
func (obj *Sequence) Latex() *Latex {
	l := New()
	for i, x := range obj.Elements {
		if i > 0 {
			l.AddSymbol(',')
		}
		l.Add(x.Latex())
	}
	return l
}

func (obj *SqrtNode) Latex() *Latex { return New().AddSqrt(nil, obj.Radicand.Latex()) }

func (obj *NthRoot) Latex() *Latex {
	return New().AddSqrt(obj.Index.Latex(), obj.Radicand.Latex())
}

func (obj *FracNode) Latex() *Latex {
	return New().AddFrac(obj.Numerator.Latex(), obj.Denominator.Latex())
}

func (obj *Derivative) Latex() *Latex {
	d := New().AddSymbol('d')
	dx := New().AddSymbol('d').Add(obj.Differential.Latex())
	return New().AddFrac(d, dx).Add(obj.Body.Latex())
}

func (obj *Integral) Latex() *Latex {
	l := New().AddEscape("int").AddSubscript(obj.From.Latex()).AddSuperscript(obj.To.Latex())
	if obj.Body != nil {
		l.Add(obj.Body.Latex())
	}
	return l.AddSymbol('d').Add(obj.Differential.Latex())
}

func (obj *Sum) Latex() *Latex {
	return New().AddEscape("sum").AddSubscript(obj.Bottom.Latex()).AddSuperscript(obj.Top.Latex()).Add(obj.Body.Latex())
}

func (obj *Product) Latex() *Latex {
	return New().AddEscape("prod").AddSubscript(obj.Bottom.Latex()).AddSuperscript(obj.Top.Latex()).Add(obj.Body.Latex())
}

func (obj *Piecewise) Latex() *Latex { return bracketed(BracketCurly, obj.Content) }

func (obj *Colon) Latex() *Latex { return binary(obj.Lhs, ':', obj.Rhs) }

func (obj *Ellipsis) Latex() *Latex {
	l := obj.Lhs.Latex().AddSymbols("...")
	if obj.Rhs != nil {
		l.Add(obj.Rhs.Latex())
	}
	return l
}

func (obj *For) Latex() *Latex        { return named(obj.Lhs, "for", obj.Rhs) }
func (obj *With) Latex() *Latex       { return named(obj.Lhs, "with", obj.Rhs) }
func (obj *Dot) Latex() *Latex        { return binary(obj.Lhs, '.', obj.Rhs) }
func (obj *RightArrow) Latex() *Latex { return escaped(obj.Lhs, "to", obj.Rhs) }

func (obj *PercentOf) Latex() *Latex {
	return obj.Lhs.Latex().AddSymbol('%').AddOperatorName("of").Add(obj.Rhs.Latex())
}

func (obj *MixedNumber) Latex() *Latex {
	return obj.Whole.Latex().AddFrac(obj.Numerator.Latex(), obj.Denominator.Latex())
}

func (obj *ImplicitMul) Latex() *Latex { return obj.Lhs.Latex().Add(obj.Rhs.Latex()) }

func (obj *Letter) Latex() *Latex { return New().AddSymbol(obj.Value) }

// Latex spells out the number. Not a number has no literal, so it is written
// as zero over zero.
func (obj *Decimal) Latex() *Latex {
	switch v := obj.Value; {
	case math.IsNaN(v):
		return New().AddFrac(New().AddSymbol('0'), New().AddSymbol('0'))
	case math.IsInf(v, 1):
		return New().AddEscape("infty")
	case math.IsInf(v, -1):
		return New().AddSymbol('-').AddEscape("infty")
	}
	return New().AddSymbols(strconv.FormatFloat(obj.Value, 'f', -1, 64))
}

func (obj *Command) Latex() *Latex      { return New().AddOperatorName(obj.Name) }
func (obj *Alphanumeric) Latex() *Latex { return New().AddSymbols(obj.Value) }
