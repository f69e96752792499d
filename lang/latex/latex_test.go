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

//go:build !root

package latex

import (
	"fmt"
	"math"
	"testing"

	"github.com/purpleidea/figura/util"
)

func name(s string) SyntaxNode {
	return &SubscriptNode{Base: &Letter{Value: 'X'}, Script: &Alphanumeric{Value: s}}
}

func num(v float64) SyntaxNode { return &Decimal{Value: v} }

func seq(elements ...SyntaxNode) SyntaxNode { return &Sequence{Elements: elements} }

func TestRender0(t *testing.T) {
	type test struct { // an individual test
		name string
		node SyntaxNode
		exp  string
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{
			name: "definition",
			node: &Equality{Lhs: name("numa"), Rhs: num(0)},
			exp:  `X_{numa}=0`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "update",
			node: &RightArrow{Lhs: name("numa"), Rhs: name("numb")},
			exp:  `X_{numa}\to X_{numb}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "space after escape",
			node: &Inequality{Lhs: &Alphanumeric{Value: "a"}, Type: Less, Rhs: &Alphanumeric{Value: "b"}},
			exp:  `a\lt b`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "inequality chain",
			node: &InequalityChain{
				Lhs:   num(0),
				Type:  LessEqual,
				Rhs:   &Letter{Value: 'x'},
				Chain: []Link{{Type: Greater, Value: num(1)}},
			},
			exp: `0\le x\gt1`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "letters are kept apart",
			node: &ImplicitMul{Lhs: &Letter{Value: 'a'}, Rhs: &Letter{Value: 'b'}},
			exp:  `a b`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "runs of letters are kept apart",
			node: &ImplicitMul{Lhs: &Alphanumeric{Value: "ab"}, Rhs: &Alphanumeric{Value: "cd"}},
			exp:  `ab cd`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "digits need no space",
			node: &ImplicitMul{Lhs: &Letter{Value: 'a'}, Rhs: &Alphanumeric{Value: "2b"}},
			exp:  `a2b`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "regression",
			node: &Regression{Lhs: &Letter{Value: 'a'}, Rhs: &Letter{Value: 'b'}},
			exp:  `a\sim b`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "percent of",
			node: &PercentOf{Lhs: num(5), Rhs: &Letter{Value: 'x'}},
			exp:  `5\%\operatorname{of}x`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "piecewise",
			node: &Piecewise{Content: seq(
				&Colon{Lhs: &Equality{Lhs: &Letter{Value: 'a'}, Rhs: num(1)}, Rhs: &Letter{Value: 'b'}},
				num(0),
			)},
			exp: `\left\{a=1:b,0\right\}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "command call",
			node: &Call{Callee: &Command{Name: "mod"}, Args: seq(&Letter{Value: 'a'}, &Letter{Value: 'b'})},
			exp:  `\operatorname{mod}\left(a,b\right)`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "comprehension",
			node: &List{Content: &For{
				Lhs: name("x"),
				Rhs: &Equality{Lhs: name("x"), Rhs: &List{Content: &Ellipsis{Lhs: num(1), Rhs: num(3)}}},
			}},
			exp: `\left[X_{x}\operatorname{for}X_{x}=\left[1...3\right]\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "open ellipsis",
			node: &List{Content: seq(num(1), &Ellipsis{Lhs: num(2)})},
			exp:  `\left[1,2...\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "index",
			node: &Index{Indexee: name("l"), Index: num(2)},
			exp:  `X_{l}\left[2\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "roots and fractions",
			node: &Add{
				Lhs: &NthRoot{Index: num(3), Radicand: &SqrtNode{Radicand: &Letter{Value: 'x'}}},
				Rhs: &FracNode{Numerator: num(1), Denominator: &Pipes{Content: &Letter{Value: 'y'}}},
			},
			exp: `\sqrt[3]{\sqrt{x}}+\frac{1}{\left|y\right|}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "scripts",
			node: &SuperscriptNode{Base: &Prime{Value: &Letter{Value: 'f'}}, Script: num(2)},
			exp:  `f'^{2}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "sum",
			node: &Sum{
				Bottom: &Equality{Lhs: &Letter{Value: 'n'}, Rhs: num(1)},
				Top:    num(10),
				Body:   &Letter{Value: 'n'},
			},
			exp: `\sum_{n=1}^{10}n`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "integral without a body",
			node: &Integral{Differential: &Letter{Value: 'x'}, From: num(0), To: num(1)},
			exp:  `\int_{0}^{1}d x`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "with",
			node: &With{Lhs: &Letter{Value: 'a'}, Rhs: &Equality{Lhs: &Letter{Value: 'a'}, Rhs: num(2)}},
			exp:  `a\operatorname{with}a=2`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "empty sequence",
			node: &Paren{Content: seq()},
			exp:  `\left(\right)`,
		})
	}

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			if s := Render(tc.node); s != tc.exp {
				t.Errorf("test #%d: unexpected markup", index)
				t.Logf("test #%d: actual: %s", index, s)
				t.Logf("test #%d: expect: %s", index, tc.exp)
			}
		})
	}
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		v   float64
		exp string
	}{
		{0, "0"},
		{-2, "-2"},
		{0.5, "0.5"},
		{1e21, "1000000000000000000000"},
		{math.NaN(), `\frac{0}{0}`},
		{math.Inf(1), `\infty`},
		{math.Inf(-1), `-\infty`},
	}
	for _, tc := range tests {
		if s := Render(num(tc.v)); s != tc.exp {
			t.Errorf("decimal %v: got %s, expected %s", tc.v, s, tc.exp)
		}
	}
}

func TestSymbolEscapes(t *testing.T) {
	for _, c := range "&%$#{}" {
		exp := `\` + string(c)
		if s := New().AddSymbol(c).String(); s != exp {
			t.Errorf("symbol %c: got %s, expected %s", c, s, exp)
		}
	}
}
