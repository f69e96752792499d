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

package geometry

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/purpleidea/figura/lang/document"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/parser"
	"github.com/purpleidea/figura/lang/semantics"
	"github.com/purpleidea/figura/lang/token"
	"github.com/purpleidea/figura/util"

	"github.com/kylelemons/godebug/pretty"
)

// compile runs every stage up to the document.
func compile(t *testing.T, code string) (*document.State, error) {
	tokens, err := token.Tokenize(code)
	if err != nil {
		return nil, err
	}
	sigs, defs, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	logf := func(format string, v ...interface{}) {
		t.Logf("semantics: "+format, v...)
	}
	if err := semantics.Analyze(sigs, defs, logf); err != nil {
		return nil, err
	}
	return Compile(defs, sigs, nil)
}

// summarize prints one line per entry of the document.
func summarize(state *document.State) []string {
	out := []string{}
	for _, entry := range state.Expressions.List {
		switch x := entry.(type) {
		case *document.Folder:
			out = append(out, fmt.Sprintf("%s folder %s", x.ID, x.Title))
		case *document.Text:
			out = append(out, fmt.Sprintf("%s text %s", x.ID, x.Text))
		case *document.Expression:
			s := x.ID
			if x.FolderID != "" {
				s += " in " + x.FolderID
			}
			if x.Hidden {
				s += " hidden"
			}
			out = append(out, fmt.Sprintf("%s: %s", s, x.Latex))
		}
	}
	return out
}

const fibonacci = `
var num_a: int = 0;
var num_b: int = 1;

action next() {
	num_a := num_b,
	num_b := num_a + num_b,
}

public {
	num_a;
	num_b;
	action next();
}
`

func TestCompileFibonacci(t *testing.T) {
	state, err := compile(t, fibonacci)
	if err != nil {
		t.Errorf("compile failed with: %+v", err)
		return
	}
	exp := []string{
		`0 folder geometry`,
		`1: X_{numa}`,
		`2: X_{numb}`,
		`3: X_{next}`,
		`4 folder Actions`,
		`5 in 4 hidden: X_{next}=\left(X_{numa}\to X_{numb},X_{numb}\to\left(X_{numa}+X_{numb}\right)\right)`,
		`6 folder Definitions`,
		`7 in 6 hidden: X_{numa}=0`,
		`8 in 6 hidden: X_{numb}=1`,
	}
	if diff := pretty.Compare(exp, summarize(state)); diff != "" {
		t.Errorf("document differs: (-want +got)\n%s", diff)
	}
	if state.Expressions.Ticker != nil {
		t.Errorf("unexpected ticker")
	}

	geometry := state.Expressions.List[0].(*document.Folder)
	if !geometry.Collapsed || !geometry.Secret {
		t.Errorf("the geometry folder must be collapsed and secret")
	}
	actions := state.Expressions.List[4].(*document.Folder)
	if !actions.Collapsed || actions.Secret {
		t.Errorf("the actions folder must be collapsed and visible")
	}
}

func TestCompileEncode(t *testing.T) {
	state, err := compile(t, fibonacci)
	if err != nil {
		t.Errorf("compile failed with: %+v", err)
		return
	}
	b, err := state.Encode()
	if err != nil {
		t.Errorf("encode failed with: %+v", err)
		return
	}
	exp := `{"version":11,"graph":{"product":"geometry-calculator"},"expressions":{"list":[` +
		`{"type":"folder","id":"0","title":"geometry","collapsed":true,"secret":true},` +
		`{"type":"expression","id":"1","latex":"X_{numa}"},` +
		`{"type":"expression","id":"2","latex":"X_{numb}"},` +
		`{"type":"expression","id":"3","latex":"X_{next}"},` +
		`{"type":"folder","id":"4","title":"Actions","collapsed":true},` +
		`{"type":"expression","id":"5","folderId":"4","latex":"X_{next}=\\left(X_{numa}\\to X_{numb},X_{numb}\\to\\left(X_{numa}+X_{numb}\\right)\\right)","hidden":true},` +
		`{"type":"folder","id":"6","title":"Definitions","collapsed":true},` +
		`{"type":"expression","id":"7","folderId":"6","latex":"X_{numa}=0","hidden":true},` +
		`{"type":"expression","id":"8","folderId":"6","latex":"X_{numb}=1","hidden":true}` +
		`]}}`
	if s := string(b); s != exp {
		t.Errorf("unexpected output:\n%s", s)
	}
}

func TestCompileDeterministic(t *testing.T) {
	code := `
		let c = b + a; let a = 1; let b = 2;
		action z() { action y() } action y() { }
		display { a: @rgb(1, 2, 3); b: @hsv(10, 1, 1), point(2); }
		public { c; "text"; }
	`
	var prev []byte
	for i := 0; i < 5; i++ {
		state, err := compile(t, code)
		if err != nil {
			t.Errorf("compile failed with: %+v", err)
			return
		}
		b, err := state.Encode()
		if err != nil {
			t.Errorf("encode failed with: %+v", err)
			return
		}
		if prev != nil && !bytes.Equal(prev, b) {
			t.Errorf("run #%d differs:\n%s\n%s", i, prev, b)
			return
		}
		prev = b
	}
}

func TestTranslate0(t *testing.T) {
	type test struct { // an individual test
		name string
		code string // the definition named a is checked
		exp  string
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{
			name: "ordering",
			code: `var x: real = 0; let a = x < 1;`,
			exp:  `X_{a}=\left\{X_{x}\lt1,0\right\}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "not equal",
			code: `var x: real = 0; let a = x != 1;`,
			exp:  `X_{a}=\left\{X_{x}=1:0,1\right\}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "logical and",
			code: `var x: real = 0; let a = x > 0 && x < 1;`,
			exp:  `X_{a}=\left\{\left\{X_{x}\gt0,0\right\}=0:0,\left\{X_{x}\lt1,0\right\}\right\}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "logical not",
			code: `var x: real = 0; let a = !(x < 1);`,
			exp:  `X_{a}=\left\{\left\{X_{x}\lt1,0\right\}=0,0\right\}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "modulus",
			code: `var x: real = 0; let a = x % 2;`,
			exp:  `X_{a}=\operatorname{mod}\left(X_{x},2\right)`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "exponent and fraction",
			code: `var x: real = 0; let a = x ** 2 / 3;`,
			exp:  `X_{a}=\frac{X_{x}^{2}}{3}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "negation",
			code: `var x: real = 0; let a = -x;`,
			exp:  `X_{a}=\left(-X_{x}\right)`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "list fill",
			code: `var x: real = 0; let a = [x; 3];`,
			exp:  `X_{a}=\left[X_{x}\operatorname{for}X_{0}=\left[1...3\right]\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "comprehension",
			code: `let l = [1, 2]; let a = [v * 2 for v in l];`,
			exp:  `X_{a}=\left[\left(X_{v}*2\right)\operatorname{for}X_{v}=X_{l}\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "filtered comprehension",
			code: `let l = [1, 2]; let a = [v for v in l where v > 1];`,
			exp:  `X_{a}=\left[X_{v}\operatorname{for}X_{v}=X_{l}\right]\left[\left[\left\{X_{v}\gt1,0\right\}\operatorname{for}X_{v}=X_{l}\right]=1\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "exclusive range",
			code: `let a = [1 .. 4];`,
			exp:  `X_{a}=\left[1...3\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "exclusive range to a name",
			code: `let n = 4; let a = [1 .. n];`,
			exp:  `X_{a}=\left[1...\left(X_{n}-1\right)\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "inclusive range with a step",
			code: `let n = 4; let a = [0, 2 ..= n];`,
			exp:  `X_{a}=\left[0,2...X_{n}\right]`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "with clause",
			code: `let a = x + y with x = 1 with y = 2.5;`,
			exp:  `X_{a}=\left(X_{x}+X_{y}\right)\operatorname{with}X_{x}=1,X_{y}=2.5`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "point member",
			code: `let p = (1, 2); let a = p.x;`,
			exp:  `X_{a}=X_{p}.x`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "enum variant",
			code: `enum Dir { Up, Down } const a = Dir.Down;`,
			exp:  `X_{a}=1`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "conditional",
			code: `var x: real = 0; let a = {x > 0: 1, 2};`,
			exp:  `X_{a}=\left\{\left\{X_{x}\gt0,0\right\}=1:1,2\right\}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "builtin call",
			code: `var x: real = 0; let a = @sin(x);`,
			exp:  `X_{a}=\operatorname{sin}\left(X_{x}\right)`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "folded color",
			code: `const a = @rgb(255, 0, 0);`,
			exp:  `X_{a}=\operatorname{rgb}\left(255,0,0\right)`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "function",
			code: `const a(v: real) = v * v;`,
			exp:  `X_{a}\left(X_{v}\right)=\left(X_{v}*X_{v}\right)`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "parameterless call",
			code: `var n: int = 0; let f() = n * 2; let a = f() + 1;`,
			exp:  `X_{a}=\left(X_{f}+1\right)`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "conditional action",
			code: `var n: int = 0; action a(m: int) { if n > m: n := 0, else: n := n + m, }`,
			exp:  `X_{a}\left(X_{m}\right)=\left\{\left\{X_{n}\gt X_{m},0\right\}=1:X_{n}\to0,X_{n}\to\left(X_{n}+X_{m}\right)\right\}`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "action calls",
			code: `var n: int = 0; action b(m: int) { n := m } action c() { } action a() { action b(2), action c() }`,
			exp:  `X_{a}=\left(X_{b}\left(2\right),X_{c}\right)`,
		})
	}

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if tc.name == "" {
			t.Errorf("test #%d: not named", index)
			continue
		}
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			code, exp := tc.code, tc.exp

			state, err := compile(t, code)
			if err != nil {
				t.Errorf("test #%d: compile failed with: %+v", index, err)
				return
			}
			found := ""
			for _, entry := range state.Expressions.List {
				x, ok := entry.(*document.Expression)
				if !ok || !x.Hidden {
					continue
				}
				if strings.HasPrefix(x.Latex, `X_{a}=`) || strings.HasPrefix(x.Latex, `X_{a}\left(`) {
					found = x.Latex
					break
				}
			}
			if found != exp {
				t.Errorf("test #%d: unexpected markup", index)
				t.Logf("test #%d: actual: %s", index, found)
				t.Logf("test #%d: expected: %s", index, exp)
			}
		})
	}
}

func TestCompileText(t *testing.T) {
	state, err := compile(t, `let a = 1; public { "hello world"; a; }`)
	if err != nil {
		t.Errorf("compile failed with: %+v", err)
		return
	}
	exp := []string{
		`0 folder geometry`,
		`1 text hello world`,
		`2: X_{a}`,
		`3 folder Actions`,
		`4 folder Definitions`,
		`5 in 4 hidden: X_{a}=1`,
	}
	if diff := pretty.Compare(exp, summarize(state)); diff != "" {
		t.Errorf("document differs: (-want +got)\n%s", diff)
	}
}

func TestCompileTicker(t *testing.T) {
	state, err := compile(t, `var t: real = 0; ticker (0.1) { t := t + dt }`)
	if err != nil {
		t.Errorf("compile failed with: %+v", err)
		return
	}
	exp := &document.Ticker{
		Open:         true,
		Playing:      true,
		HandlerLatex: `X_{t}\to\left(X_{t}+dt\right)`,
		MinStepLatex: `0.1`,
	}
	if diff := pretty.Compare(exp, state.Expressions.Ticker); diff != "" {
		t.Errorf("ticker differs: (-want +got)\n%s", diff)
	}
}

func TestCompileTickerPaused(t *testing.T) {
	tokens, err := token.Tokenize(`var t: real = 0; ticker { t := t + 1 }`)
	if err != nil {
		t.Errorf("lexer failed: %+v", err)
		return
	}
	sigs, defs, err := parser.Parse(tokens)
	if err != nil {
		t.Errorf("parse failed: %+v", err)
		return
	}
	if err := semantics.Analyze(sigs, defs, t.Logf); err != nil {
		t.Errorf("analysis failed: %+v", err)
		return
	}
	metadata := interfaces.DefaultMetadata()
	metadata.Playing = false
	state, err := Compile(defs, sigs, metadata)
	if err != nil {
		t.Errorf("compile failed with: %+v", err)
		return
	}
	ticker := state.Expressions.Ticker
	if ticker == nil || ticker.Playing || ticker.MinStepLatex != "" {
		t.Errorf("unexpected ticker: %+v", ticker)
	}
}

func TestCompileDisplay(t *testing.T) {
	code := `
		const red = @rgb(255, 0, 0);
		const teal = @hsv(180, 1, 0.5);
		var n: int = 0;
		let p = (1, 2);
		let c = @rgb(n, 0, 0);
		display {
			p: red, point(2, 0.5, "cross"), drag("x"), label("P"),
				description("a point"), click { n := n + 1 };
			p: teal, stroke(3, 0.5, "dashed"), fill(0.25);
			p: c;
		}
	`
	state, err := compile(t, code)
	if err != nil {
		t.Errorf("compile failed with: %+v", err)
		return
	}
	list := state.Expressions.List
	if n := len(list); n < 4 {
		t.Errorf("too few entries: %d", n)
		return
	}
	display := list[len(list)-4].(*document.Folder)
	if display.Title != "Display" || display.Collapsed {
		t.Errorf("unexpected display folder: %+v", display)
	}

	exp := []*document.Expression{
		{
			Type:             "expression",
			ID:               list[len(list)-3].EntryID(),
			FolderID:         display.ID,
			Latex:            `X_{p}`,
			Color:            "#ff0000",
			PointStyle:       "CROSS",
			PointSize:        "2",
			PointOpacity:     "0.5",
			Label:            "P",
			ShowLabel:        true,
			LabelSize:        "1",
			LabelAngle:       "0",
			LabelOrientation: "center",
			DragMode:         "X",
			ClickableInfo: &document.ClickableInfo{
				Enabled: true,
				Latex:   `X_{n}\to\left(X_{n}+1\right)`,
			},
			Description: "a point",
		},
		{
			Type:        "expression",
			ID:          list[len(list)-2].EntryID(),
			FolderID:    display.ID,
			Latex:       `X_{p}`,
			Color:       "#008080",
			LineStyle:   "DASHED",
			LineWidth:   "3",
			LineOpacity: "0.5",
			Fill:        true,
			FillOpacity: "0.25",
		},
		{
			Type:       "expression",
			ID:         list[len(list)-1].EntryID(),
			FolderID:   display.ID,
			Latex:      `X_{p}`,
			ColorLatex: `X_{c}`,
		},
	}
	actual := []*document.Expression{}
	for _, x := range list[len(list)-3:] {
		actual = append(actual, x.(*document.Expression))
	}
	if diff := pretty.Compare(exp, actual); diff != "" {
		t.Errorf("display differs: (-want +got)\n%s", diff)
	}
}

func TestHex(t *testing.T) {
	tests := map[[3]float64]string{
		{0, 0, 1}:     "#ffffff",
		{0, 1, 1}:     "#ff0000",
		{120, 1, 1}:   "#00ff00",
		{240, 1, 0.5}: "#000080",
		{-60, 1, 1}:   "#ff00ff",
	}
	for hsv, exp := range tests {
		r, g, b := hsvToRGB(hsv[0], hsv[1], hsv[2])
		s := fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
		if s != exp {
			t.Errorf("hsv %v: got %s, expected %s", hsv, s, exp)
		}
	}
	if k := keyword("above_left"); k != "ABOVE_LEFT" {
		t.Errorf("unexpected keyword: %s", k)
	}
}
