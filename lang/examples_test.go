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

package lang

import (
	"fmt"
	"testing"

	"github.com/purpleidea/figura/lang/document"

	"github.com/spf13/afero"
)

func TestExamples(t *testing.T) {
	testCases := map[string]string{ // input -> first text entry
		"../examples/lang/fibonacci.fig":     "Fibonacci",
		"../examples/lang/clock/":            "Clock",
		"../examples/lang/clock/figura.yaml": "Clock",
	}
	for input, text := range testCases {
		t.Run(fmt.Sprintf("example (%s)", input), func(t *testing.T) {
			compiler := &Compiler{
				Fs:    afero.NewReadOnlyFs(afero.NewOsFs()),
				Input: input,
				Logf:  t.Logf,
			}
			state, err := compiler.Compile()
			if err != nil {
				t.Errorf("compile failed with: %+v", err)
				return
			}
			found := ""
			for _, entry := range state.Expressions.List {
				if x, ok := entry.(*document.Text); ok {
					found = x.Text
					break
				}
			}
			if found != text {
				t.Errorf("unexpected text entry: %s", found)
			}
		})
	}
}

func TestExampleClock(t *testing.T) {
	compiler := &Compiler{
		Fs:    afero.NewReadOnlyFs(afero.NewOsFs()),
		Input: "../examples/lang/clock/",
		Logf:  t.Logf,
	}
	state, err := compiler.Compile()
	if err != nil {
		t.Errorf("compile failed with: %+v", err)
		return
	}
	if state.Expressions.Ticker == nil {
		t.Errorf("the clock needs a ticker")
		return
	}
	if s := state.Expressions.Ticker.MinStepLatex; s != "1" {
		t.Errorf("unexpected interval: %s", s)
	}
	titles := titles(state)
	if titles[2] != "Clock" || titles[3] != "Face" {
		t.Errorf("unexpected folders: %v", titles)
	}
}
