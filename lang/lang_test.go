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
	"errors"
	"fmt"
	"testing"

	"github.com/purpleidea/figura/lang/document"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/util"

	"github.com/kylelemons/godebug/pretty"
	"github.com/spf13/afero"
)

// titles returns the folder titles and the entry count of a document.
func titles(state *document.State) []string {
	out := []string{}
	for _, entry := range state.Expressions.List {
		if x, ok := entry.(*document.Folder); ok {
			out = append(out, x.Title)
		}
	}
	return append(out, fmt.Sprintf("%d entries", len(state.Expressions.List)))
}

func TestCompile0(t *testing.T) {
	type test struct { // an individual test
		name  string
		files map[string]string
		input string
		fail  string // expected error message, empty for success
		exp   []string
		src   string // expected source name
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{
			name: "source file",
			files: map[string]string{
				"/proj/main.fig": `let a = 1; public { a; }`,
			},
			input: "/proj/main.fig",
			exp:   []string{"geometry", "Actions", "Definitions", "5 entries"},
			src:   "/proj/main.fig",
		})
	}
	{
		testCases = append(testCases, test{
			name: "source file with a project file",
			files: map[string]string{
				"/proj/clock.fig":   `let a = 1;`,
				"/proj/figura.yaml": "folders:\n  definitions: \"Values\"\n",
			},
			input: "/proj/clock.fig",
			exp:   []string{"geometry", "Actions", "Values", "4 entries"},
			src:   "/proj/clock.fig",
		})
	}
	{
		testCases = append(testCases, test{
			name: "project file",
			files: map[string]string{
				"/proj/figura.yaml": "main: \"src/clock.fig\"\nfolders:\n  actions: \"Buttons\"\n",
				"/proj/src/clock.fig": `var n: int = 0; action tick() { n := n + 1 }`,
			},
			input: "/proj/figura.yaml",
			exp:   []string{"geometry", "Buttons", "Definitions", "5 entries"},
			src:   "/proj/src/clock.fig",
		})
	}
	{
		testCases = append(testCases, test{
			name: "directory with a main file",
			files: map[string]string{
				"/proj/main.fig": `let a = 1; display { a: @rgb(0, 0, 255); }`,
			},
			input: "/proj/",
			exp:   []string{"geometry", "Actions", "Definitions", "Display", "6 entries"},
			src:   "/proj/main.fig",
		})
	}
	{
		testCases = append(testCases, test{
			name: "directory with a project file",
			files: map[string]string{
				"/proj/main.fig":    `let a = 1;`,
				"/proj/other.fig":   `let a = 1; let b = 2;`,
				"/proj/figura.yaml": "main: \"other.fig\"\n",
			},
			input: "/proj/",
			exp:   []string{"geometry", "Actions", "Definitions", "5 entries"},
			src:   "/proj/other.fig",
		})
	}
	{
		testCases = append(testCases, test{
			name: "project file naming a sibling",
			files: map[string]string{
				"/proj/figura.yaml": "main: main.fig\n",
				"/proj/main.fig":    `let a = 1;`,
			},
			input: "/proj/figura.yaml",
			exp:   []string{"geometry", "Actions", "Definitions", "4 entries"},
			src:   "/proj/main.fig",
		})
	}
	{
		testCases = append(testCases, test{
			name: "project file escaping its dir",
			files: map[string]string{
				"/proj/figura.yaml": "main: ../../secret.fig\n",
				"/secret.fig":       `let a = 1;`,
				"/proj/secret.fig":  `let a = 1; let b = 2;`,
			},
			input: "/proj/figura.yaml",
			exp:   []string{"geometry", "Actions", "Definitions", "5 entries"},
			src:   "/proj/secret.fig",
		})
	}
	{
		testCases = append(testCases, test{
			name:  "raw code",
			input: `let a = 1;`,
			exp:   []string{"geometry", "Actions", "Definitions", "4 entries"},
			src:   "<code>",
		})
	}
	{
		testCases = append(testCases, test{
			name:  "empty input",
			input: ``,
			fail:  `could not activate an input parser: input is empty`,
		})
	}
	{
		testCases = append(testCases, test{
			name:  "missing file",
			input: "/proj/missing.fig",
			fail:  `could not activate an input parser: can't read from file: ` + "`/proj/missing.fig`" + `: open /proj/missing.fig: file does not exist`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "empty directory",
			files: map[string]string{
				"/proj/notes.txt": `hello`,
			},
			input: "/proj/",
			fail:  "could not activate an input parser: dir: `/proj/` has no `figura.yaml` or `main.fig`",
		})
	}
	{
		testCases = append(testCases, test{
			name:  "path typo",
			input: "proj/figura.yml",
			fail:  `could not activate an input parser: unexpected raw code 'proj/figura.yml', is the path correct?`,
		})
	}
	{
		testCases = append(testCases, test{
			name: "bad project file",
			files: map[string]string{
				"/proj/figura.yaml": "version: 0\n",
			},
			input: "/proj/figura.yaml",
			fail:  "could not activate an input parser: could not parse metadata file: `/proj/figura.yaml`: the version field must be positive",
		})
	}
	{
		testCases = append(testCases, test{
			name:  "lexer error",
			input: `let a = 1 é 2;`,
			fail:  `could not generate AST: (line 1:11) unexpected character: é`,
		})
	}
	{
		testCases = append(testCases, test{
			name:  "analysis error",
			input: `let a = b;`,
			fail:  `could not analyze: (line 1:9) unknown name 'b'`,
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
			files, input, fail, exp, src := tc.files, tc.input, tc.fail, tc.exp, tc.src

			fs := afero.NewMemMapFs()
			for _, name := range util.SortedKeys(files) {
				if err := afero.WriteFile(fs, name, []byte(files[name]), 0644); err != nil {
					t.Errorf("test #%d: could not write file: %+v", index, err)
					return
				}
			}

			compiler := &Compiler{
				Fs:    fs,
				Input: input,
				Debug: true,
				Logf: func(format string, v ...interface{}) {
					t.Logf(fmt.Sprintf("test #%d: lang: ", index)+format, v...)
				},
			}
			state, err := compiler.Compile()

			if fail != "" {
				if err == nil {
					t.Errorf("test #%d: compile passed, expected fail", index)
					return
				}
				if s := err.Error(); s != fail {
					t.Errorf("test #%d: wrong error message", index)
					t.Logf("test #%d: actual: %s", index, s)
					t.Logf("test #%d: expected: %s", index, fail)
				}
				return
			}
			if err != nil {
				t.Errorf("test #%d: compile failed with: %+v", index, err)
				return
			}
			if diff := pretty.Compare(exp, titles(state)); diff != "" {
				t.Errorf("test #%d: document differs: (-want +got)\n%s", index, diff)
			}
			if s := compiler.Name(); s != src {
				t.Errorf("test #%d: unexpected source name: %s", index, s)
			}
		})
	}
}

func TestCompileErrorLocation(t *testing.T) {
	code := "let a = 1;\nlet b = a + c;\n"
	compiler := &Compiler{
		Fs:    afero.NewMemMapFs(),
		Input: code,
		Logf:  t.Logf,
	}
	_, err := compiler.Compile()
	if err == nil {
		t.Errorf("compile passed, expected fail")
		return
	}
	var e *interfaces.CompileError
	if !errors.As(err, &e) {
		t.Errorf("expected a located error, got: %+v", err)
		return
	}
	if e.Start == nil || e.Start.Line != 2 || e.Start.Column != 13 {
		t.Errorf("unexpected location: %s", e.Byline())
	}
	exp := "let b = a + c;\n            ^\n"
	if s := e.HighlightText(compiler.Source()); s != exp {
		t.Errorf("unexpected highlight:\n%s", s)
	}
}

func TestCompileMetadataOverride(t *testing.T) {
	metadata := interfaces.DefaultMetadata()
	metadata.Version = 9
	compiler := &Compiler{
		Fs:       afero.NewMemMapFs(),
		Input:    `var t: real = 0; ticker { t := t + dt }`,
		Metadata: metadata,
		Logf:     t.Logf,
	}
	b, _, err := compiler.Build()
	if err != nil {
		t.Errorf("build failed with: %+v", err)
		return
	}
	exp := `{"version":9,"graph":{"product":"geometry-calculator"},"expressions":{"list":[` +
		`{"type":"folder","id":"0","title":"geometry","collapsed":true,"secret":true},` +
		`{"type":"folder","id":"1","title":"Actions","collapsed":true},` +
		`{"type":"folder","id":"2","title":"Definitions","collapsed":true},` +
		`{"type":"expression","id":"3","folderId":"2","latex":"X_{t}=0","hidden":true}` +
		`],"ticker":{"open":true,"playing":true,"handlerLatex":"X_{t}\\to\\left(X_{t}+dt\\right)"}}}`
	if s := string(b); s != exp {
		t.Errorf("unexpected output:\n%s", s)
	}
}
