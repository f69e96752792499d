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

// Package lang is the entry point of the compiler. It reads a program from a
// file system, runs it through every stage, and returns the document.
package lang

import (
	"bytes"
	"path"
	"time"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/document"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/lang/semantics"
	"github.com/purpleidea/figura/lang/target/geometry"
	"github.com/purpleidea/figura/util"
	"github.com/purpleidea/figura/util/errwrap"

	"github.com/sanity-io/litter"
	"github.com/spf13/afero"
)

// Compiler is the main compiler object.
type Compiler struct {
	Fs afero.Fs // fs where the input and the metadata exist
	// Input is a string which specifies what should be compiled. It can
	// accept values in several different forms. If is passed a single dash
	// (-), then it will use `os.Stdin`. If it is passed a single .fig file,
	// then it will compile that. If it is passed a directory path, then it
	// will look for a project file or a main.fig file in there. Instead, if
	// it is passed the path to a project file, then it will compile the
	// main file it names. If none of those match, it will attempt to compile
	// the raw string as code.
	Input string

	// Metadata overrides the document settings of the input when it is not
	// nil.
	Metadata *interfaces.Metadata

	Debug bool
	Logf  func(format string, v ...interface{})

	// these are set by a successful Compile
	name   string
	source string
	sigs   *ast.Signatures
	defs   *ast.Definitions
}

// Compile reads the input and runs the lexer, the parser, the analyzer and the
// target compiler on it.
func (obj *Compiler) Compile() (*document.State, error) {
	if obj.Debug {
		obj.Logf("input: %s", obj.Input)
		// raw code has no dir, so a failure here is not an error
		if tree, err := util.FsTree(obj.Fs, path.Dir(obj.Input)); err == nil {
			obj.Logf("input tree:\n%s", tree)
		}
	}

	output, err := parseInput(obj.Input, obj.Fs)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not activate an input parser")
	}
	obj.name = output.Name
	obj.source = string(output.Main)
	metadata := output.Metadata
	if obj.Metadata != nil {
		metadata = obj.Metadata
	}

	obj.Logf("lexing/parsing %s...", obj.name)
	sigs, defs, err := LexParse(bytes.NewReader(output.Main))
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not generate AST")
	}

	obj.Logf("analyzing...")
	logf := func(format string, v ...interface{}) {
		if obj.Debug { // the analyzer only has debug messages...
			obj.Logf("semantics: "+format, v...)
		}
	}
	if err := semantics.Analyze(sigs, defs, logf); err != nil {
		return nil, errwrap.Wrapf(err, "could not analyze")
	}
	obj.sigs, obj.defs = sigs, defs
	if obj.Debug {
		obj.Logf("behold, the definitions:\n%s", litter.Sdump(defs.Identifiers))
	}

	obj.Logf("compiling...")
	state, err := geometry.Compile(defs, sigs, metadata)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not compile")
	}
	return state, nil
}

// Name returns the path of the source which was last compiled.
func (obj *Compiler) Name() string { return obj.name }

// Source returns the text of the source which was last compiled. It is used to
// highlight the location of an error.
func (obj *Compiler) Source() string { return obj.source }

// Build compiles the input and encodes the document. It also returns how long
// the compile took.
func (obj *Compiler) Build() ([]byte, time.Duration, error) {
	start := time.Now()
	state, err := obj.Compile()
	if err != nil {
		return nil, time.Since(start), err
	}
	b, err := state.Encode()
	if err != nil {
		return nil, time.Since(start), errwrap.Wrapf(err, "could not encode")
	}
	return b, time.Since(start), nil
}
