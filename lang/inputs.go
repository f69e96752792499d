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

package lang

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/util/errwrap"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/spf13/afero"
)

// Input logic: a program is a single source file. We can point directly at the
// file, at the figura.yaml project file which names it, or at a directory
// holding either of those. If the directory has a project file it wins over a
// main.fig file. A project file found next to a source file supplies the
// document settings for it. Anything else is treated as raw code.

var (
	// inputOrder contains the correct running order of the input functions.
	inputOrder = []func(string, afero.Fs) (*ParsedInput, error){
		inputEmpty,
		inputStdin,
		inputMetadata,
		inputSource,
		inputDirectory,
		inputCode,
	}
)

// ParsedInput is the output struct which contains all the information we need.
type ParsedInput struct {
	Base     string // base path (abs path with trailing slash)
	Name     string // path of the source file, or a placeholder for raw code
	Main     []byte // contents of the source file
	Metadata *interfaces.Metadata
}

// parseInput runs the list of input parsers to know how to read the program.
// The fs input is the source filesystem to look in.
func parseInput(s string, fs afero.Fs) (*ParsedInput, error) {
	for _, fn := range inputOrder { // list of input detection functions
		output, err := fn(s, fs)
		if err != nil {
			return nil, err
		}
		if output != nil { // activated!
			return output, nil
		}
	}
	return nil, fmt.Errorf("input is invalid")
}

// absify makes a path absolute if it's not already.
func absify(str string) (string, error) {
	if filepath.IsAbs(str) {
		return str, nil // done early!
	}
	x, err := filepath.Abs(str)
	if err != nil {
		return "", errwrap.Wrapf(err, "can't get abs path for: `%s`", str)
	}
	if strings.HasSuffix(str, "/") { // if we started with a trailing slash
		x = dirify(x) // add it back because filepath.Abs() removes it!
	}
	return x, nil
}

// dirify ensures path ends with a trailing slash, so that it's a dir.
func dirify(str string) string {
	if !strings.HasSuffix(str, "/") {
		return str + "/"
	}
	return str
}

// readFile reads a whole file from the fs.
func readFile(fs afero.Fs, name string) ([]byte, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't read from file: `%s`", name)
	}
	defer f.Close() // we're done reading by the time this runs
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't read in file: `%s`", name)
	}
	return b, nil
}

// loadMetadata parses the project file at the path.
func loadMetadata(fs afero.Fs, name string) (*interfaces.Metadata, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, errwrap.Wrapf(err, "file: `%s` does not exist", name)
	}
	defer f.Close()
	metadata, err := interfaces.ParseMetadata(f)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not parse metadata file: `%s`", name)
	}
	return metadata, nil
}

// inputEmpty is a simple empty string contents check.
func inputEmpty(s string, _ afero.Fs) (*ParsedInput, error) {
	if s == "" {
		return nil, fmt.Errorf("input is empty")
	}
	return nil, nil // pass (this test never succeeds)
}

// inputStdin checks if we're looking at stdin.
func inputStdin(s string, fs afero.Fs) (*ParsedInput, error) {
	if s != "-" {
		return nil, nil // not us, but no error
	}
	b, err := io.ReadAll(os.Stdin) // doesn't need fs
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't read in stdin")
	}
	output, err := inputCode(string(b), fs) // recurse
	if err != nil {
		return nil, err
	}
	output.Name = "<stdin>"
	return output, nil
}

// inputMetadata checks to see if we have a project file path.
func inputMetadata(s string, fs afero.Fs) (*ParsedInput, error) {
	if s != interfaces.MetadataFilename && !strings.HasSuffix(s, "/"+interfaces.MetadataFilename) {
		return nil, nil // not us, but no error
	}
	var err error
	if s, err = absify(s); err != nil { // s is now absolute
		return nil, err
	}
	metadata, err := loadMetadata(fs, s)
	if err != nil {
		return nil, err
	}

	// base path on local system of the metadata file, with trailing slash
	basePath := dirify(filepath.Dir(s))
	// the main file is kept inside the project directory, the root given
	// to the join must be clean, so it has no trailing slash
	m, err := securejoin.SecureJoin(filepath.Clean(basePath), metadata.Main)
	if err != nil {
		return nil, errwrap.Wrapf(err, "bad main path: `%s`", metadata.Main)
	}
	b, err := readFile(fs, m)
	if err != nil {
		return nil, err
	}
	return &ParsedInput{
		Base:     basePath,
		Name:     m,
		Main:     b,
		Metadata: metadata,
	}, nil
}

// inputSource checks if we have a path to a *.fig file.
func inputSource(s string, fs afero.Fs) (*ParsedInput, error) {
	if !strings.HasSuffix(s, interfaces.DotFileNameExtension) {
		return nil, nil // not us, but no error
	}
	var err error
	if s, err = absify(s); err != nil { // s is now absolute
		return nil, err
	}
	b, err := readFile(fs, s)
	if err != nil {
		return nil, err
	}

	basePath := dirify(filepath.Dir(s))
	metadata := interfaces.DefaultMetadata()
	metadata.Main = filepath.Base(s) // use the name of the input

	// a project file alongside us provides the settings
	md := basePath + interfaces.MetadataFilename
	if _, err := fs.Stat(md); err == nil {
		if metadata, err = loadMetadata(fs, md); err != nil {
			return nil, err
		}
	}
	return &ParsedInput{
		Base:     basePath,
		Name:     s,
		Main:     b,
		Metadata: metadata,
	}, nil
}

// inputDirectory checks if we're given the path to a directory.
func inputDirectory(s string, fs afero.Fs) (*ParsedInput, error) {
	if !strings.HasSuffix(s, "/") {
		return nil, nil // not us, but no error
	}
	var err error
	if s, err = absify(s); err != nil { // s is now absolute
		return nil, err
	}
	fi, err := fs.Stat(s)
	if err != nil {
		return nil, errwrap.Wrapf(err, "dir: `%s` does not exist", s)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("dir: `%s` is not a dir", s)
	}

	// try looking for a metadata file in the root
	md := s + interfaces.MetadataFilename
	if _, err := fs.Stat(md); err == nil {
		return inputMetadata(md, fs) // recurse
	}

	// try looking for a main.fig file in the root
	mf := s + interfaces.MainFilename
	if _, err := fs.Stat(mf); err == nil {
		return inputSource(mf, fs) // recurse
	}

	return nil, fmt.Errorf("dir: `%s` has no `%s` or `%s`", s, interfaces.MetadataFilename, interfaces.MainFilename)
}

// inputCode checks if this is raw code. This is the last possibility.
func inputCode(s string, fs afero.Fs) (*ParsedInput, error) {
	if len(s) == 0 {
		// handle empty strings in a single place by recursing
		return inputEmpty(s, fs)
	}

	// a source file path which has a typo is obviously not correct code
	if !strings.ContainsAny(s, " \t\n;{}") && (strings.HasSuffix(s, ".yaml") || strings.Contains(s, "/")) {
		return nil, fmt.Errorf("unexpected raw code '%s', is the path correct?", s)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't get working dir")
	}
	return &ParsedInput{
		Base:     dirify(wd),
		Name:     "<code>",
		Main:     []byte(s),
		Metadata: interfaces.DefaultMetadata(),
	}, nil
}
