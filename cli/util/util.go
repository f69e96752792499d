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

// Package util has some CLI related utility code.
package util

import (
	"io"

	"github.com/purpleidea/figura/util/errwrap"

	"github.com/spf13/afero"
)

// Error is a constant error type that implements error.
type Error string

// Error fulfills the error interface of this type.
func (e Error) Error() string { return string(e) }

const (
	// OutNotDir means several sources were given with a single output file.
	OutNotDir = Error("the output must be a directory when compiling several sources")

	// WatchStdin means we were asked to watch something we can't watch.
	WatchStdin = Error("can't watch stdin or raw code")
)

// CliParseError returns a consistent error if we have a CLI parsing issue.
func CliParseError(err error) error {
	return errwrap.Wrapf(err, "cli parse error")
}

// Flags are some constant flags which are used throughout the program.
type Flags struct {
	Debug   bool // add additional log messages
	Verbose bool // add extra log message output
}

// Data is a struct of values that we usually pass to the main CLI function.
type Data struct {
	Program string
	Version string
	Copying string
	Tagline string
	Flags   Flags
	Args    []string // os.Args usually

	// Fs is where the sources are read and the documents are written. It
	// defaults to the os file system.
	Fs afero.Fs

	// Stdout receives the documents of stdin and the status messages. It
	// defaults to os.Stdout.
	Stdout io.Writer
}
