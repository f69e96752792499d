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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/purpleidea/figura/cli"
	cliUtil "github.com/purpleidea/figura/cli/util"
)

// These constants are some global variables that are used throughout the code.
const (
	Debug   = false // add additional log messages
	Verbose = false // add extra log message output

	tagline = "compile interactive diagrams into geometry calculator documents"

	copying = `figura is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version. See <https://www.gnu.org/licenses/>.
`
)

// set at compile time
var (
	program string
	version string
)

func main() {
	if program == "" {
		program = "figura"
	}
	if version == "" {
		version = "0.0.0-dev"
	}
	data := &cliUtil.Data{
		Program: program,
		Version: version,
		Copying: copying,
		Tagline: tagline,
		Flags: cliUtil.Flags{
			Debug:   Debug,
			Verbose: Verbose,
		},
		Args: os.Args,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.CLI(ctx, data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
		return
	}
}
