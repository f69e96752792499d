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

// Package cli handles all of the core command line parsing. It's the first
// entry point after the real main function, and it runs the compiler.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	cliUtil "github.com/purpleidea/figura/cli/util"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/prometheus"
	"github.com/purpleidea/figura/util/errwrap"

	"github.com/alexflint/go-arg"
	"github.com/spf13/afero"
)

// CLI is the entry point for using figura normally from the CLI.
func CLI(ctx context.Context, data *cliUtil.Data) error {
	// test for sanity
	if data == nil {
		return fmt.Errorf("this CLI was not run correctly")
	}
	if data.Program == "" || data.Version == "" {
		return fmt.Errorf("program was not compiled correctly")
	}
	if data.Copying == "" {
		return fmt.Errorf("program copyrights were removed, can't run")
	}
	if data.Fs == nil {
		data.Fs = afero.NewOsFs()
	}
	if data.Stdout == nil {
		data.Stdout = os.Stdout
	}

	args := Args{}
	args.version = data.Version // copy this in
	args.description = data.Tagline

	config := arg.Config{
		Program: data.Program,
	}
	parser, err := arg.NewParser(config, &args)
	if err != nil {
		// programming error
		return errwrap.Wrapf(err, "cli config error")
	}
	err = parser.Parse(data.Args[1:]) // args[0] is the program name
	if err == arg.ErrHelp {
		parser.WriteHelp(data.Stdout)
		return nil
	}
	if err == arg.ErrVersion {
		fmt.Fprintf(data.Stdout, "%s\n", data.Version) // byon: bring your own newline
		return nil
	}
	if err != nil {
		return cliUtil.CliParseError(err) // consistent errors
	}

	// display the license
	if args.License {
		fmt.Fprintf(data.Stdout, "%s", data.Copying) // file comes with a trailing nl
		return nil
	}

	if ok, err := args.Run(ctx, data); err != nil {
		return err
	} else if ok { // did we do anything?
		return nil
	}

	// print help if no sources are given
	parser.WriteHelp(data.Stdout)

	return nil
}

// Args is the CLI parsing structure and type of the parsed result.
type Args struct {
	Src []string `arg:"--src,separate" help:"source file, project file or project directory to compile (repeatable, - for stdin)"`

	Out string `arg:"--out" help:"output file, or directory when it ends with a slash or exists"`

	Metadata string `arg:"--metadata" help:"project file with the document settings"`

	Debug bool `arg:"--debug" help:"enable debug logging"`

	Watch bool `arg:"--watch" help:"recompile whenever a source changes"`

	Prometheus bool `arg:"--prometheus" help:"serve compile metrics"`

	PrometheusListen string `arg:"--prometheus-listen" help:"specify prometheus instance binding"`

	License bool `arg:"--license" help:"display the license and exit"`

	// version is a private handle for our version string.
	version string `arg:"-"` // ignored from parsing

	// description is a private handle for our description string.
	description string `arg:"-"` // ignored from parsing
}

// Version returns the version string. Implementing this signature is part of
// the API for the cli library.
func (obj *Args) Version() string {
	return obj.version
}

// Description returns a description string. Implementing this signature is part
// of the API for the cli library.
func (obj *Args) Description() string {
	return obj.description
}

// Run compiles the sources. It returns true if there was something to do. It
// returns false if no sources were given, so that the top-level parser can
// print the usage information.
func (obj *Args) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	if len(obj.Src) == 0 {
		return false, nil
	}
	flags := data.Flags
	flags.Debug = flags.Debug || obj.Debug
	cliUtil.Hello(data.Stdout, data.Program, data.Version, flags) // say hello!

	logf := func(format string, v ...interface{}) {
		log.Printf("main: "+format, v...)
	}

	compiler := &compiler{
		fs:     data.Fs,
		srcs:   obj.Src,
		out:    obj.Out,
		debug:  flags.Debug,
		logf:   logf,
		stdout: data.Stdout,
	}

	if obj.Metadata != "" {
		f, err := data.Fs.Open(obj.Metadata)
		if err != nil {
			return false, errwrap.Wrapf(err, "can't open metadata file")
		}
		metadata, err := interfaces.ParseMetadata(f)
		f.Close()
		if err != nil {
			return false, errwrap.Wrapf(err, "can't load metadata file: `%s`", obj.Metadata)
		}
		compiler.metadata = metadata
	}

	if obj.Prometheus {
		prom := &prometheus.Prometheus{
			Listen: obj.PrometheusListen,
		}
		if err := prom.Init(); err != nil {
			return false, errwrap.Wrapf(err, "can't initialize prometheus")
		}
		if err := prom.Start(); err != nil {
			return false, errwrap.Wrapf(err, "can't start prometheus")
		}
		logf("prometheus: serving metrics on %s", prom.Listen)
		defer prom.Stop()
		compiler.prom = prom
	}

	if obj.Watch {
		return true, compiler.watch(ctx, obj.Metadata)
	}
	return true, compiler.compileAll()
}
