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

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cliUtil "github.com/purpleidea/figura/cli/util"
	"github.com/purpleidea/figura/lang"
	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/prometheus"
	"github.com/purpleidea/figura/util"
	"github.com/purpleidea/figura/util/errwrap"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/spf13/afero"
)

// compiler compiles a batch of sources and writes out the documents.
type compiler struct {
	fs       afero.Fs
	srcs     []string
	out      string
	metadata *interfaces.Metadata
	debug    bool
	logf     func(format string, v ...interface{})
	stdout   io.Writer
	prom     *prometheus.Prometheus // nil when metrics are off
}

// compileAll compiles every source in order. It stops at the first failure.
func (obj *compiler) compileAll() error {
	if len(obj.srcs) > 1 && obj.out != "" && !obj.outIsDir() {
		return cliUtil.OutNotDir
	}
	for _, src := range obj.srcs {
		if err := obj.compile(src); err != nil {
			return err
		}
	}
	return nil
}

// compile compiles a single source and writes the document.
func (obj *compiler) compile(src string) (reterr error) {
	c := &lang.Compiler{
		Fs:       obj.fs,
		Input:    src,
		Metadata: obj.metadata,
		Debug:    obj.debug,
		Logf: func(format string, v ...interface{}) {
			if obj.debug {
				obj.logf("lang: "+format, v...)
			}
		},
	}
	b, elapsed, err := c.Build()
	if obj.prom != nil {
		result := prometheus.ResultSuccess
		if err != nil {
			result = prometheus.ResultFailure
		}
		obj.prom.UpdateCompileTotal(result)
		obj.prom.ObserveCompileSeconds(elapsed.Seconds())
	}
	if err != nil {
		return report(src, c.Source(), err)
	}

	dst, err := obj.destination(c.Name())
	if err != nil {
		return err
	}
	if dst == "" { // stdout
		_, err := fmt.Fprintf(obj.stdout, "%s\n", b)
		return err
	}
	if err := obj.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errwrap.Wrapf(err, "can't make output dir for: `%s`", dst)
	}
	f, err := obj.fs.Create(dst)
	if err != nil {
		return errwrap.Wrapf(err, "can't create output file: `%s`", dst)
	}
	defer func() {
		reterr = errwrap.Append(reterr, f.Close())
	}()
	if _, err := f.Write(b); err != nil {
		return errwrap.Wrapf(err, "can't write output file: `%s`", dst)
	}
	fmt.Fprintf(obj.stdout, "compiled %s -> %s\n", src, dst)
	return nil
}

// outIsDir returns true if the output names a directory.
func (obj *compiler) outIsDir() bool {
	if util.HasPathSuffix(obj.out) {
		return true
	}
	fi, err := obj.fs.Stat(obj.out)
	return err == nil && fi.IsDir()
}

// destination returns where the document of the named source goes. The empty
// string means stdout. Without an output flag, the document sits next to the
// source.
func (obj *compiler) destination(name string) (string, error) {
	raw := strings.HasPrefix(name, "<") // stdin or raw code
	base := util.ReplaceExtension(filepath.Base(name), interfaces.OutputExtension)
	switch {
	case obj.out == "" && raw:
		return "", nil
	case obj.out == "":
		return util.ReplaceExtension(name, interfaces.OutputExtension), nil
	case obj.outIsDir() && raw:
		return "", fmt.Errorf("can't name the output of %s in: `%s`", name, obj.out)
	case obj.outIsDir():
		// the name may not escape the output directory
		dst, err := securejoin.SecureJoin(filepath.Clean(obj.out), base)
		if err != nil {
			return "", errwrap.Wrapf(err, "bad output path for: `%s`", name)
		}
		return dst, nil
	}
	return obj.out, nil
}

// report builds the error of a failed source. A located error gets the line of
// the source it points at.
func report(src, source string, err error) error {
	var e *interfaces.CompileError
	if !errors.As(err, &e) {
		return errwrap.Wrapf(err, "%s", src)
	}
	if text := e.HighlightText(source); text != "" {
		return fmt.Errorf("%s: %s\n%s", src, errwrap.String(err), strings.TrimSuffix(text, "\n"))
	}
	return errwrap.Wrapf(err, "%s", src)
}

// sourcePath returns what to watch for a source, or an error for inputs which
// are not files.
func sourcePath(src string) (string, error) {
	if src == "-" || strings.ContainsAny(src, " \t\n;{}") {
		return "", cliUtil.WatchStdin
	}
	p, err := filepath.Abs(src)
	if err != nil {
		return "", err
	}
	if util.HasPathSuffix(src) {
		p += "/"
	}
	if _, err := os.Stat(p); err != nil {
		return "", errwrap.Wrapf(err, "can't watch: `%s`", src)
	}
	return p, nil
}
