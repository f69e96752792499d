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

// Package errwrap contains the error helpers used throughout the compiler.
package errwrap

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf adds a new message onto an existing error. If the error is nil, then
// nil is returned, so this is safe to use on the return path of any stage.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Cause walks down a chain of wrapped errors and returns the innermost one. The
// cli uses this to find the located compile error that started the chain.
func Cause(err error) error {
	return errors.Cause(err)
}

// Append combines two errors, either of which may be nil. It is the safe way
// to write `reterr += err` when closing files or shutting down watchers.
func Append(reterr, err error) error {
	if reterr == nil {
		return err // which might be nil too
	}
	if err == nil {
		return reterr
	}
	return multierror.Append(reterr, err)
}

// String returns the error message, or the empty string for a nil error.
func String(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
