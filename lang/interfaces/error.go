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

package interfaces

import (
	"fmt"
)

// Error is a constant error type that implements error.
type Error string

// Error fulfills the error interface of this type.
func (e Error) Error() string { return string(e) }

// CompileError is the single located error type produced by every stage of
// the compiler. The location is optional, since some errors, such as an empty
// file, don't point anywhere in particular.
type CompileError struct {
	Textarea

	// Message is the human readable description without any location.
	Message string
}

// NewError builds a new compile error. Either location may be nil.
func NewError(message string, start, end *Location) *CompileError {
	return &CompileError{
		Textarea: Textarea{
			Start: start,
			End:   end,
		},
		Message: message,
	}
}

// Errorf builds a new compile error with a formatted message.
func Errorf(start, end *Location, format string, v ...interface{}) *CompileError {
	return NewError(fmt.Sprintf(format, v...), start, end)
}

// Error displays this error with the start location in front if it has one.
func (obj *CompileError) Error() string {
	if obj.Start == nil {
		return obj.Message
	}
	return fmt.Sprintf("%s %s", obj.Start, obj.Message)
}
