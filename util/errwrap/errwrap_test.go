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

package errwrap

import (
	"fmt"
	"strings"
	"testing"
)

func TestWrapfNil(t *testing.T) {
	if err := Wrapf(nil, "stage %d", 1); err != nil {
		t.Errorf("expected nil, got: %+v", err)
	}
}

func TestWrapfMessage(t *testing.T) {
	err := Wrapf(fmt.Errorf("inner"), "could not parse %s", "main.fig")
	if s := err.Error(); s != "could not parse main.fig: inner" {
		t.Errorf("unexpected message: %s", s)
	}
}

func TestCause(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := Wrapf(Wrapf(inner, "one"), "two")
	if Cause(err) != inner {
		t.Errorf("expected the inner error")
	}
}

func TestAppendNil(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Errorf("expected nil result")
	}
	reterr := fmt.Errorf("reterr")
	if err := Append(reterr, nil); err != reterr {
		t.Errorf("expected reterr")
	}
	if err := Append(nil, reterr); err != reterr {
		t.Errorf("expected reterr")
	}
}

func TestAppendBoth(t *testing.T) {
	err := Append(fmt.Errorf("close failed"), fmt.Errorf("write failed"))
	s := String(err)
	if !strings.Contains(s, "close failed") || !strings.Contains(s, "write failed") {
		t.Errorf("expected both messages, got: %s", s)
	}
}

func TestString(t *testing.T) {
	var err error
	if String(err) != "" {
		t.Errorf("expected empty result")
	}
	if String(fmt.Errorf("boom")) != "boom" {
		t.Errorf("expected different result")
	}
}
