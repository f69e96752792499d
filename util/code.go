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

package util

import (
	"strings"
)

// Code takes a backtick enclosed source snippet and removes the leading tabs
// that the first non-empty line has from every line. An empty first line is
// dropped. This lets tests inline source files without ugly indentation.
func Code(code string) string {
	lines := strings.Split(code, "\n")
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	strip := ""
	for _, x := range lines {
		if x == "" {
			continue
		}
		strip = x[:len(x)-len(strings.TrimLeft(x, "\t"))]
		break
	}

	output := make([]string, 0, len(lines))
	for _, x := range lines {
		output = append(output, strings.TrimPrefix(x, strip))
	}
	return strings.Join(output, "\n")
}
