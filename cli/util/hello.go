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
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Hello is a simple helper function to print a hello message and time. It also
// sets up the standard logger that the rest of the program logs through.
func Hello(w io.Writer, program, version string, flags Flags) {
	var start = time.Now().UnixNano()

	logFlags := log.LstdFlags
	if flags.Debug {
		logFlags = logFlags + log.Lshortfile
	}
	logFlags = logFlags - log.Ldate // remove the date for now
	log.SetFlags(logFlags)

	log.SetOutput(os.Stderr)

	if program == "" {
		program = "<unknown>"
	}
	if !flags.Verbose {
		return
	}
	fmt.Fprintf(w, "This is: %s, version: %s\n", program, version)
	fmt.Fprintf(w, "Copyright (C) James Shubin and the project contributors\n")
	fmt.Fprintf(w, "Written by James Shubin <james@shubin.ca> and the project contributors\n")
	log.Printf("main: start: %v", start)
}
