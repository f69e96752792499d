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
	"io"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/parser"
	"github.com/purpleidea/figura/lang/token"
	"github.com/purpleidea/figura/util/errwrap"
)

// LexParse runs the lexer/parser machinery and returns the signatures and the
// definitions of the program. The errors of the lexer and the parser are
// returned unwrapped so that their location stays accessible.
func LexParse(input io.Reader) (*ast.Signatures, *ast.Definitions, error) {
	b, err := io.ReadAll(input)
	if err != nil {
		return nil, nil, errwrap.Wrapf(err, "can't read input")
	}
	tokens, err := token.Tokenize(string(b))
	if err != nil {
		return nil, nil, err
	}
	return parser.Parse(tokens)
}
