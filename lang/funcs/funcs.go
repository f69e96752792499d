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

// Package funcs provides the registry of the builtin commands of the target
// calculator. They are called with the `@name(...)` syntax.
package funcs

import (
	"fmt"
	"sort"

	"github.com/purpleidea/figura/lang/types"
)

// Variadic is the argument count of a command which takes any number of
// arguments.
const Variadic = -1

// Func describes one builtin command.
type Func struct {
	Name string

	// Args is the exact number of arguments, or Variadic.
	Args int

	// Result is the type of a call. It is unknown for most commands.
	Result *types.Type

	// Fold computes the result of a call whose arguments are all constants.
	// It is nil for the commands which are only evaluated by the target.
	Fold func(args []types.Value) (types.Value, error)
}

// registeredFuncs is a global map of all possible builtins which can be used.
// You should never touch this map directly. Use methods like Register instead.
var registeredFuncs = make(map[string]*Func) // must initialize

// Register makes a builtin available for use. It is commonly called in the
// init() method at program startup. There is no matching Unregister function.
func Register(fn *Func) {
	if _, exists := registeredFuncs[fn.Name]; exists {
		panic(fmt.Sprintf("a func named %s is already registered", fn.Name))
	}
	if fn.Result == nil {
		fn.Result = types.TypeUnknown
	}
	registeredFuncs[fn.Name] = fn
}

// Lookup returns the builtin with the given name.
func Lookup(name string) (*Func, error) {
	fn, exists := registeredFuncs[name]
	if !exists {
		return nil, fmt.Errorf("not found")
	}
	return fn, nil
}

// Names returns the sorted names of every registered builtin.
func Names() []string {
	names := []string{}
	for name := range registeredFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckArgs returns an error if a call passes the wrong number of arguments.
func (obj *Func) CheckArgs(count int) error {
	if obj.Args == Variadic || obj.Args == count {
		return nil
	}
	return fmt.Errorf("builtin '%s' expects %d arguments, got %d", obj.Name, obj.Args, count)
}
