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

package funcs

import (
	"fmt"

	"github.com/purpleidea/figura/lang/types"
)

// commands are the builtins which are only evaluated by the target.
var commands = []string{
	// trigonometry
	"sin", "cos", "tan", "csc", "sec", "cot",
	"arcsin", "arccos", "arctan", "arccsc", "arcsec", "arccot",
	"sinh", "cosh", "tanh", "csch", "sech", "coth",

	// statistics
	"mean", "median", "min", "max", "quartile", "quantile", "stdev",
	"stdevp", "var", "mad", "cov", "covp", "corr", "spearman", "stats",
	"count", "total",

	// lists
	"join", "sort", "shuffle", "unique",

	// visualizations
	"histogram", "dotplot", "boxplot",

	// distributions and tests
	"normaldist", "tdist", "poissondist", "binomialdist", "uniformdist",
	"pdf", "cdf", "inversecdf", "random", "ttest", "tscore", "ittest",

	// calculus
	"exp", "ln", "log", "log_base", "derivative", "integral", "sum",
	"product",

	// geometry
	"midpoint", "intersection", "line", "ray", "vector", "parallel",
	"perpendicular", "circle", "arc", "angle", "directedangle", "glider",

	// measurements
	"distance", "length", "area", "perimeter", "vertices", "angles",
	"directedangles", "segments", "radius", "center", "coterminal",
	"supplement", "start", "end",

	// transformations
	"dilate", "rotate", "reflect", "translate",

	// sound
	"tone",

	// number theory
	"lcm", "gcd", "mod", "ceil", "floor", "round", "sign", "sqrt", "cbrt",
	"nthroot", "nPr", "nCr",
}

func init() {
	for _, name := range commands {
		Register(&Func{
			Name: name,
			Args: Variadic,
		})
	}

	Register(&Func{
		Name:   "rgb",
		Args:   3,
		Result: types.TypeColor,
		Fold:   colorFold(types.ColorRGB),
	})
	Register(&Func{
		Name:   "hsv",
		Args:   3,
		Result: types.TypeColor,
		Fold:   colorFold(types.ColorHSV),
	})
	Register(&Func{
		Name:   "polygon",
		Args:   Variadic,
		Result: types.TypePolygon,
		Fold: func(args []types.Value) (types.Value, error) {
			vertices := []types.PointValue{}
			for i, x := range args {
				p, err := point(x)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %v", i+1, err)
				}
				vertices = append(vertices, p)
			}
			return &types.PolygonValue{V: vertices}, nil
		},
	})
	Register(&Func{
		Name:   "segment",
		Args:   2,
		Result: types.TypeSegment,
		Fold: func(args []types.Value) (types.Value, error) {
			a, err := point(args[0])
			if err != nil {
				return nil, err
			}
			b, err := point(args[1])
			if err != nil {
				return nil, err
			}
			return &types.SegmentValue{A: a, B: b}, nil
		},
	})
}

// colorFold builds the fold function of a color constructor.
func colorFold(model types.ColorModel) func([]types.Value) (types.Value, error) {
	return func(args []types.Value) (types.Value, error) {
		channels := []float64{}
		for i, x := range args {
			f, ok := types.Number(x)
			if !ok {
				return nil, fmt.Errorf("channel %d is not a number: %s", i+1, x)
			}
			channels = append(channels, f)
		}
		return &types.ColorValue{
			Model: model,
			A:     channels[0],
			B:     channels[1],
			C:     channels[2],
		}, nil
	}
}

// point converts either kind of point constant to a real point.
func point(v types.Value) (types.PointValue, error) {
	switch x := v.(type) {
	case *types.PointValue:
		return *x, nil
	case *types.IPointValue:
		return types.PointValue{X: float64(x.X), Y: float64(x.Y)}, nil
	}
	return types.PointValue{}, fmt.Errorf("not a point: %s", v)
}
