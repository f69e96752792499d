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

package geometry

import (
	"fmt"
	"math"

	"github.com/purpleidea/figura/lang/ast"
	"github.com/purpleidea/figura/lang/document"
	"github.com/purpleidea/figura/lang/latex"
	"github.com/purpleidea/figura/lang/types"

	"github.com/iancoleman/strcase"
)

// element builds the visible entry of a display element with its style.
func (obj *compiler) element(folderID string, element *ast.Element) (*document.Expression, error) {
	what, err := obj.render(element.What)
	if err != nil {
		return nil, err
	}
	entry := document.NewExpression(obj.id(), folderID, what)

	if c := element.Color; c != nil {
		if v, ok := c.Value.(*types.ColorValue); ok && c.IsLiteral() {
			entry.Color = hex(v)
		} else if entry.ColorLatex, err = obj.render(c); err != nil {
			return nil, err
		}
	}

	if p := element.Point; p != nil {
		entry.PointStyle = keyword(string(p.Style))
		if entry.PointSize, err = obj.render(p.Size); err != nil {
			return nil, err
		}
		if entry.PointOpacity, err = obj.render(p.Opacity); err != nil {
			return nil, err
		}
	}

	if s := element.Stroke; s != nil {
		entry.LineStyle = keyword(string(s.Style))
		if entry.LineWidth, err = obj.render(s.Width); err != nil {
			return nil, err
		}
		if entry.LineOpacity, err = obj.render(s.Opacity); err != nil {
			return nil, err
		}
	}

	if f := element.Fill; f != nil {
		entry.Fill = true
		if entry.FillOpacity, err = obj.render(f.Opacity); err != nil {
			return nil, err
		}
	}

	if l := element.Label; l != nil {
		entry.Label = l.Text
		entry.ShowLabel = true
		entry.LabelOrientation = string(l.Orientation)
		if entry.LabelSize, err = obj.render(l.Scale); err != nil {
			return nil, err
		}
		// the geometry calculator measures angles in degrees by default
		if entry.LabelAngle, err = obj.render(l.Angle); err != nil {
			return nil, err
		}
	}

	if d := element.Drag; d != nil {
		entry.DragMode = keyword(string(d.Mode))
	}

	if c := element.Click; c != nil {
		node, err := obj.translateAction(c.Action)
		if err != nil {
			return nil, err
		}
		entry.ClickableInfo = &document.ClickableInfo{
			Enabled: true,
			Latex:   latex.Render(node),
		}
	}

	if d := element.Description; d != nil {
		entry.Description = d.Text
	}
	return entry, nil
}

// render returns the markup of an optional expression.
func (obj *compiler) render(expr *ast.Expr) (string, error) {
	if expr == nil {
		return "", nil
	}
	node, err := obj.translateExpr(expr)
	if err != nil {
		return "", err
	}
	return latex.Render(node), nil
}

// keyword converts a style keyword of the language to the spelling of the
// document, such as `dashed` to `DASHED`.
func keyword(s string) string {
	return strcase.ToScreamingSnake(s)
}

// hex returns the `#rrggbb` form of a constant color. The rgb channels go from
// 0 to 255, the hue is in degrees and the saturation and value go from 0 to 1.
func hex(c *types.ColorValue) string {
	r, g, b := c.A, c.B, c.C
	if c.Model == types.ColorHSV {
		r, g, b = hsvToRGB(c.A, c.B, c.C)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(255, v))))
}

// hsvToRGB converts a color to rgb channels from 0 to 255.
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 60
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))
	var r, g, b float64
	switch {
	case h < 1:
		r, g, b = c, x, 0
	case h < 2:
		r, g, b = x, c, 0
	case h < 3:
		r, g, b = 0, c, x
	case h < 4:
		r, g, b = 0, x, c
	case h < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return (r + m) * 255, (g + m) * 255, (b + m) * 255
}
