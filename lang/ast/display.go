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

package ast

// PointStyle is the marker drawn for a point.
type PointStyle string

// These are the valid point styles.
const (
	PointStylePoint PointStyle = "point"
	PointStyleOpen  PointStyle = "open"
	PointStyleCross PointStyle = "cross"
)

// StrokeStyle is the pattern of a drawn line.
type StrokeStyle string

// These are the valid stroke styles.
const (
	StrokeStyleSolid  StrokeStyle = "solid"
	StrokeStyleDashed StrokeStyle = "dashed"
	StrokeStyleDotted StrokeStyle = "dotted"
)

// LabelOrientation is where a label sits relative to what it labels.
type LabelOrientation string

// These are the valid label orientations.
const (
	LabelCenter     LabelOrientation = "center"
	LabelLeft       LabelOrientation = "left"
	LabelRight      LabelOrientation = "right"
	LabelAbove      LabelOrientation = "above"
	LabelBelow      LabelOrientation = "below"
	LabelAboveLeft  LabelOrientation = "above_left"
	LabelAboveRight LabelOrientation = "above_right"
	LabelBelowLeft  LabelOrientation = "below_left"
	LabelBelowRight LabelOrientation = "below_right"
)

// DragMode says along which axes a point can be dragged.
type DragMode string

// These are the valid drag modes.
const (
	DragXY DragMode = "xy"
	DragX  DragMode = "x"
	DragY  DragMode = "y"
)

// PointAttr is the `point(size, opacity, style)` attribute.
type PointAttr struct {
	Size    *Expr
	Opacity *Expr
	Style   PointStyle
}

// StrokeAttr is the `stroke(width, opacity, style)` attribute.
type StrokeAttr struct {
	Width   *Expr
	Opacity *Expr
	Style   StrokeStyle
}

// FillAttr is the `fill(opacity)` attribute.
type FillAttr struct {
	Opacity *Expr
}

// LabelAttr is the `label(text, opacity, scale, angle, orientation)`
// attribute. The angle is in degrees.
type LabelAttr struct {
	Text        string
	Opacity     *Expr
	Scale       *Expr
	Angle       *Expr
	Orientation LabelOrientation
}

// DragAttr is the `drag(mode)` attribute.
type DragAttr struct {
	Mode DragMode
}

// ClickAttr is the `click { ... }` attribute.
type ClickAttr struct {
	Action Action
}

// DescriptionAttr is the `description(text)` attribute.
type DescriptionAttr struct {
	Text string
}

// Element is one drawn object of the display block. Each attribute is optional
// and may be given at most once.
type Element struct {
	What  *Expr
	Color *Expr

	Point       *PointAttr
	Stroke      *StrokeAttr
	Fill        *FillAttr
	Label       *LabelAttr
	Drag        *DragAttr
	Click       *ClickAttr
	Description *DescriptionAttr
}

// Exprs returns every expression of the element, in source order, except for
// those inside the click action.
func (obj *Element) Exprs() []*Expr {
	exprs := []*Expr{obj.What, obj.Color}
	if obj.Point != nil {
		exprs = append(exprs, obj.Point.Size, obj.Point.Opacity)
	}
	if obj.Stroke != nil {
		exprs = append(exprs, obj.Stroke.Width, obj.Stroke.Opacity)
	}
	if obj.Fill != nil {
		exprs = append(exprs, obj.Fill.Opacity)
	}
	if obj.Label != nil {
		exprs = append(exprs, obj.Label.Opacity, obj.Label.Scale, obj.Label.Angle)
	}
	return exprs
}

// Apply runs fn on every expression node of the element, including the click
// action.
func (obj *Element) Apply(fn func(*Expr) error) error {
	for _, x := range obj.Exprs() {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	if obj.Click == nil {
		return nil
	}
	return obj.Click.Action.Apply(fn)
}
