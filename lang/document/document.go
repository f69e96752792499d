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

// Package document contains the calculator state that the compiler emits, and
// its JSON encoding.
package document

import (
	"bytes"
	"encoding/json"

	"github.com/purpleidea/figura/lang/interfaces"
)

// These are the type names of the entries of the expression list.
const (
	TypeFolder     = "folder"
	TypeExpression = "expression"
	TypeText       = "text"
)

// State is the whole document.
type State struct {
	Version     int         `json:"version"`
	Graph       Graph       `json:"graph"`
	Expressions Expressions `json:"expressions"`
}

// Graph holds the graph settings.
type Graph struct {
	Product string `json:"product"`
}

// Expressions is the expression list, with the optional ticker.
type Expressions struct {
	List   []Entry `json:"list"`
	Ticker *Ticker `json:"ticker,omitempty"`
}

// Entry is one item of the expression list.
type Entry interface {
	// EntryID returns the unique id of the entry.
	EntryID() string
}

// Folder groups the entries which name it in their folder id.
type Folder struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Collapsed bool   `json:"collapsed"`
	Secret    bool   `json:"secret,omitempty"`
}

// ClickableInfo makes an expression run an action when clicked.
type ClickableInfo struct {
	Enabled bool   `json:"enabled"`
	Latex   string `json:"latex"`
}

// Expression is a line of markup. The style fields are only used by the
// drawn elements of the display block.
type Expression struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	FolderID string `json:"folderId,omitempty"`
	Latex    string `json:"latex"`
	Hidden   bool   `json:"hidden,omitempty"`

	Color      string `json:"color,omitempty"`
	ColorLatex string `json:"colorLatex,omitempty"`

	PointStyle   string `json:"pointStyle,omitempty"`
	PointSize    string `json:"pointSize,omitempty"`
	PointOpacity string `json:"pointOpacity,omitempty"`

	LineStyle   string `json:"lineStyle,omitempty"`
	LineWidth   string `json:"lineWidth,omitempty"`
	LineOpacity string `json:"lineOpacity,omitempty"`

	Fill        bool   `json:"fill,omitempty"`
	FillOpacity string `json:"fillOpacity,omitempty"`

	Label            string `json:"label,omitempty"`
	ShowLabel        bool   `json:"showLabel,omitempty"`
	LabelSize        string `json:"labelSize,omitempty"`
	LabelAngle       string `json:"labelAngle,omitempty"`
	LabelOrientation string `json:"labelOrientation,omitempty"`

	DragMode      string         `json:"dragMode,omitempty"`
	ClickableInfo *ClickableInfo `json:"clickableInfo,omitempty"`
	Description   string         `json:"description,omitempty"`
}

// Text is a note in the expression list.
type Text struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Text     string `json:"text"`
	FolderID string `json:"folderId,omitempty"`
}

// Ticker runs an action repeatedly. The list is always shown open.
type Ticker struct {
	Open         bool   `json:"open"`
	Playing      bool   `json:"playing"`
	HandlerLatex string `json:"handlerLatex,omitempty"`
	MinStepLatex string `json:"minStepLatex,omitempty"`
}

// EntryID returns the unique id of the entry.
func (obj *Folder) EntryID() string { return obj.ID }

// EntryID returns the unique id of the entry.
func (obj *Expression) EntryID() string { return obj.ID }

// EntryID returns the unique id of the entry.
func (obj *Text) EntryID() string { return obj.ID }

// NewFolder returns a folder entry.
func NewFolder(id, title string) *Folder {
	return &Folder{
		Type:  TypeFolder,
		ID:    id,
		Title: title,
	}
}

// NewExpression returns an expression entry.
func NewExpression(id, folderID, latex string) *Expression {
	return &Expression{
		Type:     TypeExpression,
		ID:       id,
		FolderID: folderID,
		Latex:    latex,
	}
}

// NewText returns a text entry.
func NewText(id, folderID, text string) *Text {
	return &Text{
		Type:     TypeText,
		ID:       id,
		Text:     text,
		FolderID: folderID,
	}
}

// New returns an empty document with the settings from the metadata.
func New(metadata *interfaces.Metadata) *State {
	if metadata == nil {
		metadata = interfaces.DefaultMetadata()
	}
	return &State{
		Version: metadata.Version,
		Graph: Graph{
			Product: metadata.Product,
		},
		Expressions: Expressions{
			List: []Entry{},
		},
	}
}

// Append adds entries to the end of the expression list.
func (obj *State) Append(entries ...Entry) {
	obj.Expressions.List = append(obj.Expressions.List, entries...)
}

// Encode returns the compact JSON text of the document. The markup is full of
// characters that are special in HTML, and they are written as they are.
func (obj *State) Encode() ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
