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

//go:build !root

package document

import (
	"encoding/json"
	"testing"

	"github.com/purpleidea/figura/lang/interfaces"

	"github.com/kylelemons/godebug/pretty"
)

func TestEncode0(t *testing.T) {
	state := New(nil)
	folder := NewFolder("0", "geometry")
	folder.Collapsed = true
	folder.Secret = true
	expr := NewExpression("1", "0", `X_{a}=1`)
	expr.Hidden = true
	state.Append(folder, expr, NewText("2", "", "hello"))

	b, err := state.Encode()
	if err != nil {
		t.Errorf("encode failed: %+v", err)
		return
	}
	exp := `{"version":11,"graph":{"product":"geometry-calculator"},"expressions":{"list":[` +
		`{"type":"folder","id":"0","title":"geometry","collapsed":true,"secret":true},` +
		`{"type":"expression","id":"1","folderId":"0","latex":"X_{a}=1","hidden":true},` +
		`{"type":"text","id":"2","text":"hello"}]}}`
	if s := string(b); s != exp {
		t.Errorf("unexpected document")
		t.Logf("actual: %s", s)
		t.Logf("expect: %s", exp)
	}
}

func TestEncodeTicker(t *testing.T) {
	metadata := interfaces.DefaultMetadata()
	metadata.Product = "graphing"
	state := New(metadata)
	state.Expressions.Ticker = &Ticker{
		Open:         true,
		HandlerLatex: `X_{t}\to X_{t}+dt`,
	}

	b, err := state.Encode()
	if err != nil {
		t.Errorf("encode failed: %+v", err)
		return
	}
	exp := `{"version":11,"graph":{"product":"graphing"},"expressions":{"list":[],` +
		`"ticker":{"open":true,"playing":false,"handlerLatex":"X_{t}\\to X_{t}+dt"}}}`
	if s := string(b); s != exp {
		t.Errorf("unexpected document")
		t.Logf("actual: %s", s)
		t.Logf("expect: %s", exp)
	}
}

func TestEncodeStyle(t *testing.T) {
	expr := NewExpression("4", "3", `X_{p}`)
	expr.Color = "#ff0000"
	expr.PointStyle = "CROSS"
	expr.ClickableInfo = &ClickableInfo{Enabled: true, Latex: `X_{go}`}
	state := New(nil)
	state.Append(expr)

	b, err := state.Encode()
	if err != nil {
		t.Errorf("encode failed: %+v", err)
		return
	}
	out := struct {
		Expressions struct {
			List []map[string]interface{} `json:"list"`
		} `json:"expressions"`
	}{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Errorf("decode failed: %+v", err)
		return
	}
	exp := map[string]interface{}{
		"type":       "expression",
		"id":         "4",
		"folderId":   "3",
		"latex":      `X_{p}`,
		"color":      "#ff0000",
		"pointStyle": "CROSS",
	}
	exp["clickableInfo"] = map[string]interface{}{
		"enabled": true,
		"latex":   `X_{go}`,
	}
	if diff := pretty.Compare(exp, out.Expressions.List[0]); diff != "" {
		t.Errorf("style fields did not match expected")
		t.Logf("diff:\n%s", diff)
	}
}

func TestEscapes(t *testing.T) {
	state := New(nil)
	state.Append(NewExpression("0", "", `a\&b<c`))
	b, err := state.Encode()
	if err != nil {
		t.Errorf("encode failed: %+v", err)
		return
	}
	exp := `{"version":11,"graph":{"product":"geometry-calculator"},"expressions":{"list":[` +
		`{"type":"expression","id":"0","latex":"a\\&b<c"}]}}`
	if s := string(b); s != exp {
		t.Errorf("unexpected document")
		t.Logf("actual: %s", s)
		t.Logf("expect: %s", exp)
	}
}
