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

package interfaces

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/purpleidea/figura/util"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/pretty"
)

func TestMetadataParse0(t *testing.T) {
	type test struct { // an individual test
		name string
		yaml string
		fail bool
		meta *Metadata
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{
			name: "empty",
			yaml: ``,
			fail: false,
			meta: DefaultMetadata(),
		})
	}
	{
		testCases = append(testCases, test{
			name: "empty file defaults",
			yaml: util.Code(`
			# empty file
			`),
			fail: false,
			meta: DefaultMetadata(),
		})
	}
	{
		testCases = append(testCases, test{
			name: "empty document defaults",
			yaml: util.Code(`
			--- # new document
			`),
			fail: false,
			meta: DefaultMetadata(),
		})
	}
	{
		meta := DefaultMetadata()
		meta.Playing = false
		meta.Folders.Actions = "Buttons"
		testCases = append(testCases, test{
			name: "partial values",
			yaml: util.Code(`
			playing: false
			folders:
			  actions: "Buttons"
			`),
			fail: false,
			meta: meta,
		})
	}
	{
		meta := DefaultMetadata()
		meta.Version = 10
		meta.Product = "graphing"
		testCases = append(testCases, test{
			name: "set values",
			yaml: util.Code(`
			version: 10
			product: "graphing"
			`),
			fail: false,
			meta: meta,
		})
	}
	{
		testCases = append(testCases, test{
			name: "bad version",
			yaml: util.Code(`
			version: -1
			`),
			fail: true,
		})
	}
	{
		testCases = append(testCases, test{
			name: "empty product",
			yaml: util.Code(`
			product: ""
			`),
			fail: true,
		})
	}
	{
		meta := DefaultMetadata()
		meta.Main = "src/clock.fig"
		testCases = append(testCases, test{
			name: "main file",
			yaml: util.Code(`
			main: "src/clock.fig"
			`),
			fail: false,
			meta: meta,
		})
	}
	{
		testCases = append(testCases, test{
			name: "absolute main",
			yaml: util.Code(`
			main: "/etc/clock.fig"
			`),
			fail: true,
		})
	}
	{
		testCases = append(testCases, test{
			name: "invalid yaml",
			yaml: "version: [",
			fail: true,
		})
	}

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			yaml, fail, meta := tc.yaml, tc.fail, tc.meta

			metadata, err := ParseMetadata(strings.NewReader(yaml))

			if !fail && err != nil {
				t.Errorf("test #%d: metadata parse failed with: %+v", index, err)
				return
			}
			if fail && err == nil {
				t.Errorf("test #%d: metadata parse passed, expected fail", index)
				return
			}
			if fail {
				return
			}
			if metadata == nil {
				t.Errorf("test #%d: metadata parse output was nil", index)
				return
			}
			if reflect.DeepEqual(meta, metadata) {
				return
			}
			diff := pretty.Compare(meta, metadata)
			if diff == "" { // bonus
				return
			}
			t.Errorf("test #%d: metadata did not match expected", index)
			t.Logf("test #%d:   actual: \n\n%s\n", index, spew.Sdump(metadata))
			t.Logf("test #%d: expected: \n\n%s", index, spew.Sdump(meta))
			t.Logf("test #%d: diff:\n%s", index, diff)
		})
	}
}
