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

package interfaces

import (
	"fmt"
	"io"
	"strings"

	"github.com/purpleidea/figura/util/errwrap"

	"gopkg.in/yaml.v2"
)

const (
	// MetadataFilename is the default filename for the project metadata.
	MetadataFilename = "figura.yaml"

	// DefaultVersion is the document format version we emit.
	DefaultVersion = 11

	// DefaultProduct is the calculator product the document is built for.
	DefaultProduct = "geometry-calculator"
)

// Folders holds the titles of the folders the compiler creates.
type Folders struct {
	Geometry    string `yaml:"geometry"`
	Actions     string `yaml:"actions"`
	Definitions string `yaml:"definitions"`
	Display     string `yaml:"display"`
}

// Metadata is the optional project file that sits alongside the source files.
// It holds the document settings that aren't part of the language itself.
type Metadata struct {
	// Main is the path to the entry source file, relative to the directory
	// which holds the metadata file.
	Main string `yaml:"main"`

	// Version is the document format version number.
	Version int `yaml:"version"`

	// Product is the calculator product named in the graph settings.
	Product string `yaml:"product"`

	// Playing specifies if the ticker starts running when the document is
	// opened.
	Playing bool `yaml:"playing"`

	// Folders are the folder titles.
	Folders Folders `yaml:"folders"`

	// bug395 is a flag to workaround the yaml parser resetting all the
	// default struct field values when it finds an empty yaml document.
	// See: https://github.com/go-yaml/yaml/issues/395 for more information.
	bug395 bool
}

// DefaultMetadata returns the metadata that is used when no file is present.
func DefaultMetadata() *Metadata {
	return &Metadata{
		Main:    MainFilename,
		Version: DefaultVersion,
		Product: DefaultProduct,
		Playing: true,
		Folders: Folders{
			Geometry:    "geometry",
			Actions:     "Actions",
			Definitions: "Definitions",
			Display:     "Display",
		},

		bug395: true, // workaround, lol
	}
}

// UnmarshalYAML is the standard unmarshal method for this struct. Absent values
// keep their defaults.
func (obj *Metadata) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type indirect Metadata // indirection to avoid infinite recursion
	def := DefaultMetadata()
	raw := indirect(*def) // convert; the defaults go here

	if err := unmarshal(&raw); err != nil {
		return err
	}

	*obj = Metadata(raw) // restore from indirection with type conversion!
	return nil
}

// ParseMetadata reads a metadata file and returns it with all the defaults
// filled in. An empty document is valid.
func ParseMetadata(reader io.Reader) (*Metadata, error) {
	metadata := DefaultMetadata()

	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't read metadata")
	}
	if err := yaml.Unmarshal(b, metadata); err != nil {
		return nil, errwrap.Wrapf(err, "can't parse metadata")
	}

	if !metadata.bug395 { // workaround, lol
		// we must have gotten an empty document, so use a new default!
		metadata = DefaultMetadata()
	}

	if metadata.Main == "" {
		return nil, fmt.Errorf("the main field must not be empty")
	}
	if strings.HasPrefix(metadata.Main, "/") {
		return nil, fmt.Errorf("the main field must be a relative path")
	}
	if metadata.Version <= 0 {
		return nil, fmt.Errorf("the version field must be positive")
	}
	if strings.TrimSpace(metadata.Product) == "" {
		return nil, fmt.Errorf("the product field must not be empty")
	}

	return metadata, nil
}
