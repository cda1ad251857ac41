// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package manifest loads the expected header columns of known table files.
//
// A manifest is a YAML document keyed by table file name:
//
//	tables:
//	  Weapons.txt:
//	    columns: [name, type, code]
//	  Armor.txt:
//	    columns: [name, version, code]
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table describes one table file.
type Table struct {
	Columns []string `yaml:"columns"`
}

// Manifest maps table file names to their expected shape.
type Manifest struct {
	Tables map[string]Table `yaml:"tables"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Tables) == 0 {
		return nil, errors.New("manifest has no tables")
	}
	for name, table := range m.Tables {
		if len(table.Columns) == 0 {
			return nil, fmt.Errorf("manifest table %q has no columns", name)
		}
	}
	return &m, nil
}

// Columns returns the expected columns for the file at path. The lookup uses
// the base name and ignores case, since table names are not consistently
// capitalised between game versions.
func (m *Manifest) Columns(path string) ([]string, bool) {
	name := filepath.Base(path)
	if t, ok := m.Tables[name]; ok {
		return t.Columns, true
	}
	for key, t := range m.Tables {
		if strings.EqualFold(key, name) {
			return t.Columns, true
		}
	}
	return nil, false
}
