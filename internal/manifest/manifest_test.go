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

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
tables:
  Weapons.txt:
    columns: [name, type, code]
  armor.txt:
    columns:
      - name
      - version
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, m.Tables, 2)

	cols, ok := m.Columns("/game/data/Weapons.txt")
	require.True(t, ok)
	assert.Equal(t, []string{"name", "type", "code"}, cols)

	cols, ok = m.Columns("Armor.txt")
	require.True(t, ok)
	assert.Equal(t, []string{"name", "version"}, cols)

	_, ok = m.Columns("Misc.txt")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"invalid yaml", "tables: [", "failed to parse manifest"},
		{"no tables", "tables: {}", "no tables"},
		{"empty columns", "tables:\n  Weapons.txt:\n    columns: []\n", `"Weapons.txt" has no columns`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Contains(t, m.Tables, "Weapons.txt")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
