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
package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/d2txt/pkg/d2txt"
)

func TestValidateFileClean(t *testing.T) {
	path := writeTable(t, "Armor.txt", armorTable)

	var out bytes.Buffer
	err := validateFile(context.Background(), &out, path, d2txt.NewValidator(), validateOptions{Columns: []string{"code", "name"}})
	require.NoError(t, err)
	assert.Equal(t, "Armor.txt: 3 columns, 3 data rows, 0 problems\n", out.String())
}

func TestValidateFileCollectsProblems(t *testing.T) {
	content := "name\tcode\tname\r\n" +
		"Cap\tcap\tCap\r\n" +
		"Skull Cap\tskp\r\n" +
		"Helm\thlm\tHelm\textra\r\n"
	path := writeTable(t, "Helms.txt", content)

	var out bytes.Buffer
	err := validateFile(context.Background(), &out, path, nil, validateOptions{Columns: []string{"name", "level"}})
	require.Error(t, err)
	assert.Equal(t, "Helms.txt: 3 columns, 3 data rows, 4 problems\n", out.String())

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 4)

	var dupErr *d2txt.DuplicateColumnNameError
	require.ErrorAs(t, merr.Errors[0], &dupErr)
	assert.Equal(t, []string{"name"}, dupErr.Names)

	var missErr *d2txt.MissingColumnError
	require.ErrorAs(t, merr.Errors[1], &missErr)
	assert.Equal(t, []string{"level"}, missErr.Names)

	var countErr *d2txt.ColumnCountMismatchError
	require.ErrorAs(t, merr.Errors[2], &countErr)
	assert.Equal(t, 3, countErr.Row)
	assert.Equal(t, 2, countErr.Got)
	require.ErrorAs(t, merr.Errors[3], &countErr)
	assert.Equal(t, 4, countErr.Row)
	assert.Equal(t, 4, countErr.Got)
}

func TestValidateFileFailFast(t *testing.T) {
	content := "name\tcode\r\n" +
		"Cap\r\n" +
		"Helm\r\n"
	path := writeTable(t, "Helms.txt", content)

	var out bytes.Buffer
	err := validateFile(context.Background(), &out, path, nil, validateOptions{FailFast: true})
	var countErr *d2txt.ColumnCountMismatchError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, 2, countErr.Row)
	assert.Equal(t, "Helms.txt: 2 columns, 1 data rows, 1 problems\n", out.String())
}

func TestValidateFileHeaderOnly(t *testing.T) {
	for _, content := range []string{"name\tcode\r\n", "name\tcode"} {
		path := writeTable(t, "Helms.txt", content)

		var out bytes.Buffer
		err := validateFile(context.Background(), &out, path, nil, validateOptions{})

		var emptyErr *d2txt.EmptyTableError
		require.ErrorAs(t, err, &emptyErr, "content %q", content)
		assert.Equal(t, "Helms.txt", emptyErr.File)
		assert.ErrorIs(t, err, d2txt.ErrShape)
		assert.Equal(t, "Helms.txt: 2 columns, 0 data rows, 1 problems\n", out.String())
	}
}

func TestValidateFileHeaderOnlyWithHeaderProblems(t *testing.T) {
	path := writeTable(t, "Helms.txt", "name\tname\r\n")

	err := validateFile(context.Background(), &bytes.Buffer{}, path, nil, validateOptions{})
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)

	var dupErr *d2txt.DuplicateColumnNameError
	require.ErrorAs(t, merr.Errors[0], &dupErr)
	var emptyErr *d2txt.EmptyTableError
	require.ErrorAs(t, merr.Errors[1], &emptyErr)
}

func TestValidateFileStructuralErrorStops(t *testing.T) {
	content := "name\tcode\r\n" +
		"Cap\tcap\r\n" +
		"Helm\t\r\n" +
		"Mask\tmsk\r\n"
	path := writeTable(t, "Helms.txt", content)

	err := validateFile(context.Background(), &bytes.Buffer{}, path, nil, validateOptions{})
	var sepErr *d2txt.TrailingSeparatorError
	require.ErrorAs(t, err, &sepErr)
	assert.Equal(t, 3, sepErr.Row)
}

func TestValidateFileManifest(t *testing.T) {
	manifestPath := writeTable(t, "tables.yaml", `tables:
  armor.txt:
    columns: [name, code, ac, durability]
`)
	path := writeTable(t, "Armor.txt", armorTable)

	err := validateFile(context.Background(), &bytes.Buffer{}, path, nil, validateOptions{Manifest: manifestPath})
	var missErr *d2txt.MissingColumnError
	require.ErrorAs(t, err, &missErr)
	assert.Equal(t, []string{"durability"}, missErr.Names)

	other := writeTable(t, "Weapons.txt", "name\r\nAxe\r\n")
	require.NoError(t, validateFile(context.Background(), &bytes.Buffer{}, other, nil, validateOptions{Manifest: manifestPath}))
}

func TestValidateFileHeaderErrors(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		path := writeTable(t, "Armor.txt", "")
		err := validateFile(context.Background(), &bytes.Buffer{}, path, nil, validateOptions{})
		require.ErrorIs(t, err, d2txt.ErrNoDataToRead)
	})

	t.Run("missing file", func(t *testing.T) {
		err := validateFile(context.Background(), &bytes.Buffer{}, "/nonexistent/Armor.txt", d2txt.NewValidator(), validateOptions{})
		require.ErrorIs(t, err, d2txt.ErrAccess)
	})

	t.Run("missing manifest", func(t *testing.T) {
		path := writeTable(t, "Armor.txt", armorTable)
		err := validateFile(context.Background(), &bytes.Buffer{}, path, nil, validateOptions{Manifest: "/nonexistent/tables.yaml"})
		require.Error(t, err)
	})
}
