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

package d2txt

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBag(t *testing.T) {
	bag, err := NewByteBag(0x0D, 0x0A, 0x09)
	require.NoError(t, err)
	assert.Equal(t, CarriageReturn, bag.EOLFirst())
	assert.Equal(t, LineFeed, bag.EOLSecond())
	assert.Equal(t, Tab, bag.Separator())

	for _, args := range [][3]int{{-1, 0x0A, 0x09}, {0x0D, 256, 0x09}, {0x0D, 0x0A, 1000}} {
		_, err := NewByteBag(args[0], args[1], args[2])
		var byteErr *InvalidByteError
		require.ErrorAs(t, err, &byteErr)
	}
}

func TestByteBagCurrent(t *testing.T) {
	bag, err := NewByteBag(0x0D, 0x0A, 0x09)
	require.NoError(t, err)

	_, err = bag.Current()
	var unsetErr *UnsetByteError
	require.ErrorAs(t, err, &unsetErr)
	assert.False(t, bag.IsSeparator())
	assert.False(t, bag.IsEOLFirst())
	assert.False(t, bag.IsEOLSecond())

	require.NoError(t, bag.SetCurrent(0x09))
	b, err := bag.Current()
	require.NoError(t, err)
	assert.Equal(t, byte(0x09), b)
	assert.True(t, bag.IsSeparator())
	assert.False(t, bag.IsEOLFirst())

	require.NoError(t, bag.SetCurrent(0x0D))
	assert.True(t, bag.IsEOLFirst())
	assert.False(t, bag.IsSeparator())

	require.NoError(t, bag.SetCurrent(0x0A))
	assert.True(t, bag.IsEOLSecond())

	require.NoError(t, bag.SetCurrent(0xFF))
	assert.False(t, bag.IsSeparator() || bag.IsEOLFirst() || bag.IsEOLSecond())

	err = bag.SetCurrent(256)
	var byteErr *InvalidByteError
	require.ErrorAs(t, err, &byteErr)
	assert.Equal(t, 256, byteErr.Value)

	b, err = bag.Current()
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), b, "failed SetCurrent keeps the previous byte")

	bag.Reset()
	_, err = bag.Current()
	require.Error(t, err)
}

func TestHexNotation(t *testing.T) {
	tests := []struct {
		input    byte
		expected string
	}{
		{0x00, "0x00"},
		{0x09, "0x09"},
		{0x0A, "0x0A"},
		{0x0D, "0x0D"},
		{0x6E, "0x6E"},
		{0xAB, "0xAB"},
		{0xFF, "0xFF"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, HexNotation(tt.input))
	}

	bag, err := NewByteBag(0x0D, 0x0A, 0x09)
	require.NoError(t, err)
	assert.Equal(t, "0x0A", bag.Hex(bag.EOLSecond()))
}

func TestHexNotationFromInt(t *testing.T) {
	s, err := HexNotationFromInt(10)
	require.NoError(t, err)
	assert.Equal(t, "0x0A", s)

	s, err = HexNotationFromInt(255)
	require.NoError(t, err)
	assert.Equal(t, "0xFF", s)

	for _, v := range []int{-128, -1, 256} {
		_, err := HexNotationFromInt(v)
		var byteErr *InvalidByteError
		require.ErrorAs(t, err, &byteErr, "value %d", v)
	}
}

func TestByteBagErrorsMatchNoCategory(t *testing.T) {
	bag, err := NewByteBag(0x0D, 0x0A, 0x09)
	require.NoError(t, err)

	_, unsetErr := bag.Current()
	byteErr := bag.SetCurrent(-1)

	d := newTestDecoder(t, "a\r\n")
	require.NoError(t, d.Close())
	_, closedErr := d.DecodeRow()
	require.ErrorIs(t, closedErr, os.ErrClosed)

	for _, err := range []error{unsetErr, byteErr, closedErr} {
		require.Error(t, err)
		for _, category := range []error{ErrAccess, ErrPositioning, ErrStructural, ErrShape} {
			assert.NotErrorIs(t, err, category, "%v", err)
		}
	}
}
