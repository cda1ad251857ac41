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

const hexDigits = "0123456789ABCDEF"

// HexNotation renders b as 0xHH with upper-case digits.
// It is only used to build error messages.
func HexNotation(b byte) string {
	return string([]byte{'0', 'x', hexDigits[b>>4], hexDigits[b&0x0F]})
}

// HexNotationFromInt renders v as 0xHH. Values outside 0..255 are rejected
// with an InvalidByteError.
func HexNotationFromInt(v int) (string, error) {
	b, err := toByte(v)
	if err != nil {
		return "", err
	}
	return HexNotation(b), nil
}

// toByte narrows v to an unsigned byte.
func toByte(v int) (byte, error) {
	if v < 0 || v > 0xFF {
		return 0, &InvalidByteError{Value: v}
	}
	return byte(v), nil
}
