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

// Significant bytes of the format.
const (
	CarriageReturn byte = 0x0D
	LineFeed       byte = 0x0A
	Tab            byte = 0x09
)

// ByteBag holds the three significant bytes of the format together with
// the byte currently under inspection.
//
// Values are unsigned: anything outside 0..255 is rejected.
type ByteBag struct {
	eolFirst  byte
	eolSecond byte
	separator byte

	current    byte
	hasCurrent bool
}

// NewByteBag creates a ByteBag for the given end-of-line pair and separator.
func NewByteBag(eolFirst, eolSecond, separator int) (*ByteBag, error) {
	first, err := toByte(eolFirst)
	if err != nil {
		return nil, err
	}
	second, err := toByte(eolSecond)
	if err != nil {
		return nil, err
	}
	sep, err := toByte(separator)
	if err != nil {
		return nil, err
	}
	return &ByteBag{
		eolFirst:  first,
		eolSecond: second,
		separator: sep,
	}, nil
}

// SetCurrent stores v as the byte under inspection.
func (b *ByteBag) SetCurrent(v int) error {
	c, err := toByte(v)
	if err != nil {
		return err
	}
	b.current = c
	b.hasCurrent = true
	return nil
}

// Current returns the byte under inspection, or UnsetByteError if
// SetCurrent has not been called since the last Reset.
func (b *ByteBag) Current() (byte, error) {
	if !b.hasCurrent {
		return 0, &UnsetByteError{}
	}
	return b.current, nil
}

// Reset forgets the current byte.
func (b *ByteBag) Reset() {
	b.current = 0
	b.hasCurrent = false
}

// IsSeparator reports whether the current byte is the field separator.
func (b *ByteBag) IsSeparator() bool {
	return b.hasCurrent && b.current == b.separator
}

// IsEOLFirst reports whether the current byte starts an end-of-line pair.
func (b *ByteBag) IsEOLFirst() bool {
	return b.hasCurrent && b.current == b.eolFirst
}

// IsEOLSecond reports whether the current byte ends an end-of-line pair.
func (b *ByteBag) IsEOLSecond() bool {
	return b.hasCurrent && b.current == b.eolSecond
}

// Separator returns the field separator byte.
func (b *ByteBag) Separator() byte { return b.separator }

// EOLFirst returns the first byte of the end-of-line pair.
func (b *ByteBag) EOLFirst() byte { return b.eolFirst }

// EOLSecond returns the second byte of the end-of-line pair.
func (b *ByteBag) EOLSecond() byte { return b.eolSecond }

// Hex renders v for diagnostics.
func (b *ByteBag) Hex(v byte) string {
	return HexNotation(v)
}
