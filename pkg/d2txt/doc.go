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

// Package d2txt decodes the tab-separated, CR LF terminated text tables
// exported by legacy game data tools.
//
// # Format
//
// A file is a sequence of rows. Every row ends with exactly the two bytes
// 0x0D 0x0A and fields within a row are separated by 0x09. No other line
// terminator is accepted. Field bytes are handed back as Go strings without
// any character set interpretation.
//
// A separator immediately before the end-of-line sequence is a corrupted
// record and is reported as a TrailingSeparatorError. A last row without a
// terminator is accepted.
//
// # Decoding
//
// The Decoder reads one row per call and keeps a row cursor:
//
//	v := d2txt.NewValidator()
//	dec, err := d2txt.Open("Weapons.txt", v)
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
//
//	header, err := dec.DecodeRowAt(1)
//	if err != nil {
//	    return err
//	}
//	if err := d2txt.ValidateHeader(header, expected); err != nil {
//	    return err
//	}
//
//	for {
//	    row, err := dec.DecodeRow()
//	    if errors.Is(err, d2txt.ErrNoDataToRead) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // row is []string
//	}
//
// # Errors
//
// File, positioning, row and shape failures match one of the category
// sentinels ErrAccess, ErrPositioning, ErrStructural or ErrShape with
// errors.Is. The concrete types carry the row number and, for end-of-line
// failures, the expected and actual bytes. Read failures of the underlying
// stream are wrapped and match none of the categories; use errors.Is with
// the original cause. A closed Decoder returns os.ErrClosed. ByteBag
// misuse is reported as InvalidByteError or UnsetByteError.
//
// A Decoder is not safe for concurrent use.
package d2txt
