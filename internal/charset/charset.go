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

// Package charset converts decoded fields, which are raw single-byte text,
// to UTF-8 for display.
package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Converter turns raw fields into display strings.
type Converter struct {
	name string
	enc  encoding.Encoding
}

// Names lists the accepted charset names.
var Names = []string{"raw", "latin1", "windows-1252"}

// Lookup returns the converter for name. "raw" leaves bytes untouched.
func Lookup(name string) (*Converter, error) {
	switch strings.ToLower(name) {
	case "", "raw":
		return &Converter{name: "raw"}, nil
	case "latin1", "iso-8859-1":
		return &Converter{name: "latin1", enc: charmap.ISO8859_1}, nil
	case "windows-1252", "cp1252":
		return &Converter{name: "windows-1252", enc: charmap.Windows1252}, nil
	default:
		return nil, fmt.Errorf("unknown charset %q, expected one of %s", name, strings.Join(Names, ", "))
	}
}

func (c *Converter) Name() string {
	return c.name
}

// Fields converts every field of row. The input slice is not modified.
func (c *Converter) Fields(row []string) ([]string, error) {
	if c.enc == nil {
		return row, nil
	}
	dec := c.enc.NewDecoder()
	out := make([]string, len(row))
	for i, field := range row {
		s, err := dec.String(field)
		if err != nil {
			return nil, fmt.Errorf("failed to convert field %d from %s: %w", i+1, c.name, err)
		}
		out[i] = s
	}
	return out, nil
}
