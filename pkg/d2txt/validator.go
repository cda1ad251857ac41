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
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultMaxFileSize is the largest file accepted by default (1 MiB).
	DefaultMaxFileSize int64 = 1 << 20
	// DefaultExtension is the expected file extension, without the dot.
	DefaultExtension = "txt"
)

// Validator checks file metadata before a file is opened for decoding.
type Validator struct {
	MaxFileSize int64
	Extension   string
}

type ValidatorOption func(*Validator)

// WithMaxFileSize sets the size limit in bytes. Values <= 0 keep the default.
func WithMaxFileSize(n int64) ValidatorOption {
	return func(v *Validator) {
		if n > 0 {
			v.MaxFileSize = n
		}
	}
}

// WithExtension sets the expected extension. A leading dot is ignored and
// an empty value keeps the default.
func WithExtension(ext string) ValidatorOption {
	return func(v *Validator) {
		ext = strings.TrimPrefix(ext, ".")
		if ext != "" {
			v.Extension = ext
		}
	}
}

// NewValidator returns a Validator with a 1 MiB limit expecting .txt files.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		MaxFileSize: DefaultMaxFileSize,
		Extension:   DefaultExtension,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateFileMetadata checks that path is a readable regular file with the
// expected extension and no larger than the size limit.
func (v *Validator) ValidateFileMetadata(path string) error {
	maxSize := v.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	ext := v.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	info, err := os.Stat(path)
	if err != nil {
		recordValidationFailure("readable")
		return &UnreadableFileError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		recordValidationFailure("readable")
		return &UnreadableFileError{Path: path}
	}
	f, err := os.Open(path)
	if err != nil {
		recordValidationFailure("readable")
		return &UnreadableFileError{Path: path, Err: err}
	}
	_ = f.Close()

	if filepath.Ext(path) != "."+ext {
		recordValidationFailure("extension")
		return &InvalidExtensionError{Path: path, Expected: ext}
	}

	if info.Size() > maxSize {
		recordValidationFailure("size")
		return &FileTooLargeError{Path: path, Size: info.Size(), Limit: maxSize}
	}

	return nil
}

// ValidateHeader checks columnNames for duplicates and for every name in
// expectedColumnNames. Both checks always run; when both fail the returned
// error carries a DuplicateColumnNameError and a MissingColumnError.
func ValidateHeader(columnNames, expectedColumnNames []string) error {
	var errs *multierror.Error

	if dups := DuplicateValues(columnNames); len(dups) > 0 {
		recordValidationFailure("duplicate_columns")
		errs = multierror.Append(errs, &DuplicateColumnNameError{Names: dups})
	}

	present := mapset.NewThreadUnsafeSet(columnNames...)
	var missing []string
	for _, name := range expectedColumnNames {
		if !present.Contains(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		recordValidationFailure("missing_columns")
		errs = multierror.Append(errs, &MissingColumnError{Names: missing})
	}

	return errs.ErrorOrNil()
}

// ValidateRow checks that row has one field per header column.
func ValidateRow(row, headerColumnNames []string, rowNumber int) error {
	if len(row) != len(headerColumnNames) {
		recordValidationFailure("column_count")
		return &ColumnCountMismatchError{
			Row:  rowNumber,
			Got:  len(row),
			Want: len(headerColumnNames),
		}
	}
	return nil
}

// ValidateNotEmpty checks that a table has at least one data row below its
// header. fileName is only used in the error message.
func ValidateNotEmpty(dataRows int, fileName string) error {
	if dataRows > 0 {
		return nil
	}
	recordValidationFailure("empty_table")
	return &EmptyTableError{File: fileName}
}

// DuplicateValues returns every occurrence of a value after its first one,
// in input order. [a b a c a] yields [a a].
func DuplicateValues(values []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	var dups []string
	for _, v := range values {
		if !seen.Add(v) {
			dups = append(dups, v)
		}
	}
	return dups
}

var byteUnits = []string{"Byte", "KiB", "MiB", "GiB", "TiB"}

// FormatBytes renders n in binary units rounded to two decimals, dropping
// trailing zeros: 1048576 is "1 MiB", 1536 is "1.5 KiB".
func FormatBytes(n int64) string {
	size := float64(n)
	i := 0
	for size >= 1024 && i < len(byteUnits)-1 {
		size /= 1024
		i++
	}
	rounded := math.Round(size*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[i]
}
