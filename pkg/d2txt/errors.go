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
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every file, positioning, row and shape error below
// matches exactly one of these with errors.Is. InvalidByteError and
// UnsetByteError report misuse of ByteBag and match none of them.
var (
	// ErrAccess covers files that cannot be read, opened, or are rejected by
	// metadata validation.
	ErrAccess = errors.New("d2txt: file access error")
	// ErrPositioning covers invalid or unreachable row numbers.
	ErrPositioning = errors.New("d2txt: row positioning error")
	// ErrStructural covers malformed rows.
	ErrStructural = errors.New("d2txt: structural error")
	// ErrShape covers header and row shape validation failures.
	ErrShape = errors.New("d2txt: shape error")

	// ErrNoDataToRead is matched by NoDataToReadError. It signals that the
	// requested row starts at the end of the stream.
	ErrNoDataToRead = errors.New("d2txt: no data to read")
)

// InvalidByteError is returned when a value does not fit an unsigned byte.
type InvalidByteError struct {
	Value int
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("invalid byte value %d, expected 0..255", e.Value)
}

// UnsetByteError is returned when the current byte of a ByteBag is read
// before it was set.
type UnsetByteError struct{}

func (e *UnsetByteError) Error() string {
	return "current byte must be set before it is read"
}

// OpenError is returned when the file cannot be opened for decoding.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("file %q cannot be opened: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error        { return e.Err }
func (e *OpenError) Is(target error) bool { return target == ErrAccess }

// UnreadableFileError is returned when the path cannot be read.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file %q is not readable: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("file %q is not readable", e.Path)
}

func (e *UnreadableFileError) Unwrap() error        { return e.Err }
func (e *UnreadableFileError) Is(target error) bool { return target == ErrAccess }

// InvalidExtensionError is returned when the file extension is not the
// expected one.
type InvalidExtensionError struct {
	Path     string
	Expected string
}

func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("file %q has invalid extension, expected .%s", e.Path, e.Expected)
}

func (e *InvalidExtensionError) Is(target error) bool { return target == ErrAccess }

// FileTooLargeError is returned when the file exceeds the size limit.
type FileTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %q is too large, expected maximum of %s", e.Path, FormatBytes(e.Limit))
}

func (e *FileTooLargeError) Is(target error) bool { return target == ErrAccess }

// InvalidRowNumberError is returned for row numbers below 1.
type InvalidRowNumberError struct {
	Row int
}

func (e *InvalidRowNumberError) Error() string {
	return fmt.Sprintf("row number must be greater than 0, got %d", e.Row)
}

func (e *InvalidRowNumberError) Is(target error) bool { return target == ErrPositioning }

// InsufficientRowsError is returned when the stream ends before the
// requested row could be reached.
type InsufficientRowsError struct {
	Requested int
	Available int
}

func (e *InsufficientRowsError) Error() string {
	return fmt.Sprintf("not enough data to reach row %d: %d of %d requested rows available",
		e.Requested, e.Available, e.Requested)
}

func (e *InsufficientRowsError) Is(target error) bool { return target == ErrPositioning }

// NoDataToReadError is returned when there is not a single byte left for
// the requested row.
type NoDataToReadError struct {
	Row int
}

func (e *NoDataToReadError) Error() string {
	return fmt.Sprintf("no data to read at row %d", e.Row)
}

func (e *NoDataToReadError) Is(target error) bool {
	return target == ErrStructural || target == ErrNoDataToRead
}

// TrailingSeparatorError is returned when a separator is immediately
// followed by the end-of-line sequence.
type TrailingSeparatorError struct {
	Row int
}

func (e *TrailingSeparatorError) Error() string {
	return fmt.Sprintf("invalid file format: no value after separator at row %d", e.Row)
}

func (e *TrailingSeparatorError) Is(target error) bool { return target == ErrStructural }

// IncompleteEndOfLineError is returned when the stream ends right after the
// first end-of-line byte.
type IncompleteEndOfLineError struct {
	Row      int
	Expected byte
}

func (e *IncompleteEndOfLineError) Error() string {
	return fmt.Sprintf("row %d ended without second end-of-line byte, expected %s",
		e.Row, HexNotation(e.Expected))
}

func (e *IncompleteEndOfLineError) Is(target error) bool { return target == ErrStructural }

// InvalidEndOfLineError is returned when the first end-of-line byte is
// followed by anything but the second one.
type InvalidEndOfLineError struct {
	Row      int
	Actual   byte
	Expected byte
}

func (e *InvalidEndOfLineError) Error() string {
	return fmt.Sprintf("invalid end-of-line byte %s at row %d, expected %s",
		HexNotation(e.Actual), e.Row, HexNotation(e.Expected))
}

func (e *InvalidEndOfLineError) Is(target error) bool { return target == ErrStructural }

// DuplicateColumnNameError lists every later occurrence of a repeated
// header column.
type DuplicateColumnNameError struct {
	Names []string
}

func (e *DuplicateColumnNameError) Error() string {
	return "found duplicate column names in header: " + strings.Join(e.Names, ", ")
}

func (e *DuplicateColumnNameError) Is(target error) bool { return target == ErrShape }

// MissingColumnError lists expected columns absent from the header.
type MissingColumnError struct {
	Names []string
}

func (e *MissingColumnError) Error() string {
	return "found missing column names in header: " + strings.Join(e.Names, ", ")
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrShape }

// ColumnCountMismatchError is returned when a row does not have as many
// fields as the header has columns.
type ColumnCountMismatchError struct {
	Row  int
	Got  int
	Want int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("invalid column number in row %d: got %d, want %d", e.Row, e.Got, e.Want)
}

func (e *ColumnCountMismatchError) Is(target error) bool { return target == ErrShape }

// EmptyTableError is returned for a table that has a header row but no
// data rows.
type EmptyTableError struct {
	File string
}

func (e *EmptyTableError) Error() string {
	if e.File == "" {
		return "table has no data rows"
	}
	return fmt.Sprintf("table %q has no data rows", e.File)
}

func (e *EmptyTableError) Is(target error) bool { return target == ErrShape }

// errorKind maps err to its category for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrAccess):
		return "access"
	case errors.Is(err, ErrPositioning):
		return "positioning"
	case errors.Is(err, ErrStructural):
		return "structural"
	case errors.Is(err, ErrShape):
		return "shape"
	default:
		return "io"
	}
}
