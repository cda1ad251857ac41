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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const defaultBufferSize = 4096

// scanStep is the outcome of classifying one byte of a row.
type scanStep int

const (
	stepContinue scanStep = iota
	stepFieldBoundary
	stepRowEnd
)

// Decoder reads rows from a tab-separated, CR LF terminated stream.
type Decoder struct {
	src      io.ReadSeeker
	closer   io.Closer
	br       *bufio.Reader
	bag      *ByteBag
	fileName string

	// rowNumber is the row the next DecodeRow call reads. Always >= 1.
	rowNumber int
	field     []byte
	closed    bool
}

// NewDecoder creates a Decoder over rs positioned at row 1. If rs is also
// an io.Closer the decoder takes ownership of it and closes it in Close.
func NewDecoder(rs io.ReadSeeker) (*Decoder, error) {
	bag, err := NewByteBag(int(CarriageReturn), int(LineFeed), int(Tab))
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		src:       rs,
		br:        bufio.NewReaderSize(rs, defaultBufferSize),
		bag:       bag,
		rowNumber: 1,
		field:     make([]byte, 0, 64),
	}
	if c, ok := rs.(io.Closer); ok {
		d.closer = c
	}
	return d, nil
}

// Open validates the file metadata with v, when v is not nil, and opens the
// file for decoding. The file is closed again on every failure path.
func Open(path string, v *Validator) (*Decoder, error) {
	if v != nil {
		if err := v.ValidateFileMetadata(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	d, err := NewDecoder(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	d.fileName = filepath.Base(path)

	slog.Debug("Opened txt file for decoding", slog.String("path", path))
	return d, nil
}

// FileName returns the base name of the opened file. It is empty for
// decoders created with NewDecoder.
func (d *Decoder) FileName() string {
	return d.fileName
}

// RowNumber returns the row the next DecodeRow call will read.
func (d *Decoder) RowNumber() int {
	return d.rowNumber
}

// DecodeRowAt moves the cursor to row and decodes it. Rows are numbered
// from 1. Following DecodeRow calls continue with row+1.
func (d *Decoder) DecodeRowAt(row int) ([]string, error) {
	if row <= 0 {
		err := &InvalidRowNumberError{Row: row}
		recordDecodeError(err)
		return nil, err
	}
	if d.closed {
		return nil, os.ErrClosed
	}

	d.rowNumber = row
	if err := d.seekRow(row); err != nil {
		recordDecodeError(err)
		return nil, err
	}

	return d.DecodeRow()
}

// DecodeRow decodes the row under the cursor and advances the cursor.
// A NoDataToReadError is returned once the stream is exhausted.
func (d *Decoder) DecodeRow() ([]string, error) {
	if d.closed {
		return nil, os.ErrClosed
	}

	if _, err := d.br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			err = &NoDataToReadError{Row: d.rowNumber}
		} else {
			err = fmt.Errorf("failed to read row %d: %w", d.rowNumber, err)
		}
		recordDecodeError(err)
		return nil, err
	}

	fields, err := d.scanRow()
	if err != nil {
		recordDecodeError(err)
		return nil, err
	}

	d.rowNumber++
	rowsDecodedCounter.Add(context.Background(), 1)
	return fields, nil
}

// Close releases the underlying stream. It is safe to call more than once.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	var err error
	if d.closer != nil {
		err = d.closer.Close()
		d.closer = nil
	}
	d.br = nil
	d.src = nil
	return err
}

// seekRow rewinds the stream and skips row-1 lines.
func (d *Decoder) seekRow(row int) error {
	if _, err := d.src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind stream: %w", err)
	}
	d.br.Reset(d.src)

	for skipped := 0; skipped < row-1; skipped++ {
		ok, err := d.skipLine()
		if err != nil {
			return fmt.Errorf("failed to skip to row %d: %w", row, err)
		}
		if !ok {
			return &InsufficientRowsError{Requested: row, Available: skipped}
		}
	}
	return nil
}

// skipLine discards bytes up to and including the next CR LF pair, the
// same terminator scanRow ends a row on. A lone line feed is skipped as
// field data. It reports false when the stream was already exhausted. A
// final line without a terminator still counts as a line.
func (d *Decoder) skipLine() (bool, error) {
	eolFirst, eolSecond := d.bag.EOLFirst(), d.bag.EOLSecond()
	n := 0
	prevFirst := false
	for {
		chunk, err := d.br.ReadSlice(eolSecond)
		n += len(chunk)
		if err == nil {
			// chunk ends with eolSecond; the byte before it may sit in the
			// previous chunk.
			if (len(chunk) >= 2 && chunk[len(chunk)-2] == eolFirst) || (len(chunk) == 1 && prevFirst) {
				return true, nil
			}
			prevFirst = false
			continue
		}
		if len(chunk) > 0 {
			prevFirst = chunk[len(chunk)-1] == eolFirst
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return n > 0, nil
		default:
			return false, err
		}
	}
}

// scanRow reads the bytes of one row. The caller guarantees that at least
// one byte is available.
func (d *Decoder) scanRow() ([]string, error) {
	var (
		fields  []string
		prev    byte
		hasPrev bool
	)
	d.field = d.field[:0]
	d.bag.Reset()

	for {
		b, err := d.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Stream ended inside the row: the row is terminated implicitly.
				return append(fields, string(d.field)), nil
			}
			return nil, fmt.Errorf("failed to read row %d: %w", d.rowNumber, err)
		}

		if err := d.bag.SetCurrent(int(b)); err != nil {
			return nil, err
		}

		step, err := d.classify(prev, hasPrev)
		if err != nil {
			return nil, err
		}

		switch step {
		case stepFieldBoundary:
			fields = append(fields, string(d.field))
			d.field = d.field[:0]
		case stepRowEnd:
			return append(fields, string(d.field)), nil
		default:
			d.field = append(d.field, b)
		}
		prev, hasPrev = b, true
	}
}

// classify decides what the current byte of the bag means for the row.
// prev is the byte read just before it within the same row.
func (d *Decoder) classify(prev byte, hasPrev bool) (scanStep, error) {
	switch {
	case d.bag.IsSeparator():
		return stepFieldBoundary, nil
	case d.bag.IsEOLFirst():
		if hasPrev && prev == d.bag.Separator() {
			return stepContinue, &TrailingSeparatorError{Row: d.rowNumber}
		}

		next, err := d.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return stepContinue, &IncompleteEndOfLineError{
					Row:      d.rowNumber,
					Expected: d.bag.EOLSecond(),
				}
			}
			return stepContinue, fmt.Errorf("failed to read row %d: %w", d.rowNumber, err)
		}
		if next != d.bag.EOLSecond() {
			return stepContinue, &InvalidEndOfLineError{
				Row:      d.rowNumber,
				Actual:   next,
				Expected: d.bag.EOLSecond(),
			}
		}
		return stepRowEnd, nil
	default:
		return stepContinue, nil
	}
}
