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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/d2txt/internal/charset"
	"github.com/cardinalhq/d2txt/internal/logctx"
	"github.com/cardinalhq/d2txt/pkg/d2txt"
)

var decodeCmd = &cobra.Command{
	Use:   "decode FILE",
	Short: "Print rows of a txt table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, doneFx, err := setupTelemetry(appConfig)
		if err != nil {
			return err
		}
		defer func() {
			if err := doneFx(); err != nil {
				slog.Error("Error shutting down telemetry", slog.Any("error", err))
			}
		}()

		opts := decodeOptions{}
		if opts.Row, err = cmd.Flags().GetInt("row"); err != nil {
			return err
		}
		if opts.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
			return err
		}
		if opts.JSON, err = cmd.Flags().GetBool("json"); err != nil {
			return err
		}
		if opts.Charset, err = cmd.Flags().GetString("charset"); err != nil {
			return err
		}

		v := d2txt.NewValidator(appConfig.ValidatorOptions()...)
		return decodeFile(ctx, cmd.OutOrStdout(), args[0], v, opts)
	},
}

func init() {
	decodeCmd.Flags().Int("row", 1, "First row to print, the header is row 1")
	decodeCmd.Flags().Int("limit", 0, "Maximum number of rows to print, 0 prints all remaining rows")
	decodeCmd.Flags().Bool("json", false, "Print one JSON object per row")
	decodeCmd.Flags().String("charset", "raw", "Charset of the table: raw, latin1 or windows-1252")
}

type decodeOptions struct {
	Row     int
	Limit   int
	JSON    bool
	Charset string
}

type decodedRow struct {
	Row    int      `json:"row"`
	Fields []string `json:"fields"`
}

// decodeFile writes rows of the table at path to w, starting at opts.Row.
// Text output re-joins fields with tabs and terminates rows with LF.
func decodeFile(ctx context.Context, w io.Writer, path string, v *d2txt.Validator, opts decodeOptions) error {
	ctx = logctx.WithFile(ctx, path)
	logger := logctx.FromContext(ctx)

	conv, err := charset.Lookup(opts.Charset)
	if err != nil {
		return err
	}

	dec, err := d2txt.Open(path, v)
	if err != nil {
		return err
	}
	defer func() {
		if err := dec.Close(); err != nil {
			logger.Warn("Failed to close table", slog.Any("error", err))
		}
	}()

	enc := json.NewEncoder(w)
	printed := 0
	row, err := dec.DecodeRowAt(opts.Row)
	for {
		if err != nil {
			if errors.Is(err, d2txt.ErrNoDataToRead) && printed > 0 {
				break
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields, convErr := conv.Fields(row)
		if convErr != nil {
			return fmt.Errorf("row %d: %w", dec.RowNumber()-1, convErr)
		}
		if opts.JSON {
			err = enc.Encode(decodedRow{Row: dec.RowNumber() - 1, Fields: fields})
		} else {
			_, err = fmt.Fprintln(w, strings.Join(fields, "\t"))
		}
		if err != nil {
			return err
		}

		printed++
		if opts.Limit > 0 && printed >= opts.Limit {
			break
		}
		row, err = dec.DecodeRow()
	}

	logger.Debug("Decoded table", slog.Int("rows", printed), slog.String("charset", conv.Name()))
	return nil
}
