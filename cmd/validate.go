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
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/cardinalhq/d2txt/internal/logctx"
	"github.com/cardinalhq/d2txt/internal/manifest"
	"github.com/cardinalhq/d2txt/pkg/d2txt"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check the structure of a txt table",
	Long: `Check file metadata, the header row and the column count of every
data row. Required header columns come from --columns or from a manifest
entry matching the file name.`,
	Args: cobra.ExactArgs(1),
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

		opts := validateOptions{}
		if opts.Columns, err = cmd.Flags().GetStringSlice("columns"); err != nil {
			return err
		}
		if opts.Manifest, err = cmd.Flags().GetString("manifest"); err != nil {
			return err
		}
		if opts.FailFast, err = cmd.Flags().GetBool("fail-fast"); err != nil {
			return err
		}

		v := d2txt.NewValidator(appConfig.ValidatorOptions()...)
		return validateFile(ctx, cmd.OutOrStdout(), args[0], v, opts)
	},
}

func init() {
	validateCmd.Flags().StringSlice("columns", nil, "Column names the header must contain")
	validateCmd.Flags().String("manifest", "", "YAML manifest listing required columns per table")
	validateCmd.Flags().Bool("fail-fast", false, "Stop at the first problem")
}

type validateOptions struct {
	Columns  []string
	Manifest string
	FailFast bool
}

// validateFile checks the table at path and writes a one line summary to w.
// Shape problems are collected across all rows unless FailFast is set.
// Structural problems stop the sweep. A header without data rows is
// reported as an EmptyTableError.
func validateFile(ctx context.Context, w io.Writer, path string, v *d2txt.Validator, opts validateOptions) error {
	ctx = logctx.WithFile(ctx, path)
	logger := logctx.FromContext(ctx)

	dec, err := d2txt.Open(path, v)
	if err != nil {
		return err
	}
	defer func() {
		if err := dec.Close(); err != nil {
			logger.Warn("Failed to close table", slog.Any("error", err))
		}
	}()

	expected, err := expectedColumns(logger, dec.FileName(), opts)
	if err != nil {
		return err
	}

	header, err := dec.DecodeRowAt(1)
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	var errs *multierror.Error
	if err := d2txt.ValidateHeader(header, expected); err != nil {
		errs = multierror.Append(errs, err)
		if opts.FailFast {
			return errs.ErrorOrNil()
		}
	}

	rows := 0
	sweepDone := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rowNumber := dec.RowNumber()
		row, err := dec.DecodeRow()
		if errors.Is(err, d2txt.ErrNoDataToRead) {
			sweepDone = true
			break
		}
		if err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		rows++
		if err := d2txt.ValidateRow(row, header, rowNumber); err != nil {
			errs = multierror.Append(errs, err)
			if opts.FailFast {
				break
			}
		}
	}

	if sweepDone {
		if err := d2txt.ValidateNotEmpty(rows, dec.FileName()); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	problems := 0
	if errs != nil {
		problems = errs.Len()
	}
	logger.Info("Validated table", slog.Int("rows", rows), slog.Int("problems", problems))
	if _, err := fmt.Fprintf(w, "%s: %d columns, %d data rows, %d problems\n", dec.FileName(), len(header), rows, problems); err != nil {
		return err
	}
	return errs.ErrorOrNil()
}

// expectedColumns merges --columns with the manifest entry for fileName.
func expectedColumns(logger *slog.Logger, fileName string, opts validateOptions) ([]string, error) {
	expected := append([]string(nil), opts.Columns...)
	if opts.Manifest == "" {
		return expected, nil
	}

	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return nil, err
	}
	columns, ok := m.Columns(fileName)
	if !ok {
		logger.Warn("Table not listed in manifest", slog.String("manifest", opts.Manifest))
		return expected, nil
	}
	return append(expected, columns...), nil
}
