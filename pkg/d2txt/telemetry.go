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
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	rowsDecodedCounter       otelmetric.Int64Counter
	decodeErrorsCounter      otelmetric.Int64Counter
	validationFailureCounter otelmetric.Int64Counter
)

func init() {
	meter := otel.Meter("github.com/cardinalhq/d2txt/pkg/d2txt")

	var err error
	rowsDecodedCounter, err = meter.Int64Counter(
		"d2txt.decoder.rows.decoded",
		otelmetric.WithDescription("Number of rows successfully decoded"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create rows.decoded counter: %w", err))
	}

	decodeErrorsCounter, err = meter.Int64Counter(
		"d2txt.decoder.errors",
		otelmetric.WithDescription("Number of decode calls that failed, by error kind"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create decoder.errors counter: %w", err))
	}

	validationFailureCounter, err = meter.Int64Counter(
		"d2txt.validator.failures",
		otelmetric.WithDescription("Number of failed metadata, header and row checks"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create validator.failures counter: %w", err))
	}
}

func recordDecodeError(err error) {
	decodeErrorsCounter.Add(context.Background(), 1, otelmetric.WithAttributes(
		attribute.String("kind", errorKind(err)),
	))
}

func recordValidationFailure(check string) {
	validationFailureCounter.Add(context.Background(), 1, otelmetric.WithAttributes(
		attribute.String("check", check),
	))
}
