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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cardinalhq/oteltools/pkg/telemetry"
	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/cardinalhq/d2txt/config"
)

// setupTelemetry configures the default slog logger and, when enabled, the
// OpenTelemetry SDK. Logs go to stderr so stdout stays free for row output.
// The returned function must be called before exiting.
func setupTelemetry(cfg *config.Config) (context.Context, func() error, error) {
	doneCtx, doneCancel := handleSignals(context.Background())

	f := func() error {
		doneCancel()
		return nil
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}
	var local slog.Handler
	if strings.EqualFold(cfg.Log.Format, "json") {
		local = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		local = slog.NewTextHandler(os.Stderr, opts)
	}

	servicename := cfg.Telemetry.ServiceName
	if !cfg.Telemetry.OTLP {
		slog.SetDefault(slog.New(local).With(slog.String("service", servicename)))
		return doneCtx, f, nil
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(
		local,
		otelslog.NewHandler(servicename),
	)).With(slog.String("service", servicename)))
	slog.Info("OpenTelemetry exporting enabled")

	otelShutdown, err := telemetry.SetupOTelSDK(doneCtx)
	if err != nil {
		doneCancel()
		return doneCtx, nil, fmt.Errorf("failed to setup OpenTelemetry SDK: %w", err)
	}

	f = func() error {
		defer doneCancel()
		slog.Debug("Shutting down OpenTelemetry SDK")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return otelShutdown(ctx)
	}
	return doneCtx, f, nil
}

// parseLevel converts a configured level name, defaulting to info.
func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
