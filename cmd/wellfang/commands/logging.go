// Package commands implements CLI command handlers for wellfang.
package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Sumatoshi-tech/wellfang/pkg/observability"
)

// newLogger builds the CLI logger. Verbose lowers the level to debug so
// detector diagnostics show up; silent raises it to error.
func newLogger(w io.Writer, verbose, silent bool) *slog.Logger {
	level := slog.LevelInfo

	switch {
	case silent:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	inner := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(observability.NewTracingHandler(inner, "wellfang", "", observability.ModeCLI))
}

// slogReporter routes detector diagnostics to the debug log.
type slogReporter struct {
	logger *slog.Logger
}

func (r slogReporter) Diag(format string, args ...any) {
	r.logger.Debug(fmt.Sprintf(format, args...))
}
