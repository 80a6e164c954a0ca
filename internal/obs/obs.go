// Package obs constructs the structured logger used by cmd/pbtgroup, and
// the optional trace file opened for --trace (SPEC_FULL.md §2 Logging,
// §4 "--trace output format").
//
// AI-HINT (file):
//   - obs.New(quiet, traceFile) is the only constructor; every caller gets
//     the same sink configuration, matching the teacher's "one constructor,
//     deterministic options" convention (core.NewGraph, builder.New...).
package obs

import (
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.SugaredLogger plus the optional trace-file sink.
//
// Contract:
//   - Quiet suppresses all engine logging (maps to zap's no-op core).
//   - TraceFile, when non-empty, creates (or truncates) the named file;
//     TraceLine appends one line to it. No code in this module calls
//     TraceLine, so the file is left empty. Close must be called once at
//     process exit to flush and close that file.
type Logger struct {
	sugar   *zap.SugaredLogger
	traceFh *os.File
	runID   string
}

// New builds a Logger. quiet silences stdout/stderr logging (--quiet);
// traceFile, if non-empty, opens (create/truncate) that path for the
// trace-event sink (--trace). Complexity: O(1); one file open at most.
func New(quiet bool, traceFile string) (*Logger, error) {
	var core zapcore.Core
	if quiet {
		core = zapcore.NewNopCore()
	} else {
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "ts"
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(enc),
			zapcore.Lock(os.Stderr),
			zap.InfoLevel,
		)
	}

	l := &Logger{
		sugar: zap.New(core).Sugar(),
		runID: uuid.NewString(),
	}

	if traceFile != "" {
		fh, err := os.Create(traceFile)
		if err != nil {
			return nil, err
		}
		l.traceFh = fh
	}

	return l, nil
}

// RunID identifies this process's engine run for log correlation.
func (l *Logger) RunID() string { return l.runID }

// Infow logs a structured info-level event; no-op if the logger is quiet.
func (l *Logger) Infow(msg string, kv ...interface{}) {
	if l.sugar != nil {
		l.sugar.Infow(msg, kv...)
	}
}

// Errorw logs a structured error-level event.
func (l *Logger) Errorw(msg string, kv ...interface{}) {
	if l.sugar != nil {
		l.sugar.Errorw(msg, kv...)
	}
}

// Debugw logs a structured debug-level event.
func (l *Logger) Debugw(msg string, kv ...interface{}) {
	if l.sugar != nil {
		l.sugar.Debugw(msg, kv...)
	}
}

// TraceLine appends one pre-formatted trace-event line to the vole.trace
// sink. A no-op when tracing was not requested. Errors are swallowed by
// design: a failing trace sink must never abort the search itself.
func (l *Logger) TraceLine(line string) {
	if l.traceFh == nil {
		return
	}
	_, _ = l.traceFh.WriteString(line)
	_, _ = l.traceFh.WriteString("\n")
}

// Close flushes the logger and closes the trace sink, if any.
func (l *Logger) Close() error {
	if l.sugar != nil {
		_ = l.sugar.Sync()
	}
	if l.traceFh != nil {
		return l.traceFh.Close()
	}
	return nil
}
