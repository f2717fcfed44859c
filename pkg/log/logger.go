package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// NewContextWithLogger attaches a console logger writing to stdout.
// The returned func flushes and closes the underlying diode writer.
func NewContextWithLogger(ctx context.Context, debug bool) (context.Context, func()) {
	return NewContextWithLoggerTo(ctx, debug, os.Stdout)
}

// NewContextWithLoggerTo attaches a console logger writing to w. Used by
// modes that cannot log to stdout: the TUI owns the terminal and the MCP
// server speaks its protocol over stdout.
func NewContextWithLoggerTo(ctx context.Context, debug bool, w io.Writer) (context.Context, func()) {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return ""
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Non-blocking ring buffer so slow terminals never stall the stream loop
	wr := diode.NewWriter(w, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "logger dropped %d messages\n", missed)
	})

	output := zerolog.ConsoleWriter{
		Out:        wr,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		CallerWithSkipFrameCount(2).
		Logger()

	log.Logger = logger

	return log.With().Logger().WithContext(ctx), func() {
		wr.Close()
	}
}

// NewContextWithFileLogger logs to a file under dir instead of the
// terminal. The caller gets the usual flush func, which also closes the
// file.
func NewContextWithFileLogger(ctx context.Context, debug bool, dir, name string) (context.Context, func(), error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ctx, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	ctx, flush := NewContextWithLoggerTo(ctx, debug, f)
	return ctx, func() {
		flush()
		_ = f.Close()
	}, nil
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}
