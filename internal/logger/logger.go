// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the course catalog.
//
// Every binary builds one root *Logger. Requests get a child carrying their
// trace id, stored in the context, and everything below the HTTP layer
// retrieves it with FromContext.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const traceIDField = "trace_id"

// Logger embeds zerolog.Logger, so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

var configureOnce sync.Once

// configure reports the caller as a function name under "func" instead of
// file:line.
func configure() {
	configureOnce.Do(func() {
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

// NewLogger returns the JSON logger of a server process. Entries carry the
// role, a timestamp and the calling function. The global level starts at
// debug until SetLevel narrows it.
func NewLogger(role string) *Logger {
	configure()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return newLogger(os.Stdout, role, true)
}

// NewConsoleLogger writes plain human-readable lines to w, for catalogadm.
func NewConsoleLogger(role string, w io.Writer) *Logger {
	configure()
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return newLogger(out, role, false)
}

func newLogger(w io.Writer, role string, withCaller bool) *Logger {
	ctx := zerolog.New(w).With().Str("role", role).Timestamp()
	if withCaller {
		ctx = ctx.Caller()
	}
	return &Logger{ctx.Logger()}
}

// SetLevel changes the global level. An empty name keeps the current one.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithTraceID returns a child logger stamping every entry with traceID.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{l.With().Str(traceIDField, traceID).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx with WithContext. Without
// one, a disabled logger is returned, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
