// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with the component tag used across the CLI.
type Logger struct {
	logger zerolog.Logger
}

// Options configures a Logger.
type Options struct {
	Level  string
	Format string
	// Output defaults to os.Stderr so diagnostics never mix with command output.
	Output io.Writer
}

// New creates a logger. Unknown levels fall back to warn.
func New(opts Options) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.WarnLevel
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var zl zerolog.Logger
	switch strings.ToLower(opts.Format) {
	case "json":
		zl = zerolog.New(out)
	default:
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			FormatLevel: func(i interface{}) string {
				return fmt.Sprintf("[%s]", strings.ToUpper(fmt.Sprintf("%.3s", i)))
			},
		})
	}
	zl = zl.Level(level).With().Timestamp().Logger()
	return &Logger{logger: zl}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{logger: l.logger.With().Str("component", name).Logger()}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return &Logger{logger: zc.Logger()}
}

// Zerolog returns the underlying zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Debug(), msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Info(), msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Warn(), msg, fields...)
}

// Error logs an error message. The error text is masked.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	event := l.logger.Error()
	if err != nil {
		event = event.Str("error", Mask(err.Error()))
	}
	l.emit(event, msg, fields...)
}

// emit masks string field values before they are written.
func (l *Logger) emit(event *zerolog.Event, msg string, fields ...map[string]interface{}) {
	for _, fm := range fields {
		for k, v := range fm {
			if s, ok := v.(string); ok {
				event.Str(k, Mask(s))
				continue
			}
			event.Interface(k, v)
		}
	}
	event.Msg(Mask(msg))
}
