// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelCrit  = slog.Level(12)

	levelMaxVerbosity = LevelTrace
)

// Logger is the interface all log operations go through.
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes.
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	// Crit logs at the critical level then exits the process.
	Crit(msg string, ctx ...any)
}

type logger struct {
	inner *slog.Logger
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) write(level slog.Level, msg string, ctx []any) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }

func (l *logger) Crit(msg string, ctx ...any) {
	l.write(LevelCrit, msg, ctx)
	os.Exit(1)
}

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger.
func SetDefault(h slog.Handler) {
	root.Store(&logger{slog.New(h)})
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(*logger)
}

// WithContext returns a logger derived from the root logger carrying the given attributes.
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}

// LevelString returns a 5-character string containing the name of a Lvl.
func LevelString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelCrit:
		return "crit"
	default:
		return "unknown"
	}
}

// FromLegacyLevel converts from old 0-5 level range to the slog scale,
// with 0=crit and 5=trace, as used by the verbosity cmd flag.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelCrit
	case 1:
		return LevelError
	case 2:
		return LevelWarn
	case 3:
		return LevelInfo
	case 4:
		return LevelDebug
	case 5:
		return LevelTrace
	default:
		return LevelInfo
	}
}
