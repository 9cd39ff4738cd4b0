// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the console log of the tools. Everything ends up in a
// slog.Logger, the printf style calls exist because most callers want them.
package conlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var (
	logger  atomic.Pointer[slog.Logger]
	level   = new(slog.LevelVar)
	printer atomic.Pointer[func(string, ...any)]
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput replaces the log destination.
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger.Store(slog.New(h))
}

// SetDeveloper enables debug output.
func SetDeveloper(on bool) {
	if on {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// SetPrintf redirects Printf, e.g. to a command's stdout.
func SetPrintf(f func(string, ...any)) {
	if f == nil {
		printer.Store(nil)
		return
	}
	printer.Store(&f)
}

// Logger returns the logger behind the printf style calls.
func Logger() *slog.Logger {
	return logger.Load()
}

// Printf writes user facing output.
func Printf(format string, v ...any) {
	if p := printer.Load(); p != nil {
		(*p)(format, v...)
		return
	}
	Logger().Info(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}

// DPrintf only prints in developer mode.
func DPrintf(format string, v ...any) {
	Logger().Debug(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}

func Warnf(format string, v ...any) {
	Logger().Warn(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}

// Debug logs structured key value pairs in developer mode.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
