// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default structured logger for roadview,
// which writes leveled, colored diagnostics to the standard error stream.
package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set from command line flags with [LevelFromFlags]. The default
// user verbosity level is [slog.LevelInfo].
var UserLevel = slog.LevelInfo

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// vv and q are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetDefaultLogger sets the default logger to one that writes
// to [os.Stderr] at the current [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// NewHandler returns a new text [slog.Handler] writing to w that omits
// timestamps and colors the level label when w is a color terminal.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				lvl, ok := a.Value.Any().(slog.Level)
				if ok {
					a.Value = slog.StringValue(LevelString(out, lvl))
				}
			}
			return a
		},
	})
}

// LevelString returns the label for the given level, styled with
// the color for that level on the given output.
func LevelString(out *termenv.Output, level slog.Level) string {
	st := out.String(level.String())
	switch {
	case level >= slog.LevelError:
		st = st.Foreground(out.Color("1")).Bold()
	case level >= slog.LevelWarn:
		st = st.Foreground(out.Color("3"))
	case level >= slog.LevelInfo:
		st = st.Foreground(out.Color("4"))
	default:
		st = st.Foreground(out.Color("8"))
	}
	return st.String()
}
