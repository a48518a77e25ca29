// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf, slog.LevelWarn))

	lg.Info("this is info")
	assert.Empty(t, buf.String())

	lg.Warn("skipping malformed line", "file", "nodes.txt", "line", 3)
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="skipping malformed line"`)
	assert.Contains(t, out, "file=nodes.txt")
	assert.Contains(t, out, "line=3")
	assert.NotContains(t, out, "time=")
}

func TestDefaultLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	UserLevel = slog.LevelDebug
	SetDefaultLogger()

	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}
