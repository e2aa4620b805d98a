// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "trace", want: zerolog.TraceLevel},
		{input: "debug", want: zerolog.DebugLevel},
		{input: "info", want: zerolog.InfoLevel},
		{input: "INFO", want: zerolog.InfoLevel},
		{input: "warn", want: zerolog.WarnLevel},
		{input: "warning", want: zerolog.WarnLevel},
		{input: "error", want: zerolog.ErrorLevel},
		{input: "disabled", want: zerolog.Disabled},
		{input: "bogus", want: zerolog.InfoLevel},
		{input: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("key", "value").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("output missing structured field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"time":`) {
		t.Errorf("output missing timestamp: %s", out)
	}
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info log emitted at error level: %s", buf.String())
	}

	Error().Msg("emitted")
	if !strings.Contains(buf.String(), "emitted") {
		t.Errorf("error log not emitted: %s", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(DefaultConfig())

	l := Logger()
	l.Log().Msg("direct")
	if !strings.Contains(buf.String(), "direct") {
		t.Errorf("replaced logger not used: %s", buf.String())
	}
}
