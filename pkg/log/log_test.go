// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		level    zerolog.Level
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name:  "log_messages",
			level: zerolog.InfoLevel,
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name:  "log_formatted_messages",
			level: zerolog.InfoLevel,
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Errorf("error %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"❌ error test",
			},
		},
		{
			name:  "quiet_drops_info",
			level: zerolog.WarnLevel,
			op: func(t *testing.T, logger *Logger) {
				logger.Info("hidden")
				logger.Debug("hidden")
				logger.Warning("shown")
				logger.Error("also shown")
			},
			wantLogs: []string{
				"⚠️  shown",
				"❌ also shown",
			},
		},
		{
			name:  "verbose_keeps_debug",
			level: zerolog.DebugLevel,
			op: func(t *testing.T, logger *Logger) {
				logger.Debugf("resolved %d profiles", 3)
				logger.Info("info")
			},
			wantLogs: []string{
				"🔍 resolved 3 profiles",
				"ℹ️  info",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, io.Discard, tt.level)

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerStructuredMirror(t *testing.T) {
	structured := &bytes.Buffer{}
	logger := New(io.Discard, structured, zerolog.InfoLevel)

	logger.Warning("2 sources not backed up.")
	logger.Debug("not recorded")

	out := structured.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"message":"2 sources not backed up."`)
	assert.NotContains(t, out, "not recorded")
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, nil, zerolog.InfoLevel)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")
	assert.Equal(t, zerolog.InfoLevel, zerolog.Ctx(ctx).GetLevel(), "zerolog logger should be attached too")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}
