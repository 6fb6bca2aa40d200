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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 Logger writes human readable lines to a console and mirrors every
// message as a structured zerolog event.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	level   zerolog.Level
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Console lines below level are dropped.
// Structured events are written to structured, which may be io.Discard.
func New(console io.Writer, structured io.Writer, level zerolog.Level) *Logger {
	if structured == nil {
		structured = io.Discard
	}
	zlog := zerolog.New(structured).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		level:   level,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context. The underlying zerolog logger is
// attached as well so zerolog.Ctx works for library code.
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) print(level zerolog.Level, prefix string, c *color.Color, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level >= l.level {
		fmt.Fprintf(l.console, "%s %s\n", prefix, c.Sprint(msg))
	}
	l.zlog.WithLevel(level).Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.print(zerolog.InfoLevel, "✅", color.New(color.FgGreen), msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.print(zerolog.WarnLevel, "⚠️ ", color.New(color.FgYellow), msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.print(zerolog.ErrorLevel, "❌", color.New(color.FgRed), msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.print(zerolog.InfoLevel, "ℹ️ ", color.New(color.FgCyan), msg)
}

// 📝 Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.print(zerolog.DebugLevel, "🔍", color.New(color.Faint), msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}
