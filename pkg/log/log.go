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

// 🎯 FileOperation is one file's outcome as shown to the user
type FileOperation struct {
	Action  string // rename, copy, move, delete, create
	Source  string // Source file name, empty for create
	Target  string // Target path relative to the workspace, empty for delete
	Message string // Line shown to the user
	Failed  bool
}

// 📦 BatchOperation describes a batch about to run
type BatchOperation struct {
	Action string
	Group  string
	Dir    string
	Files  int
}

// 🎯 Logger writes user-facing messages to the console and mirrors them to zerolog
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	current    *BatchOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a logger that discards everything
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Nop())
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol string
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol, symbolColor = "✗", color.FgRed
	case op.Action == "delete":
		symbol, symbolColor = "-", color.FgYellow
	case op.Action == "create" || op.Action == "copy":
		symbol, symbolColor = "✓", color.FgGreen
	default:
		symbol, symbolColor = "⟳", color.FgBlue
	}

	msgColor := color.Reset
	if op.Failed {
		msgColor = color.FgRed
	}

	return fmt.Sprintf("%s %s", color.New(symbolColor).Sprint(symbol), color.New(msgColor).Sprint(op.Message))
}

// 📝 LogFileOperation prints one file's outcome
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	ev := l.zlog.Info()
	if op.Failed {
		ev = l.zlog.Error()
	}
	ev.Str("action", op.Action).
		Str("source", op.Source).
		Str("target", op.Target).
		Bool("failed", op.Failed).
		Msg(op.Message)
}

// 📝 StartBatch records the batch that the following file operations belong to
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &op
	l.operations = nil

	l.zlog.Debug().
		Str("action", op.Action).
		Str("group", op.Group).
		Str("dir", op.Dir).
		Int("files", op.Files).
		Msg("starting batch")
}

// 📝 EndBatch closes the current batch and returns how many file operations failed
func (l *Logger) EndBatch(ctx context.Context) (total, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return 0, 0
	}

	for _, op := range l.operations {
		if op.Failed {
			failed++
		}
	}
	total = len(l.operations)

	l.zlog.Debug().
		Str("action", l.current.Action).
		Int("files", total).
		Int("failed", failed).
		Msg("batch complete")

	l.current = nil
	l.operations = nil
	return total, failed
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
