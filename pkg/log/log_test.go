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
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Action:  "rename",
					Source:  "Foo.ts",
					Target:  "src/Baz.ts",
					Message: "File renamed: Foo.ts -> src/Baz.ts",
				})
			},
			wantLogs: []string{
				"⟳ File renamed: Foo.ts -> src/Baz.ts",
			},
		},
		{
			name: "log_messages",
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
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "batch_is_silent_on_console",
			op: func(t *testing.T, logger *Logger) {
				logger.StartBatch(context.Background(), BatchOperation{Action: "delete", Files: 1})
				logger.LogFileOperation(context.Background(), FileOperation{Action: "delete", Source: "A.md", Message: "File deleted: A.md"})
				logger.EndBatch(context.Background())
			},
			wantLogs: []string{
				"- File deleted: A.md",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.TestWriter{T: t}))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info("dropped")
	}, "a missing logger falls back to a discarding one")
}

func TestFileOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "created",
			op:   FileOperation{Action: "create", Target: "src/New.ts", Message: "File created: -> src/New.ts"},
			want: "✓ File created: -> src/New.ts",
		},
		{
			name: "copied",
			op:   FileOperation{Action: "copy", Source: "A.md", Target: "B.md", Message: "File copied: A.md -> B.md"},
			want: "✓ File copied: A.md -> B.md",
		},
		{
			name: "moved",
			op:   FileOperation{Action: "move", Source: "A.md", Target: "docs/A.md", Message: "File moved: A.md -> docs/A.md"},
			want: "⟳ File moved: A.md -> docs/A.md",
		},
		{
			name: "failed",
			op:   FileOperation{Action: "copy", Source: "A.md", Failed: true, Message: "Failed to copy file: target already exists"},
			want: "✗ Failed to copy file: target already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			logger.LogFileOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()), "formatted output should match")
		})
	}
}

func TestEndBatchCountsFailures(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())
	ctx := context.Background()

	total, failed := logger.EndBatch(ctx)
	assert.Zero(t, total, "no batch started")
	assert.Zero(t, failed)

	logger.StartBatch(ctx, BatchOperation{Action: "delete", Files: 2})
	logger.LogFileOperation(ctx, FileOperation{Action: "delete", Source: "A.md", Message: "File deleted: A.md"})
	logger.LogFileOperation(ctx, FileOperation{Action: "delete", Source: "A.png", Failed: true, Message: "Failed to delete file: denied"})

	total, failed = logger.EndBatch(ctx)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, failed)
}
