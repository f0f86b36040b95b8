// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), buf.String())
	return out
}

func TestHandler_CloudLoggingFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelDebug))

	logger.Warn("low quota", "quota", "catalog")
	line := decodeLine(t, &buf)
	assert.Equal(t, "WARNING", line["severity"])
	assert.Equal(t, "low quota", line["message"])
	assert.Equal(t, "catalog", line["quota"])
	assert.Contains(t, line, "timestamp")
	assert.NotContains(t, line, "level")
	assert.NotContains(t, line, "logging.googleapis.com/trace")
}

func TestHandler_SpanContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo)).With("component", "test")

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.InfoContext(ctx, "traced")
	line := decodeLine(t, &buf)
	assert.Equal(t, "INFO", line["severity"])
	assert.Equal(t, "test", line["component"])
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", line["logging.googleapis.com/trace"])
	assert.Equal(t, "0102030405060708", line["logging.googleapis.com/spanId"])
	assert.Equal(t, true, line["logging.googleapis.com/trace_sampled"])
}

func TestHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelWarn))
	logger.Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetupLogging_LogFile(t *testing.T) {
	previous := slog.Default()
	defer func() {
		slog.SetDefault(previous)
		log.SetOutput(os.Stderr)
	}()

	closeFn, err := SetupLogging(cloud.Telemetry{LogFile: filepath.Join(t.TempDir(), "app.log"), LogLevel: "info"})
	require.NoError(t, err)
	assert.NoError(t, closeFn())

	_, err = SetupLogging(cloud.Telemetry{LogLevel: "verbose"})
	assert.Error(t, err)
}

func TestSetupOpenTelemetry_Disabled(t *testing.T) {
	config := cloud.NewConfig()
	shutdown, err := SetupOpenTelemetry(context.Background(), config)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
