package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bikeshare/internal/config"

	"go.opentelemetry.io/otel/trace"
)

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger is nil")
	}
	if GetLogger() != logger {
		t.Error("GetLogger should return the initialized logger")
	}

	logger.Info("test message", "key", "value")
	CloseLogFile()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal(content, &logEntry); err != nil {
		t.Fatalf("Log output is not valid JSON: %v", err)
	}
	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
	if logEntry["key"] != "value" {
		t.Errorf("Expected key='value', got %v", logEntry["key"])
	}
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level='INFO', got %v", logEntry["level"])
	}
}

func TestSessionIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "json", Output: "console"}, &buf)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	ctx := WithSessionID(context.Background(), "session-123")
	WithComponent(logger, "shell").InfoContext(ctx, "round started")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log JSON: %v", err)
	}
	if logEntry["session_id"] != "session-123" {
		t.Errorf("Expected session_id='session-123', got %v", logEntry["session_id"])
	}
	if logEntry["component"] != "shell" {
		t.Errorf("Expected component='shell', got %v", logEntry["component"])
	}
	if _, ok := logEntry["trace_id"]; ok {
		t.Error("trace_id must be absent outside a span")
	}
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "console"}, &buf)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	traceID := trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     trace.SpanID{0x00, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	WithError(logger, errors.New("source missing")).WarnContext(ctx, "Load failed")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log JSON: %v", err)
	}
	if logEntry["trace_id"] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("Expected trace_id from span context, got %v", logEntry["trace_id"])
	}
	if logEntry["error"] != "source missing" {
		t.Errorf("Expected error='source missing', got %v", logEntry["error"])
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level   string
		visible []string
	}{
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
		{"bogus", []string{"WARN", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(config.LoggingConfig{Level: tt.level, Format: "json"}, &buf)
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}

			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != len(tt.visible) {
				t.Fatalf("Expected %d entries, got %d: %s", len(tt.visible), len(lines), buf.String())
			}
			for i, line := range lines {
				var entry map[string]interface{}
				if err := json.Unmarshal([]byte(line), &entry); err != nil {
					t.Fatalf("Failed to parse log JSON: %v", err)
				}
				if entry["level"] != tt.visible[i] {
					t.Errorf("Expected level=%s, got %v", tt.visible[i], entry["level"])
				}
			}
		})
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("loaded", "trips", 42)

	out := buf.String()
	if !strings.Contains(out, "msg=loaded") || !strings.Contains(out, "trips=42") {
		t.Errorf("Unexpected text output: %s", out)
	}
}

func TestBothOutputs(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "both.log")
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "both", FilePath: logFile}, &buf)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger.Warn("dual")
	CloseLogFile()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !bytes.Equal(bytes.TrimSpace(content), bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("Console and file output differ:\n%s\n%s", buf.String(), content)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if GetSessionID(ctx) != "" {
		t.Error("Expected empty session ID")
	}

	id := NewSessionID()
	if len(id) != 36 {
		t.Errorf("Expected UUID session ID, got %q", id)
	}
	if GetSessionID(WithSessionID(ctx, id)) != id {
		t.Error("WithSessionID must store the ID")
	}
	if NewSessionID() == NewSessionID() {
		t.Error("Session IDs should be unique")
	}
}
