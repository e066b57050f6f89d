package logging

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// captureOutput redirects stdout while logFn runs and returns everything the logger wrote.
func captureOutput(t *testing.T, logFn func(*zap.Logger)) string {
	t.Helper()

	resetLoggerForTest()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer func() { _ = r.Close() }()

	origStdout := os.Stdout
	origStderr := os.Stderr
	os.Stdout = w
	os.Stderr = w
	defer func() {
		os.Stdout = origStdout
		os.Stderr = origStderr
	}()

	logger := Logger()
	logFn(logger)
	_ = logger.Sync()

	if closeErr := w.Close(); closeErr != nil {
		t.Fatalf("failed to close writer: %v", closeErr)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read log output: %v", err)
	}
	return string(data)
}

// captureLogOutput captures a single log entry emitted by logFn and returns it as a map.
func captureLogOutput(t *testing.T, logFn func(*zap.Logger)) map[string]any {
	t.Helper()

	line := strings.TrimSpace(captureOutput(t, logFn))
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to unmarshal log JSON: %v", err)
	}
	return payload
}

// resetLoggerForTest clears the singleton state so tests can capture fresh log output.
func resetLoggerForTest() {
	loggerOnce = sync.Once{}
	baseLogger = nil
	sugarLogger = nil
	loggerErr = nil
	level.SetLevel(zapcore.InfoLevel)
}

func TestLoggerStructuredOutput(t *testing.T) {
	payload := captureLogOutput(t, func(l *zap.Logger) {
		l.Info("GET /rest/application")
	})

	if got := payload["severity"]; got != "INFO" {
		t.Fatalf("expected severity INFO, got %v", got)
	}
	if _, exists := payload["level"]; exists {
		t.Fatalf("did not expect level field")
	}
	if msg, ok := payload["message"].(string); !ok || msg != "GET /rest/application" {
		t.Fatalf("expected message 'GET /rest/application', got %v", payload["message"])
	}

	ts, ok := payload["timestamp"].(string)
	if !ok {
		t.Fatalf("expected timestamp field to be a string, got %T", payload["timestamp"])
	}
	if _, err := time.Parse(RFC3339Micros, ts); err != nil {
		t.Fatalf("timestamp is not RFC3339Micros: %v", err)
	}
}

func TestSugarLoggerStructuredOutput(t *testing.T) {
	payload := captureLogOutput(t, func(*zap.Logger) {
		Sugar().Warnw("slow response", "latency_ms", 120)
	})

	if got := payload["severity"]; got != "WARNING" {
		t.Fatalf("expected severity WARNING, got %v", got)
	}
	if latency, ok := payload["latency_ms"].(float64); !ok || latency != 120 {
		t.Fatalf("expected latency_ms 120, got %v", payload["latency_ms"])
	}
}

func TestEncodeSeverityMapping(t *testing.T) {
	tests := []struct {
		level    zapcore.Level
		expected string
	}{
		{zapcore.DebugLevel, "DEBUG"},
		{zapcore.InfoLevel, "INFO"},
		{zapcore.WarnLevel, "WARNING"},
		{zapcore.ErrorLevel, "ERROR"},
		{zapcore.DPanicLevel, "CRITICAL"},
		{zapcore.PanicLevel, "ALERT"},
		{zapcore.FatalLevel, "EMERGENCY"},
		{zapcore.Level(99), "DEFAULT"},
	}

	for _, tt := range tests {
		enc := &captureArrayEncoder{}
		encodeSeverity(tt.level, enc)
		if len(enc.values) != 1 || enc.values[0] != tt.expected {
			t.Fatalf("encodeSeverity(%v) = %v, want %s", tt.level, enc.values, tt.expected)
		}
	}
}

func TestLoggerSingletonBehavior(t *testing.T) {
	resetLoggerForTest()

	if Logger() != Logger() {
		t.Fatal("expected Logger() to return the same instance")
	}
	if Sugar().Desugar().Core() != Logger().Core() {
		t.Fatal("expected Logger and Sugar to share the same core")
	}
}

func TestErrReturnsNilOnSuccess(t *testing.T) {
	resetLoggerForTest()

	if err := Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if baseLogger == nil {
		t.Fatal("expected baseLogger to be initialized after Err()")
	}
}

func TestLoggerIncludesCallerField(t *testing.T) {
	payload := captureLogOutput(t, func(l *zap.Logger) {
		l.Info("caller test")
	})

	caller, ok := payload["caller"].(string)
	if !ok {
		t.Fatal("expected caller field to be a string")
	}
	if !strings.Contains(caller, "logger_test.go") {
		t.Fatalf("expected caller to reference logger_test.go, got %s", caller)
	}
}

func TestDebugLevelNotLoggedByDefault(t *testing.T) {
	out := captureOutput(t, func(l *zap.Logger) {
		l.Debug("debug message should not appear")
	})

	if strings.Contains(out, "debug message") {
		t.Fatal("debug level messages should not be logged at the default level")
	}
}

func TestSetLevelEnablesDebug(t *testing.T) {
	defer level.SetLevel(zapcore.InfoLevel)

	out := captureOutput(t, func(l *zap.Logger) {
		if err := SetLevel("debug"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		l.Debug("debug message visible")
	})

	if !strings.Contains(out, "debug message visible") {
		t.Fatalf("expected debug output after SetLevel, got %q", out)
	}
	if Level() != zapcore.DebugLevel {
		t.Fatalf("expected debug level, got %v", Level())
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	before := Level()
	if err := SetLevel("chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if Level() != before {
		t.Fatalf("level changed on error: %v -> %v", before, Level())
	}
}

// captureArrayEncoder collects strings appended via the PrimitiveArrayEncoder interface.
type captureArrayEncoder struct {
	values []string
}

func (c *captureArrayEncoder) AppendBool(bool)             {}
func (c *captureArrayEncoder) AppendByteString([]byte)     {}
func (c *captureArrayEncoder) AppendComplex128(complex128) {}
func (c *captureArrayEncoder) AppendComplex64(complex64)   {}
func (c *captureArrayEncoder) AppendFloat64(float64)       {}
func (c *captureArrayEncoder) AppendFloat32(float32)       {}
func (c *captureArrayEncoder) AppendInt(int)               {}
func (c *captureArrayEncoder) AppendInt64(int64)           {}
func (c *captureArrayEncoder) AppendInt32(int32)           {}
func (c *captureArrayEncoder) AppendInt16(int16)           {}
func (c *captureArrayEncoder) AppendInt8(int8)             {}
func (c *captureArrayEncoder) AppendString(s string)       { c.values = append(c.values, s) }
func (c *captureArrayEncoder) AppendUint(uint)             {}
func (c *captureArrayEncoder) AppendUint64(uint64)         {}
func (c *captureArrayEncoder) AppendUint32(uint32)         {}
func (c *captureArrayEncoder) AppendUint16(uint16)         {}
func (c *captureArrayEncoder) AppendUint8(uint8)           {}
func (c *captureArrayEncoder) AppendUintptr(uintptr)       {}
