package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jrazmi/taskline/sdk/logger"
)

func TestTraceIDAttribute(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(
		logger.WithOutput(&buf),
		logger.WithService("taskline"),
		logger.WithTraceID(func(ctx context.Context) string { return "trace-123" }),
	)

	log.InfoContext(context.Background(), "startup", "status", "ok")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log record: %v (%s)", err, buf.String())
	}

	if record["trace_id"] != "trace-123" {
		t.Errorf("Expected trace_id 'trace-123', got %v", record["trace_id"])
	}
	if record["service"] != "taskline" {
		t.Errorf("Expected service 'taskline', got %v", record["service"])
	}
	if record["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %v", record["status"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithLevel("warn"))

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("Expected info record to be filtered, got %s", buf.String())
	}

	log.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("Expected warn record to be written")
	}
}
