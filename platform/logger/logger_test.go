package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithContextAddsRequestAndStaff(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, StaffIDKey, "staff-9")
	log.WithContext(ctx).Info("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
	if line["request_id"] != "req-1" || line["staff_id"] != "staff-9" {
		t.Fatalf("missing context attributes: %v", line)
	}
}

func TestStageChangedFields(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("production", &buf).StageChanged("lead-1", "active", "closed", "Priya")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
	if line["msg"] != "lead_stage_changed" || line["to"] != "closed" {
		t.Fatalf("unexpected record %v", line)
	}
}

func TestDevelopmentUsesText(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("development", &buf).Debug("visible")
	if !bytes.Contains(buf.Bytes(), []byte("msg=visible")) {
		t.Fatalf("expected text debug output, got %q", buf.String())
	}
}
