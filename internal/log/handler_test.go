package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/authapi/internal/identity"
	ctxlog "github.com/ErlanBelekov/authapi/internal/log"
	"github.com/ErlanBelekov/authapi/internal/requestid"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(ctxlog.NewContextHandler(slog.NewJSONHandler(buf, nil)))
}

func TestContextHandler_AddsRequestAndCaller(t *testing.T) {
	var buf bytes.Buffer
	ctx := requestid.WithRequestID(context.Background(), "req-1")
	ctx = identity.WithUserID(ctx, "user-1")

	newLogger(&buf).With("component", "test").InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["request_id"] != "req-1" {
		t.Errorf("request_id = %v", rec["request_id"])
	}
	if rec["caller_id"] != "user-1" {
		t.Errorf("caller_id = %v", rec["caller_id"])
	}
	if rec["component"] != "test" {
		t.Errorf("component = %v", rec["component"])
	}
}

func TestContextHandler_OmitsAbsentValues(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf).InfoContext(context.Background(), "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := rec["request_id"]; ok {
		t.Error("unexpected request_id")
	}
	if _, ok := rec["caller_id"]; ok {
		t.Error("unexpected caller_id")
	}
}
