package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRequestHandler_AddsRequestAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRequestHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(handler)

	ctx := WithRequestInfo(context.Background(), RequestInfo{
		ID:     "req-123",
		Method: "GET",
		Path:   "/de/blog",
	})
	logger.InfoContext(ctx, "page rendered")

	out := buf.String()
	for _, want := range []string{"request_id=req-123", "method=GET", "path=/de/blog", "page rendered"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestRequestHandler_NoContextInfo(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRequestHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Info("startup complete")

	out := buf.String()
	if strings.Contains(out, "request_id") || strings.Contains(out, "path=") {
		t.Errorf("unexpected request attrs without context info: %s", out)
	}
	if !strings.Contains(out, "startup complete") {
		t.Errorf("log output missing message: %s", out)
	}
}

func TestRequestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRequestHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(handler).With("component", "store")

	logger.Warn("slow query")

	out := buf.String()
	if !strings.Contains(out, "component=store") {
		t.Errorf("log output missing inherited attr: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
