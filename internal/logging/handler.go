// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that annotates log records
// with request-scoped attributes (request ID, method, path) taken from the
// request context.
package logging

import (
	"context"
	"log/slog"
)

type ctxKey int

const requestInfoKey ctxKey = iota

// RequestInfo carries the request attributes attached to log records.
type RequestInfo struct {
	ID     string
	Method string
	Path   string
}

// WithRequestInfo returns a context carrying the given request attributes.
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

// RequestInfoFromContext extracts request attributes from the context.
// The second return value is false when none are set.
func RequestInfoFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey).(RequestInfo)
	return info, ok
}

// RequestHandler is a slog.Handler that wraps another handler and adds
// request attributes from the context to every record logged during a
// request.
type RequestHandler struct {
	inner slog.Handler
}

// NewRequestHandler creates a RequestHandler wrapping the given handler.
func NewRequestHandler(inner slog.Handler) *RequestHandler {
	return &RequestHandler{inner: inner}
}

// Enabled implements slog.Handler.
func (h *RequestHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RequestHandler) Handle(ctx context.Context, r slog.Record) error {
	if info, ok := RequestInfoFromContext(ctx); ok {
		r = r.Clone()
		if info.ID != "" {
			r.AddAttrs(slog.String("request_id", info.ID))
		}
		r.AddAttrs(
			slog.String("method", info.Method),
			slog.String("path", info.Path),
		)
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RequestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *RequestHandler) WithGroup(name string) slog.Handler {
	return &RequestHandler{inner: h.inner.WithGroup(name)}
}

// ParseLevel maps a config string to a slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
