// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

// Package relay forwards contact submissions to an external email relay.
// Delivery is best-effort: failures are logged and never surface to the
// visitor, and there are no retries.
package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/avenra/website/internal/model"
)

// Delivery configuration constants
const (
	RequestTimeout = 10 * time.Second // HTTP request timeout
	MaxResponseLen = 10 * 1024        // Maximum response body to log (10KB)
	UserAgent      = "avenra-website/1.0"
)

// httpClient is the shared HTTP client with appropriate timeouts.
var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Relay sends contact submissions to a configured endpoint.
type Relay struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// New creates a Relay posting to the given URL. An empty URL disables
// forwarding entirely.
func New(url string, logger *slog.Logger) *Relay {
	return &Relay{
		url:    url,
		client: httpClient,
		logger: logger,
	}
}

// Enabled reports whether a relay endpoint is configured.
func (r *Relay) Enabled() bool {
	return r.url != ""
}

// Forward posts the submission to the relay endpoint as a multipart form.
// The error return is informational: callers log it but never fail the
// original request over it.
func (r *Relay) Forward(ctx context.Context, submission model.ContactSubmission) error {
	if !r.Enabled() {
		return nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"name":    submission.Name,
		"email":   submission.Email,
		"phone":   submission.Phone,
		"company": submission.Company,
		"subject": submission.Subject,
		"message": submission.Message,
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return fmt.Errorf("encoding submission: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, &body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		r.logger.Info("contact submission forwarded",
			"submission_id", submission.ID,
			"status", resp.StatusCode,
		)
		return nil
	}

	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
}

// ForwardAsync forwards the submission without blocking the caller. The
// request context is not reused because the response has usually been
// written by the time delivery finishes.
func (r *Relay) ForwardAsync(submission model.ContactSubmission) {
	if !r.Enabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()

		if err := r.Forward(ctx, submission); err != nil {
			r.logger.Warn("contact relay delivery failed",
				"submission_id", submission.ID,
				"error", err,
			)
		}
	}()
}
