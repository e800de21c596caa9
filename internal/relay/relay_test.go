package relay

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avenra/website/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testSubmission() model.ContactSubmission {
	return model.ContactSubmission{
		ID:        1,
		Name:      "Visitor",
		Email:     "visitor@example.com",
		Subject:   "Question",
		Message:   "Hello",
		CreatedAt: time.Now(),
	}
}

func TestForward_Success(t *testing.T) {
	received := make(map[string]string)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		for _, key := range []string{"name", "email", "subject", "message"} {
			received[key] = r.FormValue(key)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := New(server.URL, testLogger())
	if err := r.Forward(context.Background(), testSubmission()); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if received["email"] != "visitor@example.com" {
		t.Errorf("relayed email = %q", received["email"])
	}
	if received["name"] != "Visitor" {
		t.Errorf("relayed name = %q", received["name"])
	}
}

func TestForward_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	r := New(server.URL, testLogger())
	if err := r.Forward(context.Background(), testSubmission()); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestForward_Disabled(t *testing.T) {
	r := New("", testLogger())
	if r.Enabled() {
		t.Error("Enabled() = true for empty URL")
	}
	if err := r.Forward(context.Background(), testSubmission()); err != nil {
		t.Errorf("disabled relay should be a no-op, got %v", err)
	}
}

func TestForwardAsync_DoesNotBlock(t *testing.T) {
	delivered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(delivered)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := New(server.URL, testLogger())
	r.ForwardAsync(testSubmission())

	select {
	case <-delivered:
	case <-time.After(5 * time.Second):
		t.Fatal("async delivery did not happen")
	}
}
