package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func localeTestRouter(captured *string) http.Handler {
	r := chi.NewRouter()
	r.Route("/{lang}", func(r chi.Router) {
		r.Use(Locale)
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			*captured = GetLocale(req)
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestLocale(t *testing.T) {
	tests := []struct {
		path       string
		wantStatus int
		wantLocale string
	}{
		{"/en", http.StatusOK, "en"},
		{"/de", http.StatusOK, "de"},
		{"/fr", http.StatusNotFound, ""},
		{"/EN", http.StatusNotFound, ""},
		{"/en-US", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var captured string
			router := localeTestRouter(&captured)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocale != "" && captured != tt.wantLocale {
				t.Errorf("locale = %q, want %q", captured, tt.wantLocale)
			}
		})
	}
}

func TestGetLocale_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetLocale(req); got != "de" {
		t.Errorf("GetLocale without context = %q, want de", got)
	}
}
