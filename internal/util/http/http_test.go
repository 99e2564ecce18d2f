package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestFetchReturnsBody tests that a successful image response is returned intact.
func TestFetchReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), UserAgentName+"/") {
			t.Errorf("unexpected User-Agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	data, err := Fetch(context.Background(), server.URL, FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Fetch() = %q", data)
	}
}

// TestFetchRejectsErrors tests status, content type and size failures.
func TestFetchRejectsErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		opts    FetchOptions
		wantErr string
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.NotFound(w, nil)
			},
			wantErr: "HTTP 404",
		},
		{
			name: "html",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<html></html>"))
			},
			wantErr: "unexpected content type",
		},
		{
			name: "too large",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/jpeg")
				_, _ = w.Write([]byte(strings.Repeat("x", 32)))
			},
			opts:    FetchOptions{MaxBytes: 16},
			wantErr: "exceeds 16 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := Fetch(context.Background(), server.URL, tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Fetch() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
