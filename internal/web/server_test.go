package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hpungsan/numwords/internal/config"
	"github.com/hpungsan/numwords/internal/db"
)

// newTestServer builds the full handler chain the way main does.
func newTestServer(t *testing.T, origins []string, logger *slog.Logger) http.Handler {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.AllowedOrigins = origins

	srv, err := NewServer(database, cfg, nil, logger, "test", "127.0.0.1", 0)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv.Handler
}

func TestServer_APIConvertPreflight(t *testing.T) {
	tests := []struct {
		name      string
		origins   []string
		origin    string
		wantAllow string
	}{
		{"no origins configured", nil, "https://evil.example", ""},
		{"empty origins configured", []string{}, "https://ok.example", ""},
		{"listed origin", []string{"https://ok.example"}, "https://ok.example", "https://ok.example"},
		{"unlisted origin", []string{"https://ok.example"}, "https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(t, tt.origins, nil)

			req := httptest.NewRequest(http.MethodOptions, "/api/convert", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
			if tt.wantAllow != "" {
				if got := rec.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
					t.Errorf("Access-Control-Allow-Methods = %q, want POST", got)
				}
			}
		})
	}
}

func TestServer_APIConvertCrossOriginPost(t *testing.T) {
	tests := []struct {
		name      string
		origins   []string
		wantAllow string
	}{
		{"no origins configured", nil, ""},
		{"listed origin", []string{"https://ok.example"}, "https://ok.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(t, tt.origins, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(`{"text": "twenty one", "no_history": true}`))
			req.Header.Set("Origin", "https://ok.example")
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestServer_SecurityHeaders(t *testing.T) {
	handler := newTestServer(t, nil, nil)

	for _, path := range []string{"/", "/about", "/missing"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			csp := rec.Header().Get("Content-Security-Policy")
			if !strings.Contains(csp, "default-src 'self'") {
				t.Errorf("Content-Security-Policy = %q, want default-src 'self'", csp)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q, want DENY", got)
			}
		})
	}
}

func TestServer_RequestLog(t *testing.T) {
	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			handler := newTestServer(t, nil, logger)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}

			var entry map[string]any
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				var record map[string]any
				if err := json.Unmarshal([]byte(line), &record); err != nil {
					t.Fatalf("decode log line %q: %v", line, err)
				}
				if record["msg"] == "request" {
					entry = record
					break
				}
			}
			if entry == nil {
				t.Fatalf("no request record in log: %s", buf.String())
			}
			if entry["method"] != http.MethodGet {
				t.Errorf("method = %v, want GET", entry["method"])
			}
			if entry["path"] != tt.path {
				t.Errorf("path = %v, want %s", entry["path"], tt.path)
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %d", entry["status"], tt.status)
			}
		})
	}
}
