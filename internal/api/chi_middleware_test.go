// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"bytes"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/logging"
	"github.com/tomtom215/filmoteca/internal/metrics"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func testSecurity(reqs int) *config.SecurityConfig {
	return &config.SecurityConfig{
		RateLimitReqs:   reqs,
		RateLimitWindow: time.Minute,
		CORSOrigins:     []string{"https://filmoteca.example"},
	}
}

func TestRateLimit_RejectsWithEnvelope(t *testing.T) {
	handler := newEdgeGuards(testSecurity(2)).apiLimit()(okHandler)

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("per_ip"))

	codes := make([]int, 3)
	var last *httptest.ResponseRecorder
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalogo/resumen", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
		codes[i] = last.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", codes[2])
	}
	if ct := last.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	after := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("per_ip"))
	if after-before != 1 {
		t.Errorf("per_ip counter delta = %v, want 1", after-before)
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	handler := newEdgeGuards(testSecurity(1)).apiLimit()(okHandler)

	for _, addr := range []string{"192.0.2.1:1", "192.0.2.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, each IP has its own budget", addr, rec.Code)
		}
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	sec := testSecurity(1)
	sec.RateLimitDisabled = true
	g := newEdgeGuards(sec)

	for _, mw := range []func(http.Handler) http.Handler{g.apiLimit(), g.healthLimit()} {
		handler := mw(okHandler)
		for i := 0; i < 5; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d rejected with limiting disabled", i)
			}
		}
	}
}

func TestCORS(t *testing.T) {
	handler := newEdgeGuards(testSecurity(10)).cors(okHandler)

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"https://filmoteca.example", "https://filmoteca.example"},
		{"https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/health", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := securityHeaders(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}

	for name, mutate := range map[string]func(*http.Request){
		"tls":           func(r *http.Request) { r.TLS = &tls.ConnectionState{} },
		"forwarded tls": func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") },
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		mutate(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Header().Get("Strict-Transport-Security") == "" {
			t.Errorf("%s: HSTS header missing", name)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	defer logging.Init(logging.DefaultConfig())
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(prev)

	handler := requestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}

	out := buf.String()
	for _, want := range []string{`"status":418`, `"bytes":3`, `"path":"/x"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
}

func TestRequestLogger_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	defer logging.Init(logging.DefaultConfig())
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(prev)

	handler := requestLogger(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Errorf("handler that writes nothing should log 200: %s", buf.String())
	}
}
