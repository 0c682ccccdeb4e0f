package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homelytics/internal/catalog"
	"homelytics/internal/design"
	"homelytics/internal/pricing"
	"homelytics/internal/vision"
)

func testRouter(opts Options) http.Handler {
	cat := catalog.Default()
	return Router(opts, design.Handler{
		Catalog:   cat,
		Estimator: pricing.NewEstimator(cat),
		Renderer:  vision.Passthrough{},
		Settings:  design.DefaultRenderSettings(),
	})
}

func TestHealthRoutes(t *testing.T) {
	router := testRouter(Options{})

	for _, path := range []string{"/health", "/api/health"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: content type %q", path, ct)
		}
	}
}

func TestGenerateRateLimited(t *testing.T) {
	router := testRouter(Options{RatePerSecond: 0.001, RateBurst: 1})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(""))
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	// First request passes the limiter and fails on the missing form.
	if codes[0] != http.StatusBadRequest || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}
}

func TestEstimateNotRateLimited(t *testing.T) {
	router := testRouter(Options{RatePerSecond: 0.001, RateBurst: 1})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(`{"prompt":"sofa"}`))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	router := testRouter(Options{AllowedOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/estimate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestWriteTimeoutCoversRender(t *testing.T) {
	srv := New(Options{Port: "0", RenderTimeout: 5 * time.Minute}, design.Handler{})
	if srv.WriteTimeout <= 5*time.Minute {
		t.Fatalf("write timeout %v shorter than render timeout", srv.WriteTimeout)
	}
	if srv.Addr != ":0" {
		t.Fatalf("addr = %q", srv.Addr)
	}
}
