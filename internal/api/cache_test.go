package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tierscope/tierscope/pkg/assess"
)

func TestRunCachePutGet(t *testing.T) {
	c := NewRunCache(2)

	if got := c.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}

	c.Put("run-1", &assess.Run{ID: "run-1"})
	got := c.Get("run-1")
	if got == nil || got.ID != "run-1" {
		t.Fatalf("Get(run-1) = %v, want run-1", got)
	}
}

func TestRunCacheEviction(t *testing.T) {
	c := NewRunCache(2)
	c.Put("run-1", &assess.Run{ID: "run-1"})
	c.Put("run-2", &assess.Run{ID: "run-2"})

	// Touch run-1 so run-2 becomes the eviction candidate.
	c.Get("run-1")
	c.Put("run-3", &assess.Run{ID: "run-3"})

	if c.Get("run-2") != nil {
		t.Error("run-2 should have been evicted")
	}
	if c.Get("run-1") == nil {
		t.Error("run-1 should have survived eviction")
	}
	if c.Get("run-3") == nil {
		t.Error("run-3 should be present")
	}
}

func TestRunCacheOverwrite(t *testing.T) {
	c := NewRunCache(2)
	c.Put("run-1", &assess.Run{ID: "run-1", Controller: "a"})
	c.Put("run-1", &assess.Run{ID: "run-1", Controller: "b"})

	got := c.Get("run-1")
	if got == nil || got.Controller != "b" {
		t.Errorf("Get(run-1) = %v, want controller b", got)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		key        string
		headerKey  string
		wantStatus int
	}{
		{name: "no key configured", key: "", headerKey: "", wantStatus: http.StatusOK},
		{name: "correct key", key: "secret", headerKey: "secret", wantStatus: http.StatusOK},
		{name: "wrong key", key: "secret", headerKey: "nope", wantStatus: http.StatusUnauthorized},
		{name: "missing key", key: "secret", headerKey: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := APIKeyAuth(tc.key)(inner)
			req := httptest.NewRequest("GET", "/v1/portfolios", nil)
			if tc.headerKey != "" {
				req.Header.Set("X-API-Key", tc.headerKey)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
		})
	}
}

func TestHealthzWithoutDB(t *testing.T) {
	h := NewHandler(nil, nil, nil, NewRunCache(1))
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}
