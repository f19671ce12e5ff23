package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth_TokenRoundTrip(t *testing.T) {
	auth := NewJWTAuth("test-secret")

	token, err := auth.GenerateAdminToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if !auth.VerifyAdminToken(token) {
		t.Error("Expected freshly generated token to verify")
	}

	if auth.VerifyAdminToken("not-a-token") {
		t.Error("Expected garbage token to fail verification")
	}

	other := NewJWTAuth("different-secret")
	if other.VerifyAdminToken(token) {
		t.Error("Expected token signed with another secret to fail")
	}
}

func TestJWTAuth_Middleware(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	handler := auth.Middleware(okHandler())

	token, err := auth.GenerateAdminToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid bearer token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"invalid token", "Bearer bogus", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()
	handler := rl.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/track", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/track", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 past the limit, got %d", rr.Code)
	}

	// A different client is unaffected.
	req = httptest.NewRequest(http.MethodPost, "/track", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for a different client, got %d", rr.Code)
	}
}

func TestRateLimiterSetsRetryAfter(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	handler := rl.Middleware(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if i == 0 {
			continue
		}
		if rr.Code != http.StatusTooManyRequests {
			t.Fatalf("Expected 429, got %d", rr.Code)
		}
		secs, err := strconv.Atoi(rr.Header().Get("Retry-After"))
		if err != nil || secs < 1 || secs > 61 {
			t.Errorf("Expected Retry-After within the window, got %q", rr.Header().Get("Retry-After"))
		}
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Now()
	for i := 0; i < 2; i++ {
		if ok, _ := rl.allow("10.0.0.1", now); !ok {
			t.Fatalf("Request %d: expected to fit the budget", i+1)
		}
	}
	if ok, _ := rl.allow("10.0.0.1", now); ok {
		t.Error("Expected denial past the budget")
	}

	// A new window starts once the old one has elapsed.
	if ok, _ := rl.allow("10.0.0.1", now.Add(time.Minute+time.Second)); !ok {
		t.Error("Expected a fresh budget after the window elapsed")
	}
}

func TestRateLimiterPrunesExpiredVisitors(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Now()
	rl.allow("10.0.0.1", now)
	rl.prune(now.Add(2 * time.Minute))

	rl.mu.Lock()
	remaining := len(rl.visitors)
	rl.mu.Unlock()
	if remaining != 0 {
		t.Errorf("Expected expired visitors pruned, %d remain", remaining)
	}
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-ID")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen == "" {
		t.Error("Expected a generated request ID")
	}
	if got := rr.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("Expected response header %q to match request ID %q", got, seen)
	}

	// Client-provided IDs pass through untouched.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-id-1")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "client-id-1" {
		t.Errorf("Expected client-id-1 to pass through, got %q", seen)
	}
}
