package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type memoryLimiterStore struct {
	counts map[string]int64
}

func newMemoryLimiterStore() *memoryLimiterStore {
	return &memoryLimiterStore{counts: map[string]int64{}}
}

func (s *memoryLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func postLogin(handler http.Handler, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitPerIP(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		if rec := postLogin(handler, "10.0.0.1", "{}"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if rec := postLogin(handler, "10.0.0.1", "{}"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over the limit, got %d", rec.Code)
	}

	// Another IP has its own counter.
	if rec := postLogin(handler, "10.0.0.2", "{}"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for fresh ip, got %d", rec.Code)
	}
}

func TestAuthRateLimitPerEmail(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	body := `{"email":"Dana@Example.com"}`
	if rec := postLogin(handler, "10.0.0.1", body); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// Case-insensitive: the normalized address shares the counter.
	if rec := postLogin(handler, "10.0.0.3", `{"email":"dana@example.com"}`); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same email, got %d", rec.Code)
	}
	if rec := postLogin(handler, "10.0.0.1", `{"email":"other@example.com"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for different email, got %d", rec.Code)
	}
}

func TestAuthRateLimitDisabledWithoutStore(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 1, 1)
	handler := AuthRateLimit(policy, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		if rec := postLogin(handler, "10.0.0.1", "{}"); rec.Code != http.StatusOK {
			t.Fatalf("expected passthrough without store, got %d", rec.Code)
		}
	}
}
