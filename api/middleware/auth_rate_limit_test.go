package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

type fakeLimiterStore struct {
	counts map[string]int64
	err    error
}

func (s *fakeLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func rateLimitFixture(policy AuthRateLimitPolicy, store *fakeLimiterStore) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return AuthRateLimit(policy, store, logg)(next)
}

func TestAuthRateLimitBlocksIPOverLimit(t *testing.T) {
	store := &fakeLimiterStore{}
	handler := rateLimitFixture(NewAuthRateLimitPolicy("login", time.Minute, 2, 0), store)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.7:4000"
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestAuthRateLimitCountsEmailAcrossIPs(t *testing.T) {
	store := &fakeLimiterStore{}
	handler := rateLimitFixture(NewAuthRateLimitPolicy("login", time.Minute, 0, 1), store)

	send := func(remote string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"Target@Example.PK"}`))
		req.RemoteAddr = remote
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send("198.51.100.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.2:1000").Code)
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := &fakeLimiterStore{}
	handler := rateLimitFixture(NewAuthRateLimitPolicy("login", 0, 0, 0), store)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Empty(t, store.counts)
}

func TestAuthRateLimitPreservesBodyForHandler(t *testing.T) {
	store := &fakeLimiterStore{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = string(body)
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthRateLimit(NewAuthRateLimitPolicy("login", time.Minute, 0, 5), store, logg)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.pk"}`)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, `{"email":"a@b.pk"}`, seen)
}
