package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garage-api/core/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIdentity(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded-for single", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"forwarded-for chain takes first", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2"}, "203.0.113.7"},
		{"forwarded-for with spaces", map[string]string{"X-Forwarded-For": "  203.0.113.7 , 10.0.0.1"}, "203.0.113.7"},
		{"real-ip fallback", map[string]string{"X-Real-Ip": "198.51.100.4"}, "198.51.100.4"},
		{"forwarded-for wins over real-ip", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-Ip": "198.51.100.4"}, "203.0.113.7"},
		{"no headers", nil, "unknown"},
		{"empty forwarded-for falls through", map[string]string{"X-Forwarded-For": "  "}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIdentity(req))
		})
	}
}

// countingStore always reports a fixed count so middleware behavior can be
// pinned without timing.
type countingStore struct {
	count  int64
	oldest time.Time
}

func (s *countingStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	return s.count, s.oldest, nil
}

func doRequest(t *testing.T, mw *Middleware) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/booking/:slug/slots", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, mw.RateLimit("booking"))

	req := httptest.NewRequest(http.MethodGet, "/booking/acme/slots", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_AllowedSetsHeaders(t *testing.T) {
	store := &countingStore{count: 3, oldest: time.Now()}
	limiter := ratelimit.NewLimiter(store, ratelimit.Class{Name: "booking", Limit: 10, Window: time.Minute})

	rec := doRequest(t, NewMiddleware(limiter))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "7", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimit_BlockedReturns429(t *testing.T) {
	store := &countingStore{count: 11, oldest: time.Now()}
	limiter := ratelimit.NewLimiter(store, ratelimit.Class{Name: "booking", Limit: 10, Window: time.Minute})

	rec := doRequest(t, NewMiddleware(limiter))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimit_UnconfiguredBackendAllows(t *testing.T) {
	limiter := ratelimit.NewLimiter(nil, ratelimit.Class{Name: "booking", Limit: 10, Window: time.Minute})

	rec := doRequest(t, NewMiddleware(limiter))

	assert.Equal(t, http.StatusOK, rec.Code)
}
