package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_BurstThenReject(t *testing.T) {
	t.Parallel()

	l := New(Config{RequestsPerSecond: 1, Burst: 3, IdleTTL: time.Minute})
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.Truef(t, l.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "one token refilled after a second")
}

func TestLimiter_SweepsIdleClients(t *testing.T) {
	t.Parallel()

	l := New(Config{RequestsPerSecond: 5, Burst: 5, IdleTTL: time.Minute})
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	l.Allow("a")
	l.Allow("b")
	require.Equal(t, 2, l.Clients())

	now = now.Add(2 * time.Minute)
	l.Allow("c")
	assert.Equal(t, 1, l.Clients())
}

func TestLimiter_Middleware(t *testing.T) {
	t.Parallel()

	l := New(Config{RequestsPerSecond: 0.001, Burst: 1})
	reject := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := l.Middleware(reject)(ok)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestClientKey(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	assert.Equal(t, "198.51.100.7", ClientKey(req))

	req.RemoteAddr = "not-an-addr"
	assert.Equal(t, "not-an-addr", ClientKey(req))
}
