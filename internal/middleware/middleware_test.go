package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/sqlgallery/internal/middleware"
)

func echoRequestID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(middleware.GetRequestID(r.Context())))
	})
}

func TestRequestID_Generated(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.RequestID(echoRequestID()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(middleware.RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, rec.Body.String())
}

func TestRequestID_PropagatedAndSanitized(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	middleware.RequestID(echoRequestID()).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "bad id<script>")
	rec = httptest.NewRecorder()
	middleware.RequestID(echoRequestID()).ServeHTTP(rec, req)
	assert.NotEqual(t, "bad id<script>", rec.Body.String())
	assert.NotEmpty(t, rec.Body.String())
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := middleware.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestLogging_RecoversPanic(t *testing.T) {
	h := middleware.Logging(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestLogging_PassesStatusThrough(t *testing.T) {
	h := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRateLimiter_BurstThen429(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.NewRateLimiter(middleware.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}).Limit(ok)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "other clients keep their own bucket")
}

func TestRateLimiter_ForwardedForFromUntrustedPeerIgnored(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.NewRateLimiter(middleware.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}).Limit(ok)

	// Rotating the header from one peer does not mint fresh buckets.
	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.4:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "request %d", i)
	}
}

func TestRateLimiter_ForwardedForFromTrustedPeerHonoured(t *testing.T) {
	proxies, err := middleware.ParseTrustedProxies("10.0.0.0/8")
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: 0.001,
		Burst:             1,
		TrustedProxies:    proxies,
	}).Limit(ok)

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:10000"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.7, 10.0.0.9"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7"))
	// A different client behind the same proxy has its own bucket.
	assert.Equal(t, http.StatusOK, send("203.0.113.8"))
}

func TestParseTrustedProxies(t *testing.T) {
	proxies, err := middleware.ParseTrustedProxies(" 10.0.0.0/8, 2001:db8::/32 ,")
	require.NoError(t, err)
	require.Len(t, proxies.CIDRs, 2)

	assert.True(t, proxies.IsTrusted("10.1.2.3:80"))
	assert.True(t, proxies.IsTrusted("[2001:db8::1]:443"))
	assert.False(t, proxies.IsTrusted("192.0.2.1:80"))
	assert.False(t, proxies.IsTrusted("not-an-addr"))

	empty, err := middleware.ParseTrustedProxies("")
	require.NoError(t, err)
	assert.False(t, empty.IsTrusted("10.1.2.3:80"))

	var none *middleware.TrustedProxyConfig
	assert.False(t, none.IsTrusted("10.1.2.3:80"))

	_, err = middleware.ParseTrustedProxies("10.0.0.0/8,bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bogus"`)
}

func TestRateLimiter_Disabled(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.NewRateLimiter(middleware.RateLimitConfig{}).Limit(ok)

	for range 50 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
