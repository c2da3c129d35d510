package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- safeEqual tests ---

func TestSafeEqual_Match(t *testing.T) {
	assert.True(t, safeEqual("secret", "secret"))
}

func TestSafeEqual_Mismatch(t *testing.T) {
	assert.False(t, safeEqual("secret", "wrong"))
}

func TestSafeEqual_SingleCharDifference(t *testing.T) {
	assert.False(t, safeEqual("secret-token", "secret-tokeM"))
}

func TestSafeEqual_DifferentLengths(t *testing.T) {
	assert.False(t, safeEqual("short", "longer-string"))
}

func TestSafeEqual_BothEmpty(t *testing.T) {
	assert.True(t, safeEqual("", ""))
}

func TestSafeEqual_OneEmpty(t *testing.T) {
	assert.False(t, safeEqual("secret", ""))
	assert.False(t, safeEqual("", "secret"))
}

// --- bearerToken tests ---

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer my-token")

	token, ok := bearerToken(r)
	assert.True(t, ok)
	assert.Equal(t, "my-token", token)
}

func TestBearerToken_Missing(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, ok := bearerToken(r)
	assert.False(t, ok)
}

func TestBearerToken_WrongScheme(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	_, ok := bearerToken(r)
	assert.False(t, ok)
}

func TestBearerToken_EmptyToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer ")
	_, ok := bearerToken(r)
	assert.False(t, ok)
}

// --- requireAuth tests ---

func TestRequireAuth_ValidToken(t *testing.T) {
	srv, _ := newTestServer(t)

	called := false
	handler := srv.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("GET", "/ai/config/biz-1", nil)
	r.Header.Set("Authorization", "Bearer "+testToken)
	rr := httptest.NewRecorder()
	handler(rr, r)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	srv, _ := newTestServer(t)

	handler := srv.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	})

	r := httptest.NewRequest("GET", "/ai/config/biz-1", nil)
	r.Header.Set("Authorization", "Bearer wrong")
	rr := httptest.NewRecorder()
	handler(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid token")
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	handler := srv.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})

	r := httptest.NewRequest("GET", "/ai/config/biz-1", nil)
	rr := httptest.NewRecorder()
	handler(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "missing bearer token")
}

func TestRequireAuth_UnconfiguredToken(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.cfg.Auth.ServiceToken = ""

	handler := srv.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the server has no token")
	})

	r := httptest.NewRequest("GET", "/ai/config/biz-1", nil)
	r.Header.Set("Authorization", "Bearer anything")
	rr := httptest.NewRecorder()
	handler(rr, r)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

// --- authRateLimiter tests ---

func TestAuthRateLimiter_AllowInitial(t *testing.T) {
	limiter := newAuthRateLimiter()
	assert.True(t, limiter.allow("192.168.1.1:12345"))
}

func TestAuthRateLimiter_AllowAfterFewFailures(t *testing.T) {
	limiter := newAuthRateLimiter()

	for i := 0; i < 5; i++ {
		limiter.recordFailure("192.168.1.1:12345")
	}
	assert.True(t, limiter.allow("192.168.1.1:12345"))
}

func TestAuthRateLimiter_BlockAfterMaxFailures(t *testing.T) {
	limiter := newAuthRateLimiter()

	for i := 0; i < authRateMaxFails; i++ {
		limiter.recordFailure("192.168.1.1:12345")
	}
	assert.False(t, limiter.allow("192.168.1.1:12345"))
}

func TestAuthRateLimiter_DifferentIPs(t *testing.T) {
	limiter := newAuthRateLimiter()

	for i := 0; i < authRateMaxFails; i++ {
		limiter.recordFailure("192.168.1.1:12345")
	}

	// Different IP should still be allowed
	assert.True(t, limiter.allow("192.168.1.2:12345"))
}

func TestAuthRateLimiter_IPWithoutPort(t *testing.T) {
	limiter := newAuthRateLimiter()

	for i := 0; i < authRateMaxFails; i++ {
		limiter.recordFailure("192.168.1.1")
	}
	assert.False(t, limiter.allow("192.168.1.1"))
}

func TestRequireAuth_ThrottlesRepeatedFailures(t *testing.T) {
	_, h := newTestServer(t)

	// Exhaust the failure budget with bad tokens from one client.
	for i := 0; i < authRateMaxFails; i++ {
		r := httptest.NewRequest("GET", "/ai/config/biz-1", nil)
		r.Header.Set("Authorization", "Bearer wrong")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "attempt %d", i)
	}

	// Even a valid token is throttled once the budget is spent.
	for _, token := range []string{"wrong", testToken} {
		r := httptest.NewRequest("GET", "/ai/config/biz-1", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	}
}
