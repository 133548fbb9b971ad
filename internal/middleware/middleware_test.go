package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contactdesk/contactdesk-go/internal/crypto"
)

func okHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAPIKey_MissingKey(t *testing.T) {
	next, called := okHandler(t)
	rec := httptest.NewRecorder()

	APIKey("secret-key")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contacts", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
	require.JSONEq(t,
		`{"errorMessage":"You need to provide a valid \"apiKey\" query parameter to access this route"}`,
		rec.Body.String())
}

func TestAPIKey_WrongKey(t *testing.T) {
	next, called := okHandler(t)
	rec := httptest.NewRecorder()

	APIKey("secret-key")(next).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/contacts?apiKey=guess", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestAPIKey_ValidKey(t *testing.T) {
	next, called := okHandler(t)
	rec := httptest.NewRecorder()

	APIKey("secret-key")(next).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/contacts?apiKey=secret-key", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
}

func TestRequireJSONBody_EmptyObject(t *testing.T) {
	next, called := okHandler(t)
	rec := httptest.NewRecorder()

	RequireJSONBody(next).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, *called)
	require.JSONEq(t,
		`{"errorMessage":"Calling this route with an empty request body (JSON) is a no-op."}`,
		rec.Body.String())
}

func TestRequireJSONBody_NoBody(t *testing.T) {
	next, called := okHandler(t)
	rec := httptest.NewRecorder()

	RequireJSONBody(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contacts", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, *called)
}

func TestRequireJSONBody_NotAnObject(t *testing.T) {
	next, called := okHandler(t)
	rec := httptest.NewRecorder()

	RequireJSONBody(next).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(`[1,2,3]`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, *called)
}

func TestRequireJSONBody_RestoresBodyDownstream(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(body)
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()

	RequireJSONBody(next).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(`{"first_name":"Jane"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"first_name":"Jane"}`, seen)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tokens := crypto.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Issue(42)
	require.NoError(t, err)

	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		gotID = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTAuth(tokens)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(42), gotID)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	tokens := crypto.NewTokenManager("test-secret", time.Hour)
	next, called := okHandler(t)
	rec := httptest.NewRecorder()

	JWTAuth(tokens)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	tokens := crypto.NewTokenManager("test-secret", time.Hour)
	next, called := okHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()

	JWTAuth(tokens)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestJWTAuth_TokenFromOtherSecret(t *testing.T) {
	other := crypto.NewTokenManager("other-secret", time.Hour)
	token, err := other.Issue(42)
	require.NoError(t, err)

	tokens := crypto.NewTokenManager("test-secret", time.Hour)
	next, called := okHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTAuth(tokens)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	next, _ := okHandler(t)
	limited := RateLimit(1, 2)(next)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SweepsStaleVisitors(t *testing.T) {
	rl := newIPRateLimiter(1, 1)

	rl.getLimiter("10.0.0.1")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-visitorTTL - time.Minute)
	rl.lastSweep = time.Now().Add(-sweepInterval - time.Second)

	rl.getLimiter("10.0.0.2")

	require.NotContains(t, rl.visitors, "10.0.0.1")
	require.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiter_SweepKeepsActiveVisitors(t *testing.T) {
	rl := newIPRateLimiter(1, 1)

	rl.getLimiter("10.0.0.1")
	rl.lastSweep = time.Now().Add(-sweepInterval - time.Second)

	rl.getLimiter("10.0.0.2")

	require.Contains(t, rl.visitors, "10.0.0.1")
	require.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimit_PerIPIsolation(t *testing.T) {
	next, _ := okHandler(t)
	limited := RateLimit(1, 1)(next)

	first := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	first.RemoteAddr = "10.0.0.1:54321"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	second.RemoteAddr = "10.0.0.2:54321"
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, second)
	require.Equal(t, http.StatusOK, rec.Code)
}
