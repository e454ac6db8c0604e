package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/smile-care-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type adminFunc func(ctx context.Context, email string) (bool, error)

func (f adminFunc) IsAdmin(ctx context.Context, email string) (bool, error) {
	return f(ctx, email)
}

func newIssuer(t *testing.T) *utils.TokenIssuer {
	issuer, err := utils.NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	return issuer
}

func protectedRouter(issuer *utils.TokenIssuer, admin AdminChecker, reached *bool) *gin.Engine {
	r := gin.New()
	chain := []gin.HandlerFunc{AuthMiddleware(issuer)}
	if admin != nil {
		chain = append(chain, AdminOnly(admin, time.Second))
	}
	chain = append(chain, func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(EmailKey)})
	})
	r.GET("/private", chain...)
	return r
}

func doGet(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_NoCredential(t *testing.T) {
	reached := false
	r := protectedRouter(newIssuer(t), nil, &reached)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc"} {
		w := doGet(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
	assert.False(t, reached)
}

func TestAuthMiddleware_InvalidCredential(t *testing.T) {
	reached := false
	issuer := newIssuer(t)
	r := protectedRouter(issuer, nil, &reached)

	other, _ := utils.NewTokenIssuer("other-secret", time.Hour)
	forged, err := other.Issue("a@x.com")
	require.NoError(t, err)

	expiredIssuer, _ := utils.NewTokenIssuer("secret", time.Hour)
	expiredIssuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	expired, err := expiredIssuer.Issue("a@x.com")
	require.NoError(t, err)

	for _, tok := range []string{"garbage", forged, expired} {
		w := doGet(r, "Bearer "+tok)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"forbidden access"}`, w.Body.String())
	}
	assert.False(t, reached)
}

func TestAuthMiddleware_ValidCredential(t *testing.T) {
	reached := false
	issuer := newIssuer(t)
	r := protectedRouter(issuer, nil, &reached)

	tok, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"a@x.com"}`, w.Body.String())
	assert.True(t, reached)
}

func TestAdminOnly_HaltsForNonAdmin(t *testing.T) {
	reached := false
	issuer := newIssuer(t)
	var askedFor string
	r := protectedRouter(issuer, adminFunc(func(ctx context.Context, email string) (bool, error) {
		askedFor = email
		return false, nil
	}), &reached)

	tok, _ := issuer.Issue("a@x.com")
	w := doGet(r, "Bearer "+tok)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "a@x.com", askedFor)
	assert.False(t, reached, "handler must not run after a failed admin check")
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	reached := false
	issuer := newIssuer(t)
	r := protectedRouter(issuer, adminFunc(func(ctx context.Context, email string) (bool, error) {
		return true, nil
	}), &reached)

	tok, _ := issuer.Issue("admin@x.com")
	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

func TestAdminOnly_LookupFailure(t *testing.T) {
	reached := false
	issuer := newIssuer(t)
	r := protectedRouter(issuer, adminFunc(func(ctx context.Context, email string) (bool, error) {
		return false, errors.New("mongo down")
	}), &reached)

	tok, _ := issuer.Issue("a@x.com")
	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, reached)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(2).Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)), ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	assert.Equal(t, 1, logs.FilterMessage("unhandled panic").Len())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
	handled := logs.FilterMessage("request handled").All()
	require.Len(t, handled, 1)
	assert.Equal(t, "req-42", handled[0].ContextMap()["requestId"])
}

func TestAdminOnly_LookupIsBounded(t *testing.T) {
	reached := false
	issuer := newIssuer(t)
	var deadline time.Time
	var hasDeadline bool
	r := gin.New()
	r.GET("/private", AuthMiddleware(issuer), AdminOnly(adminFunc(func(ctx context.Context, email string) (bool, error) {
		deadline, hasDeadline = ctx.Deadline()
		<-ctx.Done()
		return false, ctx.Err()
	}), 20*time.Millisecond), func(c *gin.Context) {
		reached = true
	})

	tok, _ := issuer.Issue("a@x.com")
	start := time.Now()
	w := doGet(r, "Bearer "+tok)

	require.True(t, hasDeadline)
	assert.WithinDuration(t, start.Add(20*time.Millisecond), deadline, time.Second)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, reached)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(10)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	limiter.get("192.0.2.1")
	limiter.get("192.0.2.2")
	assert.Equal(t, 2, limiter.size())

	now = now.Add(limiterIdleTTL / 2)
	limiter.get("192.0.2.2")

	now = now.Add(limiterIdleTTL / 2)
	limiter.get("192.0.2.3")
	assert.Equal(t, 2, limiter.size(), "192.0.2.1 has been idle for the full TTL")

	now = now.Add(2 * limiterIdleTTL)
	limiter.get("192.0.2.4")
	assert.Equal(t, 1, limiter.size())
}
