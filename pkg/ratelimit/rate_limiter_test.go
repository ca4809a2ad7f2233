package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg *Config) *RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, cfg)
}

func testConfig() *Config {
	return &Config{
		Enabled:          true,
		WindowDuration:   time.Minute,
		DefaultRequests:  5,
		CatalogRequests:  5,
		CartRequests:     5,
		CheckoutRequests: 2,
		HealthRequests:   5,
	}
}

func TestIsAllowed_BlocksAfterLimit(t *testing.T) {
	rl := newTestLimiter(t, testConfig())
	ctx := context.Background()

	first, err := rl.IsAllowed(ctx, "10.0.0.1", RateLimitTypeCheckout)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := rl.IsAllowed(ctx, "10.0.0.1", RateLimitTypeCheckout)
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := rl.IsAllowed(ctx, "10.0.0.1", RateLimitTypeCheckout)
	require.NoError(t, err)
	assert.False(t, third.Allowed)

	other, err := rl.IsAllowed(ctx, "10.0.0.2", RateLimitTypeCheckout)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestIsAllowed_DisabledAndWhitelisted(t *testing.T) {
	cfg := testConfig()
	cfg.WhitelistedIPs = []string{"127.0.0.1"}
	cfg.CheckoutRequests = 0
	rl := newTestLimiter(t, cfg)

	res, err := rl.IsAllowed(context.Background(), "127.0.0.1", RateLimitTypeCheckout)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	cfg.Enabled = false
	res, err = rl.IsAllowed(context.Background(), "10.0.0.9", RateLimitTypeCheckout)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestGetRateLimitType(t *testing.T) {
	assert.Equal(t, RateLimitTypeHealth, getRateLimitType("/health"))
	assert.Equal(t, RateLimitTypeCheckout, getRateLimitType("/api/v1/checkout"))
	assert.Equal(t, RateLimitTypeCart, getRateLimitType("/api/v1/cart/items/:id"))
	assert.Equal(t, RateLimitTypeCatalog, getRateLimitType("/api/v1/events/:id"))
	assert.Equal(t, RateLimitTypeDefault, getRateLimitType("/api/v1/preferences"))
}

func TestMiddleware_Returns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.CheckoutRequests = 1
	rl := newTestLimiter(t, cfg)

	r := gin.New()
	r.POST("/api/v1/checkout", Middleware(rl), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
		req.RemoteAddr = "10.1.1.1:5555"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
}
