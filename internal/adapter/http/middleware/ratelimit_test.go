package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	redisStore "coinwall/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(t *testing.T, rule RateLimitRule) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := redisStore.NewRateLimitStore(client)

	router := gin.New()
	router.POST("/limited", RateLimiter(store, "wall_post", rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return router, mr
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	router, _ := newRateLimitedRouter(t, RateLimitRule{Limit: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router, _ := newRateLimitedRouter(t, RateLimitRule{Limit: 2, Window: time.Minute})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limited")
}

func TestRateLimiter_DegradesOpenOnRedisFailure(t *testing.T) {
	router, mr := newRateLimitedRouter(t, RateLimitRule{Limit: 1, Window: time.Minute})

	// Kill Redis: the limiter must let traffic through.
	mr.Close()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := DefaultRateLimitRules()

	for _, group := range []string{"wallet_create", "wallet_mutate", "wall_post", "default"} {
		rule, ok := rules[group]
		require.True(t, ok, "missing rule for %s", group)
		assert.Positive(t, rule.Limit)
		assert.Positive(t, rule.Window)
	}
}
