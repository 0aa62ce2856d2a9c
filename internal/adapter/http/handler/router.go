package handler

import (
	"coinwall/internal/adapter/http/middleware"
	redisStore "coinwall/internal/adapter/storage/redis"
	"coinwall/internal/adapter/stream"
	"coinwall/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	WallSvc        ports.WallService
	Hub            *stream.Hub                // nil = live stream disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(64 << 10)) // 64 KB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			rule = rules["default"]
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Ledger ---
	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallet := r.Group("/wallet")
	{
		wallet.POST("", rl("wallet_create"), walletHandler.CreateOrUpsert)
		wallet.POST("/create", rl("wallet_create"), walletHandler.Generate)
		wallet.POST("/import", rl("wallet_create"), walletHandler.Import)
		wallet.GET("/:id", rl("default"), walletHandler.GetByID)
		wallet.GET("/address/:address", rl("default"), walletHandler.GetByAddress)
		wallet.POST("/:id/award", rl("wallet_mutate"), walletHandler.Award)
		wallet.POST("/:id/spend", rl("wallet_mutate"), walletHandler.Spend)
		wallet.GET("/:id/history", rl("default"), walletHandler.History)
	}

	// --- Wall ---
	wallHandler := NewWallHandler(deps.WallSvc, deps.Hub)
	wall := r.Group("/wall")
	{
		wall.GET("", rl("default"), wallHandler.List)
		wall.POST("", rl("wall_post"), wallHandler.Post)
		wall.GET("/stream", wallHandler.Stream)
	}

	return r
}
