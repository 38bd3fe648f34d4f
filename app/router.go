// Package app wires dependencies, middleware and handlers into a router
package app

import (
	"fmt"
	"slices"
	"time"

	"bitwise74/safeglow-api/app/product"
	"bitwise74/safeglow-api/app/root"
	"bitwise74/safeglow-api/app/user"
	"bitwise74/safeglow-api/config"
	"bitwise74/safeglow-api/internal"
	"bitwise74/safeglow-api/internal/search"
	"bitwise74/safeglow-api/internal/service"
	"bitwise74/safeglow-api/internal/store"
	"bitwise74/safeglow-api/pkg/middleware"
	"bitwise74/safeglow-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxBodySize = 1 << 20

// NewDeps builds the handler dependencies around an already opened user store.
// A missing signing secret is a configuration error and fails here.
func NewDeps(cfg *config.Config, users store.UserStore) (*internal.Deps, error) {
	sessions, err := security.NewSessionIssuer(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	searcher := search.NewClient(cfg.SearchEndpoint, cfg.SearchAPIKey, cfg.SearchCX, cfg.SearchTimeout)

	return &internal.Deps{
		Config:      cfg,
		Users:       users,
		Passwords:   security.NewPasswordHasher(),
		Sessions:    sessions,
		Recommender: service.NewRecommender(searcher),
		Mailer:      service.NewMailer(cfg.MailHost, cfg.MailPort, cfg.MailSender, cfg.MailPassword),
		Now:         time.Now,
	}, nil
}

func NewRouter(d *internal.Deps) (*gin.Engine, error) {
	if d.Sessions == nil {
		return nil, fmt.Errorf("failed to build router, %w", security.ErrSecretRequired)
	}

	cfg := d.Config
	router := gin.New()

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	origins := cfg.CORSOrigins

	router.Use(
		cors.New(cors.Config{
			AllowOriginFunc: func(origin string) bool {
				return len(origins) == 0 || slices.Contains(origins, origin)
			},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CSRFHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.URL.Path == "/health"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		// Renders errors before ginzap logs the response status
		middleware.ErrorHandler(cfg.Production()),
		middleware.BodySizeLimiter(maxBodySize),
		middleware.CSRFProtection(d.Sessions, "/api/auth/login", "/api/auth/register"),
	)

	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	session := middleware.RequireSession(d.Sessions)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit,
		Burst:             cfg.RateLimit * 2,
	})

	// GET /health			-> Used to check if the server is alive
	router.GET("/health", root.Health)

	api := router.Group("/api", rateLimiter, middleware.RequireDatabase(d.Users))

	auth := api.Group("/auth")
	{
		// GET /api/auth/exists		-> Checks if an email or username is taken
		auth.GET("/exists", func(c *gin.Context) { user.UserExists(c, d) })

		// GET /api/auth/verify-email	-> Verifies an email address
		auth.GET("/verify-email", func(c *gin.Context) { user.UserVerifyEmail(c, d) })

		// POST /api/auth/register	-> Registers a new user
		auth.POST("/register", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/auth/login		-> Logs in a user and returns a session
		auth.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/auth/logout	-> Clears the session cookies
		auth.POST("/logout", session, func(c *gin.Context) { user.UserLogout(c, d) })
	}

	products := api.Group("/products", session)
	{
		// GET /api/products/recommend	-> Returns classified products for a skin type
		products.GET("/recommend", product.RequireSkinType, cacheFor(cfg), func(c *gin.Context) { product.ProductRecommend(c, d) })
	}

	return router, nil
}

// cacheFor caches responses by request URI in Redis when configured, in
// memory otherwise. A non-positive TTL disables caching.
func cacheFor(cfg *config.Config) gin.HandlerFunc {
	if cfg.CacheTTL <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var store persist.CacheStore
	if cfg.CacheRedisAddr != "" {
		store = persist.NewRedisStore(redis.NewClient(&redis.Options{
			Addr: cfg.CacheRedisAddr,
		}))
	} else {
		store = persist.NewMemoryStore(cfg.CacheTTL)
	}

	return cache.CacheByRequestURI(store, cfg.CacheTTL)
}
