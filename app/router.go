// Package app wires the dispatcher: every named operation is routed to
// its account handler with the shared dependencies threaded through
package app

import (
	"strings"
	"time"

	"bitwise74/account-api/app/account"
	"bitwise74/account-api/app/root"
	"bitwise74/account-api/db"
	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/service"
	"bitwise74/account-api/internal/storage"
	"bitwise74/account-api/pkg/middleware"
	"bitwise74/account-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"
	"github.com/go-redis/redis/v8"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	d := &internal.Deps{
		Argon:  security.NewArgon(),
		Tokens: security.NewTokenMaker(viper.GetString("jwt.secret")),
	}

	conn, err := db.New()
	if err != nil {
		return nil, err
	}
	d.DB = conn

	pictures, err := newPictureStore()
	if err != nil {
		return nil, err
	}
	d.Pictures = pictures

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(d.Tokens)
	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	store := newCacheStore()

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		m.GET("/validate", jwt, root.Validate)
	}

	u := m.Group("/users")
	{
		body := middleware.BodySizeLimiter(1 << 20)

		// GET /api/users		-> Lists users, newest first
		u.GET("", cacheFor(store, 30), func(c *gin.Context) { account.List(c, d) })

		// GET /api/users/search	-> Searches users by name, username or email
		u.GET("/search", cacheFor(store, 15), func(c *gin.Context) { account.Search(c, d) })

		// GET /api/users/me		-> Returns the authenticated user
		u.GET("/me", jwt, func(c *gin.Context) { account.Me(c, d) })

		// GET /api/users/:id		-> Returns a user by ID
		u.GET("/:id", func(c *gin.Context) { account.Fetch(c, d) })

		// POST /api/users 		-> Registers a new user
		u.POST("", body, func(c *gin.Context) { account.Register(c, d) })

		// POST /api/users/login 	-> Logs in a user and returns a JWT token
		u.POST("/login", body, func(c *gin.Context) { account.Login(c, d) })

		// POST /api/users/logout	-> Advisory logout, drops the cookies
		u.POST("/logout", account.Logout)

		// PATCH /api/users/me		-> Partially updates the profile
		u.PATCH("/me", jwt, body, func(c *gin.Context) { account.UpdateProfile(c, d) })

		// PUT /api/users/me/password	-> Changes the password
		u.PUT("/me/password", jwt, body, func(c *gin.Context) { account.ChangePassword(c, d) })

		// POST /api/users/me/picture	-> Uploads a profile picture
		u.POST("/me/picture", jwt, middleware.BodySizeLimiter(5<<20), func(c *gin.Context) { account.UploadPicture(c, d) })

		// POST /api/users/password/forgot -> Issues a password reset token
		u.POST("/password/forgot", body, func(c *gin.Context) { account.ForgotPassword(c, d) })

		// POST /api/users/password/reset  -> Consumes a reset token
		u.POST("/password/reset", body, func(c *gin.Context) { account.ResetPassword(c, d) })
	}

	// Check for stale reset tokens rarely, they expire after an hour anyway
	service.ResetTokenCleanup(time.Hour, d.DB, d.Tokens)

	return router, nil
}

func newPictureStore() (storage.Store, error) {
	if viper.GetString("storage.type") == "s3" {
		return storage.NewS3()
	}

	var s string
	if viper.GetBool("host.ssl.enabled") {
		s = "s"
	}

	baseURL := "http" + s + "://" + viper.GetString("host.domain") + "/pictures"
	return storage.NewLocal(viper.GetString("storage.local_path"), baseURL)
}

func newCacheStore() persist.CacheStore {
	if addr := viper.GetString("cache.redis_addr"); addr != "" {
		return persist.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}))
	}

	return persist.NewMemoryStore(time.Minute)
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel())
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func logLevel() zapcore.Level {
	switch strings.ToLower(viper.GetString("app.log_level")) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func cacheFor(store persist.CacheStore, sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
