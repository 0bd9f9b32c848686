package main

import (
	"context"                          // context package is needed for Redis operations
	"kickboard_ledger/internal/api"    // Custom package for API handlers
	"kickboard_ledger/internal/config" // Custom package for configuration
	"kickboard_ledger/internal/db"     // Custom package for database access
	"kickboard_ledger/internal/ledger" // Custom package for the ledger service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Connect to the database and make sure the schema exists
	conn, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Setup Redis client when an address is configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Info("REDIS_ADDR not set, caching disabled")
	}

	if cfg.AdminAuth && cfg.JWTSecret == "" {
		logrus.Fatal("ADMIN_AUTH requires JWT_SECRET")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := ledger.NewService(conn, ledger.OptionsFromConfig(cfg, redisClient)) // Ledger service
	r := api.NewRouter(svc, cfg)                                                // Gin router with every route

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":            cfg.AppPort,        // Listening port
		"points_policy":   cfg.PointsPolicy,   // Points policy
		"password_scheme": cfg.PasswordScheme, // Password scheme
		"admin_auth":      cfg.AdminAuth,      // Admin routes guarded
		"cache":           redisClient != nil, // Redis cache enabled
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
