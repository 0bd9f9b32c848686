package api

import (
	"kickboard_ledger/internal/config"     // Application configuration
	"kickboard_ledger/internal/ledger"     // Ledger service
	"kickboard_ledger/internal/middleware" // CORS and auth middleware

	"github.com/gin-gonic/gin" // Gin web framework
)

// NewRouter registers every endpoint on a new gin engine
func NewRouter(svc *ledger.Service, cfg *config.Config) *gin.Engine {
	r := gin.New()                      // Gin router instance
	r.Use(gin.Logger(), gin.Recovery()) // Request logging and panic recovery
	r.Use(middleware.CORS())            // Any origin, method and header

	// Auth routes
	r.POST("/signup", SignupHandler(svc))              // Registration endpoint
	r.POST("/login", LoginHandler(svc, cfg.JWTSecret)) // Login endpoint

	// Account routes
	r.GET("/me/:email", ProfileHandler(svc))                 // Profile endpoint
	r.POST("/points/add", AddPointsHandler(svc))             // Points top-up endpoint
	r.POST("/kickboard/buy", BuyKickboardHandler(svc))       // Kickboard purchase endpoint
	r.POST("/kickboard/return", ReturnKickboardHandler(svc)) // Kickboard return endpoint

	// Admin routes
	adminGroup := r.Group("/admin")
	if cfg.AdminAuth {
		// Protect admin routes with JWT and AdminOnly middleware
		adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware())
	}
	adminGroup.GET("/users", ListAccountsHandler(svc)) // List accounts endpoint
	adminGroup.POST("/adjust", AdjustHandler(svc))     // Adjust account endpoint
	adminGroup.POST("/delete", DeleteHandler(svc))     // Delete account endpoint

	return r
}
