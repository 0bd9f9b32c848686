package middleware

import (
	"time" // Preflight cache duration

	"github.com/gin-contrib/cors" // CORS middleware for Gin
	"github.com/gin-gonic/gin"    // Gin web framework
)

// CORS allows cross-origin requests from any origin, with any method and header
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,                                                                   // Any origin
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}, // Any method
		AllowHeaders:    []string{"*"},                                                          // Any header
		MaxAge:          12 * time.Hour,                                                         // Preflight cache
	})
}
