package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For normalising enum values

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Points policies accepted by POINTS_POLICY
const (
	PointsPermissive = "permissive" // Balances may go negative through add_points
	PointsFloor      = "floor"      // Balances are clamped at zero through add_points
)

// Password schemes accepted by PASSWORD_SCHEME
const (
	PasswordPlain  = "plain"  // Stored as given and compared exactly
	PasswordBcrypt = "bcrypt" // Stored as a bcrypt hash
)

// Config holds the application configuration
type Config struct {
	AppPort        string // Application port
	DBUser         string // Database user
	DBPassword     string // Database password
	DBHost         string // Database host
	DBPort         string // Database port
	DBName         string // Database name
	JWTSecret      string // JWT secret key, empty disables tokens
	RedisAddr      string // Redis server address, empty disables caching
	RedisPass      string // Redis password
	RedisDB        int    // Redis database number
	CacheTTL       int    // Cache entry lifetime in seconds
	IsProd         bool   // Is production environment
	AdminEmail     string // Administrator identity
	AdminPassword  string // Administrator secret
	AdminAuth      bool   // Guard /admin routes with an admin token
	PointsPolicy   string // permissive or floor
	PasswordScheme string // plain or bcrypt
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() *Config {
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cacheTTL, err := strconv.Atoi(os.Getenv("CACHE_TTL_SECONDS"))
	if err != nil || cacheTTL <= 0 {
		cacheTTL = 60 // Default cache lifetime
	}
	return &Config{
		AppPort:        getEnv("APP_PORT", "8000"),                             // Application port
		DBUser:         os.Getenv("DB_USER"),                                   // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                               // Database password
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),                         // Database host
		DBPort:         getEnv("DB_PORT", "3306"),                              // Database port
		DBName:         os.Getenv("DB_NAME"),                                   // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),                                // JWT secret key
		RedisAddr:      os.Getenv("REDIS_ADDR"),                                // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                                // Redis password
		RedisDB:        redisDB,                                                // Redis database number
		CacheTTL:       cacheTTL,                                               // Cache lifetime
		IsProd:         os.Getenv("IS_PROD") == "true",                         // Is production environment
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@gmail.com"),               // Administrator identity
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin"),                      // Administrator secret
		AdminAuth:      os.Getenv("ADMIN_AUTH") == "true",                      // Guard admin routes
		PointsPolicy:   pick("POINTS_POLICY", PointsPermissive, PointsFloor),   // Points policy
		PasswordScheme: pick("PASSWORD_SCHEME", PasswordPlain, PasswordBcrypt), // Password scheme
	}
}

// getEnv returns the variable or a fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// pick returns the variable if it is one of the allowed values, otherwise the first (default) one
func pick(key string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return allowed[0]
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	logrus.WithFields(logrus.Fields{
		"key":      key,        // Variable name
		"value":    v,          // Rejected value
		"fallback": allowed[0], // Value used instead
	}).Warn("Unknown configuration value")
	return allowed[0]
}

// DSN returns the MySQL data source name
func (c *Config) DSN() string {
	// clientFoundRows makes UPDATE report matched rows, so a no-change update still counts
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&clientFoundRows=true"
}
