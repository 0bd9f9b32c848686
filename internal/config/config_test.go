package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "ADMIN_EMAIL", "ADMIN_PASSWORD", "POINTS_POLICY", "PASSWORD_SCHEME", "CACHE_TTL_SECONDS", "ADMIN_AUTH"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	assert.Equal(t, "8000", cfg.AppPort)
	assert.Equal(t, "admin@gmail.com", cfg.AdminEmail)
	assert.Equal(t, "admin", cfg.AdminPassword)
	assert.Equal(t, PointsPermissive, cfg.PointsPolicy)
	assert.Equal(t, PasswordPlain, cfg.PasswordScheme)
	assert.Equal(t, 60, cfg.CacheTTL)
	assert.False(t, cfg.AdminAuth)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("POINTS_POLICY", "FLOOR")
	t.Setenv("PASSWORD_SCHEME", "bcrypt")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("ADMIN_AUTH", "true")
	cfg := FromEnv()
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
	assert.Equal(t, PointsFloor, cfg.PointsPolicy)
	assert.Equal(t, PasswordBcrypt, cfg.PasswordScheme)
	assert.Equal(t, 5, cfg.CacheTTL)
	assert.True(t, cfg.AdminAuth)
}

func TestFromEnv_UnknownPolicyFallsBack(t *testing.T) {
	t.Setenv("POINTS_POLICY", "generous")
	t.Setenv("PASSWORD_SCHEME", "md5")
	cfg := FromEnv()
	assert.Equal(t, PointsPermissive, cfg.PointsPolicy)
	assert.Equal(t, PasswordPlain, cfg.PasswordScheme)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBName: "ledger"}
	assert.Equal(t, "u:p@tcp(db:3306)/ledger?parseTime=true&clientFoundRows=true", cfg.DSN())
}
