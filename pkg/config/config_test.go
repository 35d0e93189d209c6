package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1440, cfg.JWT.Expiration, "el token dura 24h por defecto")
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Seed.DefaultAdmin, "la siembra del admin es opt-in")
	assert.True(t, cfg.DB.Migrate)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_MINUTES", "30")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("SEED_DEFAULT_ADMIN", "true")
	t.Setenv("ADMIN_PASSWORD", "cambiar-ya")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.JWT.Expiration)
	assert.Equal(t, 5, cfg.RateLimit.Max)
	assert.True(t, cfg.Seed.DefaultAdmin)
	assert.Equal(t, "cambiar-ya", cfg.Seed.Password)
}

func TestValidate_SinSecret(t *testing.T) {
	cfg := &Config{
		JWT:       JWTConfig{Expiration: 60},
		RateLimit: RateLimitConfig{Max: 1, Window: time.Minute},
	}
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
}

func TestValidate_SeedSinPassword(t *testing.T) {
	cfg := &Config{
		JWT:       JWTConfig{Secret: "x", Expiration: 60},
		RateLimit: RateLimitConfig{Max: 1, Window: time.Minute},
		Seed:      SeedConfig{DefaultAdmin: true},
	}
	assert.ErrorContains(t, cfg.Validate(), "ADMIN_PASSWORD")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "mida", Password: "p@ss", DBName: "quimicos", SSLMode: "disable"}
	assert.Equal(t, "postgres://mida:p%40ss@db:5432/quimicos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
