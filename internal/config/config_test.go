package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "turf_db", cfg.DBConfig.DBName)
	assert.Equal(t, EventsDriverNone, cfg.EventsDriver)
	assert.True(t, cfg.SeedVenues)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.BookingConfig.SlotLockTTL)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.False(t, cfg.RedisConfig.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EVENTS_DRIVER", " RabbitMQ ")
	t.Setenv("BCRYPT_COST", "99")
	t.Setenv("SEED_VENUES", "false")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("SLOT_LOCK_WAIT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EventsDriverRabbitMQ, cfg.EventsDriver)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.False(t, cfg.SeedVenues)
	assert.Equal(t, "admin@example.com", cfg.AdminConfig.Email)
	assert.Equal(t, 250*time.Millisecond, cfg.BookingConfig.SlotLockWait)
}
