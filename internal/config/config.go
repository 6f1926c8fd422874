package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/turfhub/service-turf/pkg/config"
)

// Event drivers selectable with EVENTS_DRIVER.
const (
	EventsDriverNone     = "none"
	EventsDriverKafka    = "kafka"
	EventsDriverRabbitMQ = "rabbitmq"
)

// BookingConfig holds settings for slot admission.
type BookingConfig struct {
	SlotLockTTL  time.Duration
	SlotLockWait time.Duration
}

// AdminConfig holds the bootstrap administrator credentials.
type AdminConfig struct {
	Email    string
	Password string
}

// ServiceConfig holds all configuration for the turf service.
type ServiceConfig struct {
	Port                   string
	AppEnv                 string
	DBConfig               config.DatabaseConfig
	JWTConfig              config.JWTConfig
	KafkaConfig            config.KafkaConfig
	RabbitMQConfig         config.RabbitMQConfig
	RedisConfig            config.RedisConfig
	BookingConfig          BookingConfig
	AdminConfig            AdminConfig
	EventsDriver           string
	BookingConsumerEnabled bool
	SeedVenues             bool
	BcryptCost             int
	CatalogCacheTTL        time.Duration
	OTLPEndpoint           string
}

// Load reads configuration from environment variables and returns a ServiceConfig.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("turf")
	if err != nil {
		return nil, err
	}

	v.SetDefault("EVENTS_DRIVER", EventsDriverNone)
	v.SetDefault("BOOKING_CONSUMER_ENABLED", false)
	v.SetDefault("SEED_VENUES", true)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("SLOT_LOCK_TTL", "10s")
	v.SetDefault("SLOT_LOCK_WAIT", "3s")
	v.SetDefault("CATALOG_CACHE_TTL", "5m")

	return &ServiceConfig{
		Port:                   config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:                 config.GetAppEnv(v),
		DBConfig:               config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:              config.LoadJWTConfig(v),
		KafkaConfig:            config.LoadKafkaConfig(v),
		RabbitMQConfig:         config.LoadRabbitMQConfig(v),
		RedisConfig:            config.LoadRedisConfig(v),
		BookingConfig:          loadBookingConfig(v),
		AdminConfig:            loadAdminConfig(v),
		EventsDriver:           strings.ToLower(strings.TrimSpace(v.GetString("EVENTS_DRIVER"))),
		BookingConsumerEnabled: v.GetBool("BOOKING_CONSUMER_ENABLED"),
		SeedVenues:             v.GetBool("SEED_VENUES"),
		BcryptCost:             clampCost(v.GetInt("BCRYPT_COST")),
		CatalogCacheTTL:        v.GetDuration("CATALOG_CACHE_TTL"),
		OTLPEndpoint:           v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}

// loadBookingConfig extracts slot lock settings from Viper.
func loadBookingConfig(v *viper.Viper) BookingConfig {
	return BookingConfig{
		SlotLockTTL:  v.GetDuration("SLOT_LOCK_TTL"),
		SlotLockWait: v.GetDuration("SLOT_LOCK_WAIT"),
	}
}

func loadAdminConfig(v *viper.Viper) AdminConfig {
	return AdminConfig{
		Email:    v.GetString("ADMIN_EMAIL"),
		Password: v.GetString("ADMIN_PASSWORD"),
	}
}

func clampCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}
