package config

import (
	"fmt"
	"strings"
	"sync"

	"garage-api/core/constants"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Server    ServerConfig
		Database  DatabaseConfig
		Redis     RedisConfig
		RateLimit RateLimitConfig
		SMTP      SMTPConfig
		SMS       SMSConfig
		Billing   BillingConfig
		Logger    LoggerConfig
	}

	ServerConfig struct {
		Host string
		Port int
	}

	DatabaseConfig struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	// RedisConfig backs both the rate-limit counters and the notification
	// queue. An empty Addr means "not configured": the limiter degrades to
	// allow and notifications fall back to log-only.
	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	RateLimitConfig struct {
		BookingLimit  int
		WebhookLimit  int
		WindowSeconds int
	}

	SMTPConfig struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}

	// SMSConfig points at the SMS gateway's send endpoint. Empty URL means
	// SMS sending is disabled.
	SMSConfig struct {
		GatewayURL string
		APIKey     string
		Sender     string
	}

	BillingConfig struct {
		WebhookSecret string
	}

	LoggerConfig struct {
		Level string
	}
)

var (
	mu       sync.RWMutex
	instance *Config
)

// Load reads configuration from the environment (GARAGE_ prefix) with sane
// defaults, caches it for GetSafe, and returns it for explicit injection.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GARAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "garage")
	v.SetDefault("database.sslmode", constants.DatabaseSSLMode)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.bookinglimit", constants.BookingRateLimit)
	v.SetDefault("ratelimit.webhooklimit", constants.WebhookRateLimit)
	v.SetDefault("ratelimit.windowseconds", int(constants.RateLimitWindow.Seconds()))

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("sms.gatewayurl", "")
	v.SetDefault("sms.apikey", "")
	v.SetDefault("sms.sender", "")

	v.SetDefault("billing.webhooksecret", "")

	v.SetDefault("logger.level", "info")

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			BookingLimit:  v.GetInt("ratelimit.bookinglimit"),
			WebhookLimit:  v.GetInt("ratelimit.webhooklimit"),
			WindowSeconds: v.GetInt("ratelimit.windowseconds"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			Username: v.GetString("smtp.username"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
		},
		SMS: SMSConfig{
			GatewayURL: v.GetString("sms.gatewayurl"),
			APIKey:     v.GetString("sms.apikey"),
			Sender:     v.GetString("sms.sender"),
		},
		Billing: BillingConfig{
			WebhookSecret: v.GetString("billing.webhooksecret"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

// GetSafe returns the loaded configuration and whether Load has run.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
