package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	DB        DatabaseConfig
	App       AppConfig
	Logger    LoggerConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds configuration for the database
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LogLevel        string
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	HTTPPort        string
	ShutdownTimeout time.Duration
	Environment     string
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string
	Format           string
	OutputPath       string
	SlowQuerySeconds float64
	EnableSampling   bool
	ServiceName      string
	ServiceVersion   string
	MaxSizeMB        int
	MaxBackups       int
	MaxAgeDays       int
}

// RedisConfig holds configuration for the optional redis connection
type RedisConfig struct {
	Enabled     bool
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
}

// CacheConfig controls the document cache in front of the store
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// RateLimitConfig controls the per-client token bucket
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// LoadConfig reads configuration from path/app.env and environment
// variables, environment taking precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // app.env
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DB: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			SQLitePath:      v.GetString("SQLITE_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		App: AppConfig{
			HTTPPort:        v.GetString("HTTP_PORT"),
			ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
			Environment:     v.GetString("APP_ENV"),
		},
		Logger: LoggerConfig{
			Level:            v.GetString("LOG_LEVEL"),
			Format:           v.GetString("LOG_FORMAT"),
			OutputPath:       v.GetString("LOG_OUTPUT_PATH"),
			SlowQuerySeconds: v.GetFloat64("LOG_SLOW_QUERY_SECONDS"),
			EnableSampling:   v.GetBool("LOG_ENABLE_SAMPLING"),
			ServiceName:      v.GetString("SERVICE_NAME"),
			ServiceVersion:   v.GetString("SERVICE_VERSION"),
			MaxSizeMB:        v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups:       v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays:       v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Redis: RedisConfig{
			Enabled:     v.GetBool("REDIS_ENABLED"),
			Host:        v.GetString("REDIS_HOST"),
			Port:        v.GetString("REDIS_PORT"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			MaxRetries:  v.GetInt("REDIS_MAX_RETRIES"),
			PoolSize:    v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConn: v.GetInt("REDIS_MIN_IDLE_CONN"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("CACHE_ENABLED"),
			TTL:     v.GetDuration("CACHE_TTL"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "quiz_service")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "quiz.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("APP_ENV", "development")

	// Logger defaults depend on the environment
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("SERVICE_NAME", "quiz-service")
	v.SetDefault("SERVICE_VERSION", "1.0.0")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONN", 2)

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
}

// Validate reports the first configuration error found.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.Port == "" {
			return errors.New("DB_HOST and DB_PORT are required for the postgres driver")
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.MaxOpenConns <= 0 || c.DB.MaxIdleConns < 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be positive and DB_MAX_IDLE_CONNS non-negative")
	}
	if c.App.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	if c.App.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}

	if c.Redis.Enabled && c.Redis.PoolSize <= 0 {
		return errors.New("REDIS_POOL_SIZE must be positive")
	}
	if c.Cache.Enabled {
		if !c.Redis.Enabled {
			return errors.New("CACHE_ENABLED requires REDIS_ENABLED")
		}
		if c.Cache.TTL <= 0 {
			return errors.New("CACHE_TTL must be positive")
		}
	}
	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return errors.New("RATE_LIMIT_ENABLED requires REDIS_ENABLED")
		}
		if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
			return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
		}
	}
	return nil
}

// DSN returns the PostgreSQL Data Source Name
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}
