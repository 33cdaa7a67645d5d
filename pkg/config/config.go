package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	Redis    RedisConfig
	CORS     CORSConfig
	SMTP     SMTPConfig
	GA4      GA4Config
	Platform PlatformConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type JWTConfig struct {
	SecretKey     string // signing key
	TokenDuration string // token lifetime, e.g. "24h"
}

type LogConfig struct {
	Level      string
	FilePath   string
	MaxSize    int // MB
	MaxBackups int // rotated files to keep
	MaxAge     int // days to keep
	Compress   bool
	Format     string // json or text
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string // key prefix for rate limits and pub/sub channels
}

type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int // preflight cache, hours
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	UseTLS    bool
}

type GA4Config struct {
	MeasurementID string
	APISecret     string
	Environment   string
}

type PlatformConfig struct {
	OwnerEmails            []string // platform owner accounts, lowercase
	ElevatedWindowSeconds  int      // how long an elevated console session lasts
	LoginRateLimitPerMin   int      // failed-login attempts allowed per minute
	RenewalReminderDays    int      // remind when current_period_end is this close
	LowStockThreshold      int      // dashboard low-stock cutoff
	TrialDays              int      // default trial length for new tenants
}

// defaults kept intentionally unusable in release mode, see Validate
const (
	devJWTSecret  = "dev-only-change-me"
	devDBPassword = ""
)

var (
	globalConfig *Config
	once         sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		var err error
		globalConfig, err = LoadConfig()
		if err != nil {
			panic("Failed to load config: " + err.Error())
		}
	})
	return globalConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true"
	}
	return defaultValue
}

// comma separated, whitespace trimmed
func getEnvAsStringArray(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Mode: getEnv("SERVER_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", devDBPassword),
			DBName:       getEnv("DB_NAME", "merchflow"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			SecretKey:     getEnv("JWT_SECRET_KEY", devJWTSecret),
			TokenDuration: getEnv("JWT_TOKEN_DURATION", "24h"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/app.log"),
			MaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 7),
			MaxAge:     getEnvAsInt("LOG_MAX_AGE", 30),
			Compress:   getEnvAsBool("LOG_COMPRESS", true),
			Format:     getEnv("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "merchflow"),
		},
		CORS: CORSConfig{
			AllowOrigins:     getEnvAsStringArray("CORS_ALLOW_ORIGINS", []string{"*"}),
			AllowMethods:     getEnvAsStringArray("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			AllowHeaders:     getEnvAsStringArray("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"}),
			ExposeHeaders:    getEnvAsStringArray("CORS_EXPOSE_HEADERS", []string{"Content-Length", "Content-Type"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 12),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      getEnvAsInt("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USERNAME", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("SMTP_FROM_EMAIL", ""),
			UseTLS:    getEnvAsBool("SMTP_USE_TLS", true),
		},
		GA4: GA4Config{
			MeasurementID: getEnv("GA4_MEASUREMENT_ID", ""),
			APISecret:     getEnv("GA4_API_SECRET", ""),
			Environment:   getEnv("GA4_ENVIRONMENT", "development"),
		},
		Platform: PlatformConfig{
			OwnerEmails:           lowercaseAll(getEnvAsStringArray("PLATFORM_OWNER_EMAILS", nil)),
			ElevatedWindowSeconds: getEnvAsInt("PLATFORM_ELEVATED_WINDOW_SECONDS", 900),
			LoginRateLimitPerMin:  getEnvAsInt("LOGIN_RATE_LIMIT_PER_MIN", 5),
			RenewalReminderDays:   getEnvAsInt("RENEWAL_REMINDER_DAYS", 7),
			LowStockThreshold:     getEnvAsInt("LOW_STOCK_THRESHOLD", 5),
			TrialDays:             getEnvAsInt("TRIAL_DAYS", 14),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate refuses to start a release-mode server on dev secrets.
func (c *Config) Validate() error {
	if c.Server.Mode != "release" {
		return nil
	}
	if c.JWT.SecretKey == devJWTSecret || c.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY must be set in release mode")
	}
	if c.Database.Password == devDBPassword {
		return fmt.Errorf("DB_PASSWORD must be set in release mode")
	}
	return nil
}

// IsPlatformOwner reports whether the email belongs to a platform owner.
func (c *Config) IsPlatformOwner(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, owner := range c.Platform.OwnerEmails {
		if owner == email {
			return true
		}
	}
	return false
}

func lowercaseAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, strings.ToLower(v))
	}
	return result
}
