package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Followup FollowupConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string // "postgres" or "memory"
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	SenderName string
	MaxRetries int
}

// JWTConfig holds service-token configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// StorageConfig holds MOM archive storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// RatingTier maps a lateness ceiling (in whole days) to an ordinal rating
type RatingTier struct {
	MaxLateDays int
	Rating      string
}

// FollowupConfig holds all tunable follow-up behavior. Components receive
// this at construction; core logic never reads ambient state.
type FollowupConfig struct {
	HREmail          string
	SenderName       string
	EnableEscalation bool
	EnableAutoAck    bool
	EnableArchive    bool

	// Minimum meaningful-content length for a parsed task line
	MinTaskLength int

	// Reminder cadence per priority, in days
	ReminderIntervalDays map[string]int

	// Deadline offset from creation per priority, in days
	DeadlineOffsetDays map[string]int

	// Lateness tiers ordered by MaxLateDays ascending; the fallback
	// rating applies past the last tier.
	RatingTiers    []RatingTier
	FallbackRating string
}

// ReminderInterval returns the cadence for a priority as a duration
func (f *FollowupConfig) ReminderInterval(priority string) time.Duration {
	days, ok := f.ReminderIntervalDays[strings.ToUpper(priority)]
	if !ok {
		days = f.ReminderIntervalDays["MEDIUM"]
	}
	return time.Duration(days) * 24 * time.Hour
}

// DeadlineOffset returns the deadline offset for a priority as a duration
func (f *FollowupConfig) DeadlineOffset(priority string) time.Duration {
	days, ok := f.DeadlineOffsetDays[strings.ToUpper(priority)]
	if !ok {
		days = f.DeadlineOffsetDays["MEDIUM"]
	}
	return time.Duration(days) * 24 * time.Hour
}

// Rating maps lateness in whole days to an ordinal rating. Monotonic
// non-increasing in lateness by construction.
func (f *FollowupConfig) Rating(lateDays int) string {
	for _, tier := range f.RatingTiers {
		if lateDays <= tier.MaxLateDays {
			return tier.Rating
		}
	}
	return f.FallbackRating
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "postgres"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "followup_agent"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", "smtp.office365.com"),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Username:   getEnv("SMTP_USERNAME", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Task Followup Agent"),
			MaxRetries: getEnvAsInt("SMTP_MAX_RETRIES", 3),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			Expiry: time.Duration(getEnvAsInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", ""),
			BucketName:      getEnv("MINIO_BUCKET", "mom-archive"),
			UseSSL:          getEnvAsBool("MINIO_USE_SSL", false),
		},
		Followup: FollowupConfig{
			HREmail:          getEnv("HR_EMAIL", "hr@example.com"),
			SenderName:       getEnv("AGENT_SENDER_NAME", "Task Followup Agent"),
			EnableEscalation: getEnvAsBool("ENABLE_ESCALATION", true),
			EnableAutoAck:    getEnvAsBool("ENABLE_AUTO_ACK", true),
			EnableArchive:    getEnvAsBool("ENABLE_ARCHIVE", false),
			MinTaskLength:    getEnvAsInt("MIN_TASK_LENGTH", 10),
			ReminderIntervalDays: map[string]int{
				"URGENT": getEnvAsInt("REMIND_URGENT_DAYS", 1),
				"HIGH":   getEnvAsInt("REMIND_HIGH_DAYS", 2),
				"MEDIUM": getEnvAsInt("REMIND_MEDIUM_DAYS", 3),
				"LOW":    getEnvAsInt("REMIND_LOW_DAYS", 5),
			},
			DeadlineOffsetDays: map[string]int{
				"URGENT": getEnvAsInt("DEADLINE_URGENT_DAYS", 1),
				"HIGH":   getEnvAsInt("DEADLINE_HIGH_DAYS", 3),
				"MEDIUM": getEnvAsInt("DEADLINE_MEDIUM_DAYS", 7),
				"LOW":    getEnvAsInt("DEADLINE_LOW_DAYS", 14),
			},
			RatingTiers:    parseRatingTiers(getEnv("RATING_TIERS", "0:EXCELLENT,2:GOOD,5:FAIR")),
			FallbackRating: getEnv("RATING_FALLBACK", "POOR"),
		},
	}

	if config.SMTP.Username != "" && config.SMTP.Password == "" {
		return nil, fmt.Errorf("SMTP_PASSWORD must be set when SMTP_USERNAME is configured")
	}

	return config, nil
}

// GetDatabaseDSN builds the PostgreSQL connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr builds the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// parseRatingTiers parses "0:EXCELLENT,2:GOOD,5:FAIR" into ordered tiers.
// Malformed segments are skipped.
func parseRatingTiers(raw string) []RatingTier {
	var tiers []RatingTier
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(seg), ":", 2)
		if len(parts) != 2 {
			continue
		}
		days, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		rating := strings.ToUpper(strings.TrimSpace(parts[1]))
		if rating == "" {
			continue
		}
		tiers = append(tiers, RatingTier{MaxLateDays: days, Rating: rating})
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MaxLateDays < tiers[j].MaxLateDays })
	return tiers
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt gets environment variable as integer with fallback
func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getEnvAsBool gets environment variable as boolean with fallback
func getEnvAsBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}
