package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	Database DatabaseConfig

	// Knowledge lookup collaborator
	Knowledge KnowledgeConfig

	// Dialogue engine tuning
	Dialogue DialogueConfig

	// Auth
	Auth AuthConfig
}

type DatabaseConfig struct {
	Type     string // "mongodb"
	URI      string
	Name     string
	Host     string
	Port     string
	Username string
	Password string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration

	// Per-operation deadline for record reads/writes
	OpTimeout time.Duration
}

type KnowledgeConfig struct {
	Provider string // "gemini"
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// DialogueConfig holds the tunable thresholds of the conversation engine.
// The classifier is deterministic, so these are behavior knobs rather than
// model parameters.
type DialogueConfig struct {
	MatchConfidence    float64
	FallbackConfidence float64
	MinConfidence      float64
	SessionTTL         time.Duration
	SweepInterval      time.Duration
}

type AuthConfig struct {
	TokenSecret string
}

var cfg *Config

// Load initializes the configuration
func Load() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg = &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		Database: DatabaseConfig{
			Type:     getEnv("DB_TYPE", "mongodb"),
			URI:      getEnv("DATABASE_URL", ""),
			Name:     getEnv("DB_NAME", "health_tracker"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),

			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
			MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),
			OpTimeout:      getEnvAsDuration("DB_OP_TIMEOUT", "5s"),
		},

		Knowledge: KnowledgeConfig{
			Provider: getEnv("KNOWLEDGE_PROVIDER", "gemini"),
			APIKey:   getEnv("GOOGLE_API_KEY", ""),
			Model:    getEnv("KNOWLEDGE_MODEL", "gemini-1.5-flash"),
			Timeout:  getEnvAsDuration("KNOWLEDGE_TIMEOUT", "10s"),
		},

		Dialogue: DialogueConfig{
			MatchConfidence:    getEnvAsFloat("INTENT_MATCH_CONFIDENCE", 0.9),
			FallbackConfidence: getEnvAsFloat("INTENT_FALLBACK_CONFIDENCE", 0.3),
			MinConfidence:      getEnvAsFloat("INTENT_MIN_CONFIDENCE", 0.5),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", "30m"),
			SweepInterval:      getEnvAsDuration("SESSION_SWEEP_INTERVAL", "5m"),
		},

		Auth: AuthConfig{
			TokenSecret: getEnv("AUTH_TOKEN_SECRET", ""),
		},
	}

	// Validate configuration
	if err := validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		log.Fatal("Configuration not loaded. Call Load() first")
	}
	return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func validate() error {
	// Validate required fields
	if cfg.Database.Type == "mongodb" && cfg.Database.URI == "" {
		if cfg.Database.Host == "" || cfg.Database.Port == "" {
			return fmt.Errorf("database URI or host/port must be provided")
		}
	}

	if cfg.Knowledge.APIKey == "" {
		// Lookup degrades to a fixed fallback reply without a key.
		log.Println("WARNING: no knowledge API key configured, general questions will get the fallback reply")
	}

	if cfg.Dialogue.MinConfidence <= cfg.Dialogue.FallbackConfidence {
		return fmt.Errorf("INTENT_MIN_CONFIDENCE must be above INTENT_FALLBACK_CONFIDENCE")
	}

	return nil
}

// BuildDatabaseURI constructs the database URI if not provided
func (c *Config) BuildDatabaseURI() string {
	if c.Database.URI != "" {
		return c.Database.URI
	}

	if c.Database.Username != "" && c.Database.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
			c.Database.Username,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
