package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort              = "8080"
	defaultJWTIssuer         = "bank-recon-engine"
	defaultMigrationsPath    = "file://migrations"
	defaultImportBatchSize   = 500
	defaultImportParallelism = 1
	defaultMatchBatchSize    = 500
	defaultMaxUploadBytes    = 10 << 20
	defaultRateLimit         = "60-M"
	defaultPosthogEndpoint   = "https://eu.i.posthog.com"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	// Ingestion and matching
	ImportBatchSize   int
	ImportParallelism int
	MatchBatchSize    int
	MaxUploadBytes    int64

	// HTTP surface
	RateLimit          string   // ulule/limiter formatted rate, e.g. "60-M"
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", defaultPort)
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	viper.SetDefault("IMPORT_BATCH_SIZE", defaultImportBatchSize)
	viper.SetDefault("IMPORT_PARALLELISM", defaultImportParallelism)
	viper.SetDefault("MATCH_BATCH_SIZE", defaultMatchBatchSize)
	viper.SetDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", defaultPosthogEndpoint)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.ImportBatchSize = positiveInt("IMPORT_BATCH_SIZE", defaultImportBatchSize)
	cfg.ImportParallelism = positiveInt("IMPORT_PARALLELISM", defaultImportParallelism)
	cfg.MatchBatchSize = positiveInt("MATCH_BATCH_SIZE", defaultMatchBatchSize)

	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")
	if cfg.MaxUploadBytes <= 0 {
		log.Printf("Warning: Invalid value for MAX_UPLOAD_BYTES ('%s'). Defaulting to %d.\n", viper.GetString("MAX_UPLOAD_BYTES"), defaultMaxUploadBytes)
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

// positiveInt reads key as an int, falling back to def when it is missing, malformed or not positive.
func positiveInt(key string, def int) int {
	v := viper.GetInt(key)
	if v <= 0 {
		if raw := viper.GetString(key); raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %d.\n", key, raw, def)
		}
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
