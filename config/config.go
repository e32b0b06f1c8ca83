package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWTSecret verifies tokens issued by the identity provider
	JWTSecret string

	// Avatar storage
	S3BucketName string
	AWSRegion    string

	// Shopping list generation
	GenerateRateLimit  int
	GenerateRateWindow time.Duration

	// TrackedNutrientsCacheTTL bounds how long a diet's tracked nutrients stay in Redis
	TrackedNutrientsCacheTTL time.Duration
}

const (
	defaultSecretsDir    = "/run/secrets"
	defaultRateLimit     = 10
	defaultRateWindow    = time.Hour
	defaultPreferenceTTL = 10 * time.Minute
	defaultBucketName    = "nutriplan-avatars"
	defaultMigrationsDir = "migrations"
	defaultConfigName    = "config"
	configFileEnvVar     = "CONFIG_FILE"
	secretsDirEnvVar     = "SECRETS_DIR"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment from environment variables only
func loadCIConfig(cfg *Config) error {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.MigrationsDir = envOr("MIGRATIONS_DIR", defaultMigrationsDir)
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = 0

	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	if cfg.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	return loadTuning(cfg, os.Getenv)
}

// loadDevConfig layers defaults, an optional config file, environment
// variables and Docker secrets, in increasing order of precedence.
func loadDevConfig(cfg *Config) error {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(configFileEnvVar); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, name := range secretNames {
		if value := readSecret(name); value != "" {
			v.Set(name, value)
		}
	}

	cfg.ServerPort = v.GetString("server_port")
	cfg.ServerHost = v.GetString("server_host")
	cfg.DBHost = v.GetString("db_host")
	cfg.DBPort = v.GetString("db_port")
	cfg.DBUser = v.GetString("db_user")
	cfg.DBPassword = v.GetString("db_password")
	cfg.DBName = v.GetString("db_name")
	cfg.DBSSLMode = v.GetString("db_ssl_mode")
	cfg.MigrationsDir = v.GetString("migrations_dir")
	cfg.RedisHost = v.GetString("redis_host")
	cfg.RedisPort = v.GetString("redis_port")
	cfg.RedisPassword = v.GetString("redis_password")
	cfg.RedisURL = v.GetString("redis_url")
	cfg.RedisDB = v.GetInt("redis_db")
	cfg.JWTSecret = v.GetString("jwt_secret")
	cfg.S3BucketName = v.GetString("s3_bucket_name")
	cfg.AWSRegion = v.GetString("aws_region")
	cfg.GenerateRateLimit = v.GetInt("generate_rate_limit")
	cfg.GenerateRateWindow = v.GetDuration("generate_rate_window")
	cfg.TrackedNutrientsCacheTTL = v.GetDuration("tracked_nutrients_cache_ttl")

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "nutriplan")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("migrations_dir", defaultMigrationsDir)
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("s3_bucket_name", defaultBucketName)
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("generate_rate_limit", defaultRateLimit)
	v.SetDefault("generate_rate_window", defaultRateWindow)
	v.SetDefault("tracked_nutrients_cache_ttl", defaultPreferenceTTL)
	// registered so AutomaticEnv picks them up through Get
	v.SetDefault("db_password", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("jwt_secret", "")
}

// loadProdConfig loads configuration for production environment from Docker secrets
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.MigrationsDir = envOr("MIGRATIONS_DIR", defaultMigrationsDir)
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisURL = readSecret("redis_url")

	return loadTuning(cfg, os.Getenv)
}

// loadTuning reads the non-secret knobs shared by CI and production
func loadTuning(cfg *Config, getenv func(string) string) error {
	cfg.S3BucketName = getenv("S3_BUCKET_NAME")
	if cfg.S3BucketName == "" {
		cfg.S3BucketName = defaultBucketName
	}
	cfg.AWSRegion = getenv("AWS_REGION")

	cfg.GenerateRateLimit = defaultRateLimit
	if raw := getenv("GENERATE_RATE_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid GENERATE_RATE_LIMIT %q: %w", raw, err)
		}
		cfg.GenerateRateLimit = n
	}

	cfg.GenerateRateWindow = defaultRateWindow
	if raw := getenv("GENERATE_RATE_WINDOW"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid GENERATE_RATE_WINDOW %q: %w", raw, err)
		}
		cfg.GenerateRateWindow = d
	}

	cfg.TrackedNutrientsCacheTTL = defaultPreferenceTTL
	if raw := getenv("TRACKED_NUTRIENTS_CACHE_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid TRACKED_NUTRIENTS_CACHE_TTL %q: %w", raw, err)
		}
		cfg.TrackedNutrientsCacheTTL = d
	}
	return nil
}

var secretNames = []string{
	"db_user",
	"db_password",
	"jwt_secret",
	"redis_password",
	"redis_url",
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv(secretsDirEnvVar)
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
