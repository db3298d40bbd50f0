package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"movielynx/backend/internal/constants"
	apperrors "movielynx/backend/pkg/errors"
)

// Environment variable names
const (
	EnvActorFileDir  = "ACTOR_FILE_DIR"
	EnvNeo4jURL      = "NEO4J_DB_URL"
	EnvNeo4jUser     = "NEO4J_DB_USER"
	EnvNeo4jPassword = "NEO4J_DB_PASSWORD"
	EnvNeo4jDatabase = "NEO4J_DATABASE"
	EnvLoadBatchSize = "LOAD_BATCH_SIZE"
	EnvPort          = "PORT"
	EnvEnvironment   = "ENV"
)

// LookupFunc resolves a single environment key
type LookupFunc func(key string) (string, bool)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Input
	ActorFileDir string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string // empty selects the server default

	// Loader
	BatchSize int
}

// Load reads configuration from the process environment
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads configuration through lookup and validates it
func LoadFrom(lookup LookupFunc) (*Config, error) {
	batchSize, err := getEnvInt(lookup, EnvLoadBatchSize, constants.DefaultBatchSize)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          getEnv(lookup, EnvPort, "8080"),
		Env:           getEnv(lookup, EnvEnvironment, "development"),
		ActorFileDir:  getEnv(lookup, EnvActorFileDir, ""),
		Neo4jURI:      getEnv(lookup, EnvNeo4jURL, ""),
		Neo4jUser:     getEnv(lookup, EnvNeo4jUser, ""),
		Neo4jPassword: getEnv(lookup, EnvNeo4jPassword, ""),
		Neo4jDatabase: getEnv(lookup, EnvNeo4jDatabase, ""),
		BatchSize:     batchSize,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set and that the
// input directory exists
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{EnvActorFileDir, c.ActorFileDir},
		{EnvNeo4jURL, c.Neo4jURI},
		{EnvNeo4jUser, c.Neo4jUser},
		{EnvNeo4jPassword, c.Neo4jPassword},
	}
	for _, r := range required {
		if r.value == "" {
			return apperrors.NewConfigMissingRequired(r.key)
		}
	}

	if c.BatchSize <= 0 {
		return apperrors.NewConfigValidationFailed(EnvLoadBatchSize, "must be greater than zero")
	}

	info, err := os.Stat(c.ActorFileDir)
	if err != nil {
		return apperrors.NewConfigValidationFailed(EnvActorFileDir, fmt.Sprintf("non-existent directory %s", c.ActorFileDir))
	}
	if !info.IsDir() {
		return apperrors.NewConfigValidationFailed(EnvActorFileDir, fmt.Sprintf("%s is not a directory", c.ActorFileDir))
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(lookup LookupFunc, key, defaultValue string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(lookup LookupFunc, key string, defaultValue int) (int, error) {
	value := getEnv(lookup, key, "")
	if value == "" {
		return defaultValue, nil
	}
	var result int
	if _, err := fmt.Sscanf(value, "%d", &result); err != nil {
		return 0, apperrors.NewConfigValidationFailed(key, fmt.Sprintf("not an integer: %q", value))
	}
	return result, nil
}

// ServerConfig holds the settings of the placeholder HTTP listener, which
// needs neither the input directory nor database credentials
type ServerConfig struct {
	Port string
	Env  string
}

// LoadServer reads the listener configuration from the process environment
func LoadServer() *ServerConfig {
	_ = godotenv.Load()
	return LoadServerFrom(os.LookupEnv)
}

// LoadServerFrom reads the listener configuration through lookup
func LoadServerFrom(lookup LookupFunc) *ServerConfig {
	return &ServerConfig{
		Port: getEnv(lookup, EnvPort, "8080"),
		Env:  getEnv(lookup, EnvEnvironment, "development"),
	}
}
