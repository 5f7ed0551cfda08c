package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"neptune-lambda/pkg/utils"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string `validate:"oneof=development staging production test"`

	// Neptune configuration. NeptuneEndpoint is injected by the stack that
	// provisions the cluster.
	NeptuneEndpoint     string `validate:"required"`
	NeptunePort         int    `validate:"gte=1,lte=65535"`
	NeptuneScheme       string `validate:"oneof=http https"`
	NeptuneIAMAuth      bool
	NeptuneQueryTimeout time.Duration `validate:"gte=0"`

	// AWS configuration
	AWSRegion string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`

	// Feature flags
	EnableMetrics        bool
	EnableTracing        bool
	EnableCORS           bool
	EnableCircuitBreaker bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	functionName := getEnv("AWS_LAMBDA_FUNCTION_NAME", "")

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		NeptuneEndpoint:     getEnv("NEPTUNE_ENDPOINT", ""),
		NeptunePort:         getEnvInt("NEPTUNE_PORT", 8182),
		NeptuneScheme:       getEnv("NEPTUNE_SCHEME", "https"),
		NeptuneIAMAuth:      getEnvBool("NEPTUNE_IAM_AUTH", false),
		NeptuneQueryTimeout: getEnvDuration("NEPTUNE_QUERY_TIMEOUT", 0),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		IsLambda:           functionName != "" || getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: functionName,

		LogLevel:             getEnv("LOG_LEVEL", "info"),
		EnableMetrics:        getEnvBool("ENABLE_METRICS", false),
		EnableTracing:        getEnvBool("ENABLE_TRACING", false),
		EnableCORS:           getEnvBool("ENABLE_CORS", true),
		EnableCircuitBreaker: getEnvBool("ENABLE_CIRCUIT_BREAKER", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("3s") or plain milliseconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
