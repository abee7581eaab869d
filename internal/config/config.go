// Package config holds service configuration for voxlane.
// Flag parsing is done in cmd/voxlane/main.go; this struct is data only.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Default configuration values.
const (
	DefaultPort            = 8080
	DefaultRegion          = "us-east-1"
	DefaultBucket          = "voxlane-audio"
	DefaultDefaultLanguage = "en-US"
)

// Config holds all configuration for the voxlane service.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// Port is the HTTP listen port.
	Port int

	// Object storage (S3-compatible).
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageRegion    string
	StorageSecure    bool

	// AWS region for the transcription, translation, and Polly clients.
	AWSRegion string

	// DefaultLanguage is the synthesis fallback language for unmapped
	// detected languages.
	DefaultLanguage string

	// Webhook verification token for the GET challenge echo.
	VerifyToken string

	// API keys (typically from environment variables).
	GeminiKey     string
	ElevenLabsKey string
}

// DefaultConfig returns sensible defaults for voxlane configuration.
func DefaultConfig() Config {
	return Config{
		Port:            DefaultPort,
		StorageBucket:   DefaultBucket,
		StorageRegion:   DefaultRegion,
		StorageSecure:   true,
		AWSRegion:       DefaultRegion,
		DefaultLanguage: DefaultDefaultLanguage,
	}
}

// LoadEnv loads configuration values from environment variables.
// Call this after flag parsing to apply environment overrides.
func (c *Config) LoadEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("STORAGE_ENDPOINT"); v != "" {
		c.StorageEndpoint = v
	}
	c.StorageAccessKey = os.Getenv("STORAGE_ACCESS_KEY")
	c.StorageSecretKey = os.Getenv("STORAGE_SECRET_KEY")
	if v := os.Getenv("STORAGE_BUCKET"); v != "" {
		c.StorageBucket = v
	}
	if v := os.Getenv("STORAGE_REGION"); v != "" {
		c.StorageRegion = v
	}
	if v := os.Getenv("STORAGE_INSECURE"); strings.EqualFold(v, "true") {
		c.StorageSecure = false
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		c.AWSRegion = v
	}
	if v := os.Getenv("DEFAULT_LANGUAGE"); v != "" {
		c.DefaultLanguage = v
	}
	c.VerifyToken = os.Getenv("WEBHOOK_VERIFY_TOKEN")
	c.GeminiKey = os.Getenv("GEMINI_API_KEY")
	c.ElevenLabsKey = os.Getenv("ELEVENLABS_API_KEY")
}

// Validate checks that required configuration is present.
// The ElevenLabs key is deliberately not required here: its absence is a
// synthesis-time config error only when an ElevenLabs voice is resolved.
func (c *Config) Validate() error {
	if c.StorageEndpoint == "" {
		return &ConfigError{Field: "StorageEndpoint", Message: "STORAGE_ENDPOINT environment variable is required"}
	}
	if c.StorageAccessKey == "" || c.StorageSecretKey == "" {
		return &ConfigError{Field: "StorageAccessKey", Message: "STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY environment variables are required"}
	}
	if c.GeminiKey == "" {
		return &ConfigError{Field: "GeminiKey", Message: "GEMINI_API_KEY environment variable is required"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
