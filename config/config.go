package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingMongoURI is returned by Load when no MongoDB connection string is
// configured. The server refuses to start without one.
var ErrMissingMongoURI = errors.New("missing environment variable: MONGODB_URI")

// EmailConfig holds mailer settings. Provider "ses" enables AWS SES; anything
// else falls back to the noop mailer.
type EmailConfig struct {
	Provider        string
	FromAddress     string
	FromName        string
	SESRegion       string
	AccessKeyID     string
	SecretAccessKey string
}

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	MongoURI       string
	MongoDatabase  string
	AllowedOrigins []string
	Email          EmailConfig
}

// Load loads configuration from environment variables.
// It attempts to load from a .env file when not in production; in production
// we rely on the system environment alone.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		Port:          os.Getenv("PORT"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: os.Getenv("MONGODB_DB"),
		Email: EmailConfig{
			Provider:        os.Getenv("EMAIL_PROVIDER"),
			FromAddress:     os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:        os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:       os.Getenv("AWS_SES_REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "eventdeck"
	}

	// No default for the connection string: a missing MONGODB_URI is a
	// configuration error and the process must fail fast.
	if cfg.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}

	return cfg, nil
}
