package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	StoreDriver string

	JWTSecret string
	TokenTTL  time.Duration

	CORSAllowOrigins string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string

	CloudinaryURL string
	UploadFolder  string

	ReminderAfter time.Duration
	AppBaseURL    string
}

// Load reads envFile (if present) into the process environment and builds the Config.
// A missing file is not an error; variables already set in the environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Warning: %s not found, reading from system environment variables", envFile)
		}
	}

	cfg := &Config{
		Env:              getEnv("ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		BrevoAPIKey:      os.Getenv("BREVO_API_KEY"),
		EmailSender:      os.Getenv("EMAIL_SENDER"),
		EmailSenderName:  os.Getenv("EMAIL_SENDER_NAME"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		UploadFolder:     getEnv("UPLOAD_FOLDER", "mentorship_avatars"),
		AppBaseURL:       strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReminderAfter, err = getDuration("REMINDER_AFTER", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
