package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DefaultHighValueThreshold flags transactions for manager attention when no
// HIGH_VALUE_THRESHOLD is configured.
const DefaultHighValueThreshold = 3000000

type Config struct {
	DatabaseURL        string
	Port               string
	Env                string
	JWTSecret          string
	HighValueThreshold decimal.Decimal
	ManagerEmail       string
	ResendAPIKey       string
	EmailFrom          string
	EmailFromName      string
	DigestSchedule     string
	AlertQueue         string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           os.Getenv("PORT"),
		Env:            os.Getenv("ENV"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ManagerEmail:   os.Getenv("MANAGER_EMAIL"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
		EmailFromName:  os.Getenv("EMAIL_FROM_NAME"),
		DigestSchedule: os.Getenv("DIGEST_SCHEDULE"),
		AlertQueue:     os.Getenv("ALERT_QUEUE"),
	}

	cfg.HighValueThreshold = parseThreshold(os.Getenv("HIGH_VALUE_THRESHOLD"))

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "petmanager-dev-secret"
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "alerts@petmanager.local"
	}
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = "PetManager"
	}
	if cfg.DigestSchedule == "" {
		// Every day at 08:00
		cfg.DigestSchedule = "0 8 * * *"
	}
	if cfg.AlertQueue == "" {
		cfg.AlertQueue = "alerts"
	}

	return cfg
}

func parseThreshold(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.NewFromInt(DefaultHighValueThreshold)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		log.Printf("⚠️ invalid HIGH_VALUE_THRESHOLD %q, using default", raw)
		return decimal.NewFromInt(DefaultHighValueThreshold)
	}
	return d
}
