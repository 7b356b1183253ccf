package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every runtime setting the server needs.
type Config struct {
	Port            string
	MongoURI        string
	MongoDBName     string
	JWTSecret       string
	TokenExpiry     time.Duration
	StripeSecretKey string
	StripePriceID   string
	AllowedOrigin   string
}

// LoadConfig reads configuration from a .env file if present, falling
// back to the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment variables")
	}

	expiryHours := 72
	if v := os.Getenv("TOKEN_EXPIRY_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			expiryHours = n
		} else {
			logrus.WithField("TOKEN_EXPIRY_HOURS", v).Warn("Invalid token expiry, using default")
		}
	}

	return &Config{
		Port:            getEnv("PORT", "3000"),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGODB_NAME", "forbidden_button"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenExpiry:     time.Duration(expiryHours) * time.Hour,
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripePriceID:   os.Getenv("STRIPE_PRICE_ID"),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
