package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const tokenTTLDefault = 7 * 24 * time.Hour

// AuthConfig carries every secret the auth layer needs. It is built once in
// main and injected into the services; core logic never reads env vars itself.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	GoogleClientID string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// LoadAuthConfig reads JWT_SECRET, TOKEN_TTL_HOURS and GOOGLE_CLIENT_ID.
// JWT_SECRET is mandatory; GOOGLE_CLIENT_ID may be empty, in which case
// Google login is rejected at runtime with a clear error.
func LoadAuthConfig() AuthConfig {
	cfg := AuthConfig{
		JWTSecret:      GetEnv("JWT_SECRET"),
		TokenTTL:       tokenTTLDefault,
		GoogleClientID: GetEnv("GOOGLE_CLIENT_ID"),
	}

	if v := GetEnv("TOKEN_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TokenTTL = time.Duration(n) * time.Hour
		} else {
			log.Printf("⚠️ TOKEN_TTL_HOURS invalid (%q), keeping default %s", v, tokenTTLDefault)
		}
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if cfg.GoogleClientID == "" {
		log.Println("⚠️ GOOGLE_CLIENT_ID is not set, Google login disabled")
	}

	return cfg
}
