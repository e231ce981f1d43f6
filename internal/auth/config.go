package auth

import (
	"os"
	"time"
)

// Config holds auth configuration
type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

const DefaultIssuer = "mentesana-intake-service"

// LoadConfig reads config from env. AUTH_SECRET is required; the caller
// decides whether a missing secret is fatal. Override the token
// lifetime with AUTH_TOKEN_TTL (Go duration, e.g. "8h").
func LoadConfig() Config {
	ttl := 8 * time.Hour
	if raw := os.Getenv("AUTH_TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			ttl = d
		}
	}
	issuer := os.Getenv("AUTH_ISSUER")
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return Config{
		Secret:   os.Getenv("AUTH_SECRET"),
		Issuer:   issuer,
		TokenTTL: ttl,
	}
}
