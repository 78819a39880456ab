package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every runtime setting for the API and worker binaries.
// Values come from the environment; cmd binaries load a .env file first.
type Config struct {
	// Core
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL,required"`

	// Auth
	JWTSecret      string        `env:"JWT_SECRET,required"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"mytutor"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	OTPTTL         time.Duration `env:"OTP_TTL" envDefault:"10m"`

	// Google OAuth: userinfo endpoint is overridable for tests.
	GoogleUserInfoURL string `env:"GOOGLE_USERINFO_URL" envDefault:"https://www.googleapis.com/oauth2/v2/userinfo"`

	// Worker
	QueueConcurrency int `env:"QUEUE_CONCURRENCY" envDefault:"10"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
