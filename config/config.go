// Package config loads application settings from the environment. OAuth
// client credentials are looked up lazily by the authenticator and are not
// part of this struct.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application settings.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	UseHTTPS bool   `env:"USE_HTTPS" envDefault:"false"`
	DBPath   string `env:"DB_PATH" envDefault:"./clipdigest.db"`

	// OAuthRedirectURI must match the redirect registered with each provider.
	OAuthRedirectURI string `env:"OAUTH_REDIRECT_URI" envDefault:"http://localhost:8501/"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	SummaryModel string `env:"SUMMARY_MODEL" envDefault:"gpt-4o"`
	OpenAIAPIURL string `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1/responses"`

	TranscriptAPIURL string `env:"TRANSCRIPT_API_URL"`
	TranscriptAPIKey string `env:"TRANSCRIPT_API_KEY"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
