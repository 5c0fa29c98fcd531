package config

import (
	"fmt"
	"net/url"
	"strings"

	"codeberg.org/algopatterns/codeassist/internal/codeassist"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - most machines running the client have no .env file
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parses configuration from an explicit environment map
func FromMap(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checks the configuration for values the client cannot work with
func (c *Config) Validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("CODEASSIST_API_URL is invalid: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CODEASSIST_API_URL must use http or https, got %q", c.APIURL)
	}

	if u.Host == "" {
		return fmt.Errorf("CODEASSIST_API_URL must include a host, got %q", c.APIURL)
	}

	if _, err := codeassist.ParseLanguage(c.Language); err != nil {
		return fmt.Errorf("CODEASSIST_LANGUAGE: %w", err)
	}

	if c.RequestTimeout < 0 || c.ConnectTimeout < 0 || c.HeaderTimeout < 0 || c.IdleTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("CODEASSIST_RATE_LIMIT must not be negative, got %v", c.RateLimit)
	}

	if c.RateBurst < 1 {
		c.RateBurst = 1
	}

	if c.Environment == "" {
		c.Environment = "development"
	}

	return nil
}

// returns the configured default language
func (c *Config) DefaultLanguage() codeassist.Language {
	lang, err := codeassist.ParseLanguage(c.Language)
	if err != nil {
		return codeassist.DefaultLanguage
	}

	return lang
}

// overrides configuration values with the ones given on the command line
func (c *Config) ApplyFlags(f Flags) error {
	if f.APIURL != "" {
		c.APIURL = f.APIURL
	}

	if f.Language != "" {
		c.Language = f.Language
	}

	return c.Validate()
}
