package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path (a missing file is allowed), applies .env and
// environment overrides, and normalizes the result.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	// .env is optional; existing process variables win.
	_ = godotenv.Load()

	applyEnv(cfg, os.LookupEnv)
	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *AppConfig, lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvPort); ok {
		if port, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	str(EnvEnv, &cfg.Env)
	str(EnvGeminiAPIKey, &cfg.AI.GeminiAPIKey)
	str(EnvOpenAIAPIKey, &cfg.AI.OpenAIAPIKey)
	str(EnvAnthropicAPIKey, &cfg.AI.AnthropicAPIKey)
	str(EnvStabilityAPIKey, &cfg.Stability.APIKey)
	str(EnvUnsplashAccessKey, &cfg.Unsplash.AccessKey)
	str(EnvSupabaseURL, &cfg.Supabase.URL)
	str(EnvSupabaseKey, &cfg.Supabase.Key)
	str(EnvSupabaseAnonKey, &cfg.Supabase.Key)
	str(EnvSupabaseJWTSecret, &cfg.Supabase.JWTSecret)
	str(EnvDatabaseDSN, &cfg.Database.DSN)
	str(EnvRedisURL, &cfg.Redis.URL)
}

// IsDev reports whether the service runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env != "production"
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// TextModels returns the ordered model candidates for the active text provider.
func (c *AppConfig) TextModels() []ModelCandidate {
	switch c.AI.TextProvider {
	case ProviderOpenAI:
		return c.AI.OpenAIModels
	case ProviderAnthropic:
		return c.AI.AnthropicModels
	default:
		return c.AI.GeminiModels
	}
}

// TextAPIKey returns the key of the active text provider.
func (c *AppConfig) TextAPIKey() string {
	switch c.AI.TextProvider {
	case ProviderOpenAI:
		return c.AI.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AI.AnthropicAPIKey
	default:
		return c.AI.GeminiAPIKey
	}
}
