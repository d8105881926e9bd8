package config

import (
	"fmt"
	"strings"
)

func normalize(cfg *AppConfig) error {
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	cfg.AllowedOrigins = trimNonEmpty(cfg.AllowedOrigins)

	cfg.Paths.Logs = ResolveRuntimePath(cfg.Paths.Logs, defaultLogsDir)
	cfg.Paths.Uploads = ResolveRuntimePath(cfg.Paths.Uploads, defaultUploadsDir)

	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = defaultHTTPTimeout
	}
	dsn, err := normalizeDSN(cfg.Database.DSN)
	if err != nil {
		return err
	}
	cfg.Database.DSN = dsn
	cfg.Redis.URL = strings.TrimSpace(cfg.Redis.URL)
	if cfg.RateLimit.Max <= 0 {
		cfg.RateLimit.Max = defaultRateLimitMax
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = defaultRateLimitWindow
	}

	if err := normalizeAIConfig(&cfg.AI); err != nil {
		return err
	}

	cfg.Stability.APIKey = strings.TrimSpace(cfg.Stability.APIKey)
	cfg.Stability.BaseURL = trimBaseURL(cfg.Stability.BaseURL, defaultStabilityURL)
	if strings.TrimSpace(cfg.Stability.Engine) == "" {
		cfg.Stability.Engine = defaultStabilityEngine
	}

	cfg.Video.BaseURL = trimBaseURL(cfg.Video.BaseURL, cfg.AI.OpenAIBaseURL)
	if strings.TrimSpace(cfg.Video.Model) == "" {
		cfg.Video.Model = defaultVideoModel
	}

	cfg.Unsplash.AccessKey = strings.TrimSpace(cfg.Unsplash.AccessKey)
	cfg.Unsplash.BaseURL = trimBaseURL(cfg.Unsplash.BaseURL, defaultUnsplashURL)

	cfg.Supabase.URL = strings.TrimRight(strings.TrimSpace(cfg.Supabase.URL), "/")
	cfg.Supabase.Key = strings.TrimSpace(cfg.Supabase.Key)
	cfg.Supabase.JWTSecret = strings.TrimSpace(cfg.Supabase.JWTSecret)
	if strings.TrimSpace(cfg.Supabase.Bucket) == "" {
		cfg.Supabase.Bucket = defaultSupabaseBucket
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case "":
		cfg.Storage.Driver = defaultStorageDriver
	case StorageLocal, StorageS3, StorageSupabase:
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	cfg.Storage.S3.Prefix = strings.Trim(strings.TrimSpace(cfg.Storage.S3.Prefix), "/")
	return nil
}

func normalizeAIConfig(ai *AIConfig) error {
	ai.TextProvider = strings.ToLower(strings.TrimSpace(ai.TextProvider))
	switch ai.TextProvider {
	case "":
		ai.TextProvider = defaultTextProvider
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown ai.text_provider %q", ai.TextProvider)
	}

	ai.GeminiAPIKey = strings.TrimSpace(ai.GeminiAPIKey)
	ai.OpenAIAPIKey = strings.TrimSpace(ai.OpenAIAPIKey)
	ai.AnthropicAPIKey = strings.TrimSpace(ai.AnthropicAPIKey)
	ai.GeminiBaseURL = trimBaseURL(ai.GeminiBaseURL, defaultGeminiBaseURL)
	ai.OpenAIBaseURL = trimBaseURL(ai.OpenAIBaseURL, defaultOpenAIBaseURL)

	ai.GeminiModels = normalizeCandidates(ai.GeminiModels, defaultGeminiModels(), "v1beta")
	ai.OpenAIModels = normalizeCandidates(ai.OpenAIModels, defaultOpenAIModels(), "")
	ai.AnthropicModels = normalizeCandidates(ai.AnthropicModels, defaultAnthropicModels(), "")
	return nil
}

// normalizeCandidates drops blank entries and duplicates while keeping order.
func normalizeCandidates(in, fallback []ModelCandidate, defaultVersion string) []ModelCandidate {
	out := make([]ModelCandidate, 0, len(in))
	seen := make(map[ModelCandidate]struct{}, len(in))
	for _, c := range in {
		c.Name = strings.TrimSpace(c.Name)
		c.APIVersion = strings.Trim(strings.TrimSpace(c.APIVersion), "/")
		if c.Name == "" {
			continue
		}
		if c.APIVersion == "" {
			c.APIVersion = defaultVersion
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func trimBaseURL(raw, fallback string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return strings.TrimRight(fallback, "/")
	}
	return base
}

func trimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
