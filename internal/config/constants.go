package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort            = 3000
	defaultEnv             = "development"
	defaultHTTPTimeout     = 60 * time.Second
	defaultRateLimitMax    = 30
	defaultRateLimitWindow = time.Minute
	defaultTextProvider    = ProviderGemini
	defaultGeminiBaseURL   = "https://generativelanguage.googleapis.com"
	defaultOpenAIBaseURL   = "https://api.openai.com"
	defaultStabilityURL    = "https://api.stability.ai"
	defaultStabilityEngine = "stable-diffusion-xl-1024-v1-0"
	defaultVideoModel      = "sora-2"
	defaultUnsplashURL     = "https://api.unsplash.com"
	defaultSupabaseBucket  = "documents"
	defaultStorageDriver   = StorageLocal
	defaultUploadsDir      = "public/uploads"
	defaultLogsDir         = "logs"
)

// Text providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Storage drivers.
const (
	StorageLocal    = "local"
	StorageS3       = "s3"
	StorageSupabase = "supabase"
)

// Environment variables read on top of the YAML file.
const (
	EnvPort              = "PORT"
	EnvEnv               = "EDITOR_ENV"
	EnvGeminiAPIKey      = "GEMINI_API_KEY"
	EnvStabilityAPIKey   = "STABILITY_API_KEY"
	EnvUnsplashAccessKey = "UNSPLASH_ACCESS_KEY"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvAnthropicAPIKey   = "ANTHROPIC_API_KEY"
	EnvSupabaseURL       = "NEXT_PUBLIC_SUPABASE_URL"
	EnvSupabaseAnonKey   = "NEXT_PUBLIC_SUPABASE_ANON_KEY"
	EnvSupabaseKey       = "SUPABASE_KEY"
	EnvSupabaseJWTSecret = "SUPABASE_JWT_SECRET"
	EnvDatabaseDSN       = "DATABASE_DSN"
	EnvRedisURL          = "REDIS_URL"
)

func defaultGeminiModels() []ModelCandidate {
	return []ModelCandidate{
		{Name: "gemini-2.0-flash", APIVersion: "v1beta"},
		{Name: "gemini-1.5-flash", APIVersion: "v1"},
	}
}

func defaultOpenAIModels() []ModelCandidate {
	return []ModelCandidate{{Name: "gpt-4o-mini"}, {Name: "gpt-3.5-turbo"}}
}

func defaultAnthropicModels() []ModelCandidate {
	return []ModelCandidate{{Name: "claude-haiku-4-5-20251001"}, {Name: "claude-3-5-haiku-latest"}}
}
