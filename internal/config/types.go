package config

import "time"

// AppConfig holds runtime configuration loaded from YAML, .env and the environment.
type AppConfig struct {
	Port           int              `yaml:"port"`
	Env            string           `yaml:"env"` // "development" | "production"
	AllowedOrigins []string         `yaml:"allowed_origins"`
	Paths          RuntimePaths     `yaml:"paths"`
	HTTP           HTTPClientConfig `yaml:"http"`
	Database       DatabaseConfig   `yaml:"database"`
	Redis          RedisConfig      `yaml:"redis"`
	RateLimit      RateLimitConfig  `yaml:"rate_limit"`
	AI             AIConfig         `yaml:"ai"`
	Stability      StabilityConfig  `yaml:"stability"`
	Video          VideoConfig      `yaml:"video"`
	Unsplash       UnsplashConfig   `yaml:"unsplash"`
	Supabase       SupabaseConfig   `yaml:"supabase"`
	Storage        StorageConfig    `yaml:"storage"`
}

type RuntimePaths struct {
	Logs    string `yaml:"logs"`
	Uploads string `yaml:"uploads"`
}

type HTTPClientConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // MySQL DSN; documents are disabled when empty
}

type RedisConfig struct {
	URL string `yaml:"url"` // rate limiting is disabled when empty
}

type RateLimitConfig struct {
	Max    int           `yaml:"max"`
	Window time.Duration `yaml:"window"`
}

// AIConfig configures the text pipeline used by the writing assistant and translation.
type AIConfig struct {
	TextProvider    string           `yaml:"text_provider"` // gemini | openai | anthropic
	GeminiAPIKey    string           `yaml:"gemini_api_key"`
	GeminiBaseURL   string           `yaml:"gemini_base_url"`
	GeminiModels    []ModelCandidate `yaml:"gemini_models"`
	OpenAIAPIKey    string           `yaml:"openai_api_key"`
	OpenAIBaseURL   string           `yaml:"openai_base_url"`
	OpenAIModels    []ModelCandidate `yaml:"openai_models"`
	AnthropicAPIKey string           `yaml:"anthropic_api_key"`
	AnthropicModels []ModelCandidate `yaml:"anthropic_models"`
}

// ModelCandidate is one entry of the ordered model fallback list.
type ModelCandidate struct {
	Name       string `yaml:"name"`
	APIVersion string `yaml:"api_version"`
}

type StabilityConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Engine  string `yaml:"engine"`
}

type VideoConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type UnsplashConfig struct {
	AccessKey string `yaml:"access_key"`
	BaseURL   string `yaml:"base_url"`
}

type SupabaseConfig struct {
	URL       string `yaml:"url"`
	Key       string `yaml:"key"`
	JWTSecret string `yaml:"jwt_secret"`
	Bucket    string `yaml:"bucket"`
}

type StorageConfig struct {
	Driver string   `yaml:"driver"` // local | s3 | supabase
	S3     S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyle       bool   `yaml:"path_style"`
	Prefix          string `yaml:"prefix"`
}
