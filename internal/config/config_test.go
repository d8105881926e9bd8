package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.AI.TextProvider)
	assert.Equal(t, defaultGeminiModels(), cfg.AI.GeminiModels)
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, defaultHTTPTimeout, cfg.HTTP.Timeout)
	assert.True(t, filepath.IsAbs(cfg.Paths.Uploads))
}

func TestLoadYAMLThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
port: 8081
env: production
http:
  timeout: 15s
ai:
  gemini_api_key: from-yaml
  gemini_models:
    - name: " gemini-custom "
    - name: gemini-custom
    - name: gemini-old
      api_version: /v1/
storage:
  driver: S3
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv(EnvGeminiAPIKey, "from-env")
	t.Setenv(EnvSupabaseKey, "service-key")
	t.Setenv(EnvSupabaseAnonKey, "anon-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "from-env", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "anon-key", cfg.Supabase.Key)
	assert.Equal(t, StorageS3, cfg.Storage.Driver)
	assert.Equal(t, []ModelCandidate{
		{Name: "gemini-custom", APIVersion: "v1beta"},
		{Name: "gemini-old", APIVersion: "v1"},
	}, cfg.AI.GeminiModels)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  text_provider: mistral\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral")
}

func TestTextModelsFollowsProvider(t *testing.T) {
	cfg := &AppConfig{AI: AIConfig{TextProvider: ProviderOpenAI, OpenAIAPIKey: "sk-x"}}
	require.NoError(t, normalize(cfg))

	assert.Equal(t, defaultOpenAIModels(), cfg.TextModels())
	assert.Equal(t, "sk-x", cfg.TextAPIKey())
}

func TestNormalizeDSN(t *testing.T) {
	dsn, err := normalizeDSN("  ")
	require.NoError(t, err)
	assert.Empty(t, dsn)

	dsn, err = normalizeDSN("editor:secret@tcp(db:3306)/editor")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "timeout=10s")
	assert.Contains(t, dsn, "@tcp(db:3306)/editor")

	dsn, err = normalizeDSN("editor@tcp(db)/editor?charset=latin1")
	require.NoError(t, err)
	assert.Contains(t, dsn, "charset=latin1")

	_, err = normalizeDSN("editor@tcp(db/editor")
	assert.Error(t, err)
}
