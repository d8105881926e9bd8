package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/database"
	"github.com/docwell/editor-server/internal/modules/processing/ai"
	"github.com/docwell/editor-server/internal/modules/storage/file"
	"github.com/docwell/editor-server/internal/modules/system/diagnostics"
	"github.com/docwell/editor-server/internal/pkg/jwt"
	pkgredis "github.com/docwell/editor-server/internal/pkg/redis"
	"github.com/docwell/editor-server/internal/pkg/supabase"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps are the shared clients built once at startup. db, redis and supabase
// are nil when not configured.
type deps struct {
	http     *http.Client
	db       *gorm.DB
	redis    *pkgredis.Client
	supabase *supabase.Client
	store    file.Store
	verifier *jwt.Verifier
	text     ai.TextBackend
}

func newHTTPClient(cfg *config.AppConfig) *http.Client {
	return &http.Client{Timeout: cfg.HTTP.Timeout}
}

// newSupabase returns nil without error when Supabase is not configured.
func newSupabase(cfg *config.AppConfig, httpClient *http.Client) (*supabase.Client, error) {
	client, err := supabase.New(cfg.Supabase.URL, cfg.Supabase.Key, httpClient)
	if errors.Is(err, supabase.ErrNotConfigured) {
		return nil, nil
	}
	return client, err
}

func loadDeps(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*deps, error) {
	d := &deps{http: newHTTPClient(cfg)}

	var err error
	if d.supabase, err = newSupabase(cfg, d.http); err != nil {
		return nil, fmt.Errorf("supabase: %w", err)
	}
	if d.supabase == nil {
		logger.Warn("supabase not configured, diagnostics will report it as missing")
	}

	if cfg.Database.DSN != "" {
		if d.db, err = database.Connect(cfg, true); err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
	} else {
		logger.Warn("database.dsn is empty, document routes are disabled")
	}

	if cfg.Redis.URL != "" {
		if d.redis, err = pkgredis.Connect(cfg.Redis.URL); err != nil {
			d.close()
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Warn("redis.url is empty, rate limiting is disabled")
	}

	var backend supabase.Backend
	if d.supabase != nil {
		backend = d.supabase
	}
	if d.store, err = file.New(ctx, cfg, backend); err != nil {
		d.close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	d.verifier = jwt.NewVerifier(cfg.Supabase.JWTSecret)
	if !d.verifier.Enabled() {
		logger.Warn("supabase.jwt_secret is empty, authenticated routes will reject every request")
	}
	d.text = ai.NewBackend(cfg.AI, d.http)
	return d, nil
}

func (d *deps) close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.db != nil {
		_ = database.Close(d.db)
	}
}

// diagnosticsOptions exposes only the dependencies that were configured.
func (d *deps) diagnosticsOptions(cfg *config.AppConfig) diagnostics.Options {
	opts := diagnostics.Options{}
	if cfg.AI.OpenAIAPIKey != "" {
		opts.OpenAI = diagnostics.OpenAIModels{Client: ai.NewOpenAIClient(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIBaseURL, d.http)}
	}
	if d.supabase != nil {
		opts.Supabase = d.supabase
	}
	if d.db != nil {
		opts.DB = database.Pinger{DB: d.db}
	}
	if d.redis != nil {
		opts.Redis = d.redis
	}
	return opts
}

func diagnosticsKeys(cfg *config.AppConfig) diagnostics.Keys {
	return diagnostics.Keys{
		Gemini:    cfg.AI.GeminiAPIKey,
		Stability: cfg.Stability.APIKey,
		Unsplash:  cfg.Unsplash.AccessKey,
		OpenAI:    cfg.AI.OpenAIAPIKey,
		Supabase:  cfg.Supabase.Key,
	}
}

// NewProbe builds the credential checks without opening the database or redis.
func NewProbe(cfg *config.AppConfig) (*diagnostics.Service, error) {
	d := &deps{http: newHTTPClient(cfg)}
	var err error
	if d.supabase, err = newSupabase(cfg, d.http); err != nil {
		return nil, fmt.Errorf("supabase: %w", err)
	}
	return diagnostics.NewService(diagnosticsKeys(cfg), d.diagnosticsOptions(cfg)), nil
}
