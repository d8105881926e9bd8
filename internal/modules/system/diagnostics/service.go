// Package diagnostics reports whether provider credentials are configured and
// accepted, without ever echoing them.
package diagnostics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/supabase"
	openaiclient "github.com/openai/openai-go/v2"
)

// ModelLister counts the models visible to an API key.
type ModelLister interface {
	CountModels(ctx context.Context) (int, error)
}

// Pinger is a dependency with a liveness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpenAIModels lists models through the SDK client.
type OpenAIModels struct {
	Client openaiclient.Client
}

func (m OpenAIModels) CountModels(ctx context.Context) (int, error) {
	page, err := m.Client.Models.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(page.Data), nil
}

// Keys holds the secrets whose presence is reported.
type Keys struct {
	Gemini    string
	Stability string
	Unsplash  string
	OpenAI    string
	Supabase  string
}

type Service struct {
	keys     Keys
	openai   ModelLister
	supabase supabase.Backend
	db       Pinger
	redis    Pinger
	started  time.Time
}

// Options wires optional dependencies. Nil fields are reported as disabled.
type Options struct {
	OpenAI   ModelLister
	Supabase supabase.Backend
	DB       Pinger
	Redis    Pinger
}

func NewService(keys Keys, opts Options) *Service {
	return &Service{
		keys:     keys,
		openai:   opts.OpenAI,
		supabase: opts.Supabase,
		db:       opts.DB,
		redis:    opts.Redis,
		started:  time.Now(),
	}
}

// TestOpenAI returns the report and the HTTP status to send it with.
func (s *Service) TestOpenAI(ctx context.Context) (*OpenAIReport, int) {
	if s.keys.OpenAI == "" || s.openai == nil {
		return &OpenAIReport{Configured: false, Error: "OpenAI API key not configured"}, http.StatusInternalServerError
	}
	report := &OpenAIReport{
		Configured: true,
		KeyLength:  len(s.keys.OpenAI),
		KeyPrefix:  KeyPrefix(s.keys.OpenAI),
	}
	count, err := s.openai.CountModels(ctx)
	if err != nil {
		report.Error = openAIMessage(err)
		return report, http.StatusOK
	}
	report.Valid = true
	report.ModelCount = &count
	return report, http.StatusOK
}

// TestSupabase pings the REST endpoint with the configured key.
func (s *Service) TestSupabase(ctx context.Context) (*SupabaseReport, int) {
	if s.supabase == nil {
		return &SupabaseReport{Configured: false, Error: "Supabase URL or key not configured"}, http.StatusInternalServerError
	}
	report := &SupabaseReport{
		Configured: true,
		URL:        s.supabase.BaseURL(),
		KeyLength:  len(s.keys.Supabase),
		KeyPrefix:  KeyPrefix(s.keys.Supabase),
	}
	status, err := s.supabase.Ping(ctx)
	report.Status = status
	if err != nil {
		e := apierr.From(err)
		report.Error = e.Message
		if e.Details != "" {
			report.Error += ": " + e.Details
		}
		return report, http.StatusOK
	}
	report.Valid = true
	return report, http.StatusOK
}

// Health reports configured providers and the state of optional stores.
func (s *Service) Health(ctx context.Context) (*HealthReport, int) {
	report := &HealthReport{
		Status: "ok",
		Uptime: int64(time.Since(s.started).Seconds()),
		Providers: map[string]bool{
			"gemini":    s.keys.Gemini != "",
			"stability": s.keys.Stability != "",
			"unsplash":  s.keys.Unsplash != "",
			"openai":    s.keys.OpenAI != "",
			"supabase":  s.supabase != nil,
		},
	}
	code := http.StatusOK
	check := func(p Pinger) *bool {
		if p == nil {
			return nil
		}
		ok := p.Ping(ctx) == nil
		if !ok {
			report.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		return &ok
	}
	report.Database = check(s.db)
	report.Redis = check(s.redis)
	return report, code
}

// KeyPrefix returns at most seven leading characters, and never more than half
// of the key.
func KeyPrefix(key string) string {
	n := min(7, len(key)/2)
	if n <= 0 {
		return ""
	}
	return key[:n] + "..."
}

func openAIMessage(err error) string {
	var apiErr *openaiclient.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
