package ai

import (
	"context"
	"net/http"
	"strings"

	appcfg "github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/pkg/apierr"
	"go.uber.org/zap"
)

const (
	routeWriter    = "ai-writer"
	routeTranslate = "translate"
)

// Service runs the writing assistant and translation pipelines.
type Service struct {
	backend TextBackend
	invoker *Invoker
	logger  *zap.Logger
}

func NewService(backend TextBackend, models []appcfg.ModelCandidate, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend: backend,
		invoker: NewInvoker(backend, models, logger),
		logger:  logger,
	}
}

// NewBackend returns the text backend selected by ai.text_provider.
func NewBackend(cfg appcfg.AIConfig, httpClient *http.Client) TextBackend {
	switch cfg.TextProvider {
	case appcfg.ProviderOpenAI:
		return NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient)
	case appcfg.ProviderAnthropic:
		return NewAnthropicBackend(cfg.AnthropicAPIKey, httpClient)
	default:
		return NewGeminiBackend(cfg.GeminiAPIKey, cfg.GeminiBaseURL, httpClient)
	}
}

// Write produces writing-assistant text for one request.
func (s *Service) Write(ctx context.Context, in WriterRequest) (string, error) {
	if err := ValidateWriterRequest(in.Action, in.Prompt, in.SelectedText); err != nil {
		return "", err
	}
	if err := s.requireKey(); err != nil {
		return "", err
	}
	prompt := BuildWriterPrompt(in.Action, in.Prompt, in.SelectedText)
	text, _, err := s.invoker.Invoke(ctx, routeWriter, prompt.Input(), WriterParams)
	if err != nil {
		return "", routeError(err, "Failed to generate text")
	}
	return text, nil
}

// Translate translates in.Text into in.TargetLanguage.
func (s *Service) Translate(ctx context.Context, in TranslateRequest) (*TranslateResponse, error) {
	if err := ValidateTranslateRequest(in.Text, in.TargetLanguage); err != nil {
		return nil, err
	}
	if err := s.requireKey(); err != nil {
		return nil, err
	}
	source := strings.TrimSpace(in.SourceLanguage)
	target := strings.TrimSpace(in.TargetLanguage)
	prompt := BuildTranslatePrompt(in.Text, source, target)
	text, _, err := s.invoker.Invoke(ctx, routeTranslate, prompt.Input(), TranslateParams)
	if err != nil {
		return nil, routeError(err, "Translation failed")
	}
	if source == "" {
		source = "auto"
	}
	return &TranslateResponse{TranslatedText: text, SourceLanguage: source, TargetLanguage: target}, nil
}

func (s *Service) requireKey() error {
	if s.backend.Configured() {
		return nil
	}
	return apierr.Configuration(s.backend.Name() + " API key not configured")
}

// routeError replaces the generic upstream message with a route specific one.
func routeError(err error, upstreamMsg string) error {
	e := apierr.From(err)
	if e.Kind == apierr.KindUpstream {
		return e.WithMessage(upstreamMsg)
	}
	return e
}
