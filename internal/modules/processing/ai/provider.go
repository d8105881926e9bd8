package ai

import (
	"context"
	"errors"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	appcfg "github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/metrics"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
)

// SDKBackend generates text through the unified jetify client for the
// OpenAI and Anthropic providers.
type SDKBackend struct {
	provider string
	apiKey   string
	build    func(modelID string) jetapi.LanguageModel
}

// NewOpenAIClient builds an SDK client with retries disabled.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) openaiclient.Client {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(apiKey)),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(baseURL); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}
	if httpClient != nil {
		opts = append(opts, openaioption.WithHTTPClient(httpClient))
	}
	return openaiclient.NewClient(opts...)
}

func NewOpenAIBackend(apiKey, baseURL string, httpClient *http.Client) *SDKBackend {
	client := NewOpenAIClient(apiKey, baseURL, httpClient)
	return &SDKBackend{
		provider: "OpenAI",
		apiKey:   strings.TrimSpace(apiKey),
		build: func(modelID string) jetapi.LanguageModel {
			return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client))
		},
	}
}

func NewAnthropicBackend(apiKey string, httpClient *http.Client) *SDKBackend {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(apiKey)),
		anthropicoption.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, anthropicoption.WithHTTPClient(httpClient))
	}
	client := anthropicclient.NewClient(opts...)
	return &SDKBackend{
		provider: "Anthropic",
		apiKey:   strings.TrimSpace(apiKey),
		build: func(modelID string) jetapi.LanguageModel {
			return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client))
		},
	}
}

func (b *SDKBackend) Name() string      { return b.provider }
func (b *SDKBackend) Configured() bool { return b.apiKey != "" }

func (b *SDKBackend) Generate(ctx context.Context, model appcfg.ModelCandidate, input string, params Params) (string, error) {
	if !b.Configured() {
		return "", apierr.Configuration(b.provider + " API key not configured")
	}

	started := time.Now()
	resp, err := jetai.GenerateText(
		ctx,
		[]jetapi.Message{&jetapi.UserMessage{Content: jetapi.ContentFromText(input)}},
		jetai.WithModel(b.build(model.Name)),
		jetai.WithMaxOutputTokens(params.MaxOutputTokens),
		jetai.WithTemperature(params.Temperature),
	)
	if err != nil {
		metrics.ObserveProvider(b.provider, "error", started)
		return "", classifySDKError(err)
	}
	metrics.ObserveProvider(b.provider, "200", started)
	return extractTextFromAIResponse(resp)
}

// classifySDKError maps SDK errors onto the shared taxonomy.
func classifySDKError(err error) *apierr.Error {
	var oaErr *openaiclient.Error
	if errors.As(err, &oaErr) {
		return apierr.Classify(oaErr.StatusCode, err.Error())
	}
	var anErr *anthropicclient.Error
	if errors.As(err, &anErr) {
		return apierr.Classify(anErr.StatusCode, err.Error())
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apierr.Internal("Request cancelled", err)
	}
	return apierr.Classify(0, err.Error())
}

func extractTextFromAIResponse(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", invalidResponse(ErrInvalidResponse)
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := strings.TrimSpace(full.String())
	if text == "" {
		return "", invalidResponse(ErrInvalidResponse)
	}
	return text, nil
}

// normalizeOpenAIBaseURL makes sure the SDK base ends in /v1.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/") + "/"
}
