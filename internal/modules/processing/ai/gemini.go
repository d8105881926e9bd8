package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	appcfg "github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/upstream"
)

// ErrInvalidResponse means the provider answered 2xx without usable text.
var ErrInvalidResponse = errors.New("invalid upstream response")

// GeminiBackend calls the generateContent REST endpoint directly.
type GeminiBackend struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewGeminiBackend(apiKey, baseURL string, httpClient *http.Client) *GeminiBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &GeminiBackend{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    httpClient,
	}
}

func (g *GeminiBackend) Name() string      { return "Gemini" }
func (g *GeminiBackend) Configured() bool { return g.apiKey != "" }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (g *GeminiBackend) Generate(ctx context.Context, model appcfg.ModelCandidate, input string, params Params) (string, error) {
	if !g.Configured() {
		return "", apierr.Configuration("Gemini API key not configured")
	}

	req, err := upstream.NewJSONRequest(ctx, http.MethodPost, g.endpoint(model), geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: input}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", err
	}

	body, _, err := upstream.Do(g.http, req, "Gemini")
	if err != nil {
		return "", err
	}
	return ExtractText(body)
}

func (g *GeminiBackend) endpoint(model appcfg.ModelCandidate) string {
	version := model.APIVersion
	if version == "" {
		version = "v1beta"
	}
	return fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		g.baseURL, version, url.PathEscape(model.Name), url.QueryEscape(g.apiKey))
}

// ExtractText returns the trimmed text of the first candidate.
func ExtractText(body []byte) (string, error) {
	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", invalidResponse(fmt.Errorf("%w: %v", ErrInvalidResponse, err))
	}
	if len(parsed.Candidates) == 0 {
		reason := "no candidates"
		if parsed.PromptFeedback != nil && parsed.PromptFeedback.BlockReason != "" {
			reason = "prompt blocked: " + parsed.PromptFeedback.BlockReason
		}
		return "", invalidResponse(fmt.Errorf("%w: %s", ErrInvalidResponse, reason))
	}

	first := parsed.Candidates[0]
	if first.Content == nil || len(first.Content.Parts) == 0 {
		reason := "candidate has no content"
		if first.FinishReason != "" {
			reason += " (finish reason " + first.FinishReason + ")"
		}
		return "", invalidResponse(fmt.Errorf("%w: %s", ErrInvalidResponse, reason))
	}

	var sb strings.Builder
	for _, part := range first.Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", invalidResponse(fmt.Errorf("%w: empty text", ErrInvalidResponse))
	}
	return text, nil
}

func invalidResponse(cause error) *apierr.Error {
	return apierr.Internal("Invalid response from AI provider", cause)
}
