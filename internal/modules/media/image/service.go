package image

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	appcfg "github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/modules/storage/file"
	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/upstream"
)

const (
	defaultSize = 1024
	minSize     = 512
	maxSize     = 1536
	source      = "stability-ai"
)

// Service generates images with the Stability text-to-image API and stores
// the result.
type Service struct {
	cfg   appcfg.StabilityConfig
	http  *http.Client
	store file.Store
	now   func() time.Time
}

func NewService(cfg appcfg.StabilityConfig, httpClient *http.Client, store file.Store) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Service{cfg: cfg, http: httpClient, store: store, now: time.Now}
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
	StylePreset string       `json:"style_preset,omitempty"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		Seed         int64  `json:"seed"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

// Generate creates one image for in.Prompt.
func (s *Service) Generate(ctx context.Context, in GenerateRequest) (*GenerateResponse, error) {
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, apierr.Validation("Prompt is required")
	}
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return nil, apierr.Configuration("Stability API key not configured")
	}

	endpoint := fmt.Sprintf("%s/v1/generation/%s/text-to-image", s.cfg.BaseURL, s.cfg.Engine)
	req, err := upstream.NewJSONRequest(ctx, http.MethodPost, endpoint, stabilityRequest{
		TextPrompts: []textPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    7,
		Height:      clampSize(in.Height),
		Width:       clampSize(in.Width),
		Samples:     1,
		Steps:       30,
		StylePreset: strings.TrimSpace(in.StylePreset),
	})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	body, _, err := upstream.Do(s.http, req, "Stability AI")
	if err != nil {
		return nil, failed(err)
	}

	var parsed stabilityResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Artifacts) == 0 || parsed.Artifacts[0].Base64 == "" {
		return nil, apierr.Internal("Invalid response from Stability AI", err)
	}
	artifact := parsed.Artifacts[0]
	if artifact.FinishReason == "CONTENT_FILTERED" {
		return nil, apierr.Internal("Image was blocked by the content filter", nil)
	}
	payload, err := base64.StdEncoding.DecodeString(artifact.Base64)
	if err != nil {
		return nil, apierr.Internal("Invalid image data from Stability AI", err)
	}

	filename := fmt.Sprintf("generated-%d-%d.png", s.now().UnixMilli(), artifact.Seed)
	obj, err := s.store.Put(ctx, filename, payload, "image/png")
	if err != nil {
		return nil, apierr.Internal("Failed to save generated image", err)
	}

	return &GenerateResponse{
		Success:  true,
		URL:      obj.URL,
		Seed:     artifact.Seed,
		Source:   source,
		Prompt:   prompt,
		Filename: filename,
	}, nil
}

// failed collapses provider failures into a 500 keeping the provider detail.
func failed(err error) error {
	e := apierr.From(err)
	if e.Kind == apierr.KindInternal {
		return e
	}
	return e.WithMessage("Failed to generate image").WithStatus(http.StatusInternalServerError)
}

// clampSize rounds to a multiple of 64 inside the supported range.
func clampSize(v int) int {
	if v <= 0 {
		return defaultSize
	}
	if v < minSize {
		v = minSize
	}
	if v > maxSize {
		v = maxSize
	}
	return v / 64 * 64
}
