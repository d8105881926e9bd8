package video

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/upstream"
)

var validJobID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Service starts OpenAI video generation jobs.
type Service struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewService(apiKey, baseURL, model string, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Service{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/v1"),
		model:   model,
		http:    httpClient,
	}
}

type createVideoRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Seconds string `json:"seconds"`
}

type videoJob struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Generate submits one job. The returned URL points at this server's content
// route, which fetches the clip from OpenAI with the server key once the job
// has completed.
func (s *Service) Generate(ctx context.Context, in GenerateRequest) (*GenerateResponse, error) {
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, apierr.Validation("Prompt is required")
	}
	if s.apiKey == "" {
		return nil, apierr.Configuration("OpenAI API key not configured")
	}

	req, err := upstream.NewJSONRequest(ctx, http.MethodPost, s.baseURL+"/v1/videos", createVideoRequest{
		Model:   s.model,
		Prompt:  prompt,
		Seconds: strconv.Itoa(Seconds(in.Duration)),
	})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	body, _, err := upstream.Do(s.http, req, "OpenAI")
	if err != nil {
		return nil, err
	}
	var job videoJob
	if err := json.Unmarshal(body, &job); err != nil || job.ID == "" {
		return nil, apierr.Internal("Invalid response from OpenAI", err)
	}
	return &GenerateResponse{
		URL:    ContentPath(job.ID),
		ID:     job.ID,
		Status: job.Status,
	}, nil
}

// Content opens the rendered clip of job id. rangeHeader is forwarded so
// players can seek. The caller closes the response body.
func (s *Service) Content(ctx context.Context, id, rangeHeader string) (*http.Response, error) {
	if !validJobID.MatchString(id) {
		return nil, apierr.Validation("Invalid video id")
	}
	if s.apiKey == "" {
		return nil, apierr.Configuration("OpenAI API key not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/videos/"+id+"/content", nil)
	if err != nil {
		return nil, apierr.Internal("Failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	return upstream.Open(s.http, req, "OpenAI")
}

// Seconds maps a requested duration onto the clip lengths the API accepts.
func Seconds(duration int) int {
	switch {
	case duration <= 4:
		return 4
	case duration <= 8:
		return 8
	default:
		return 12
	}
}
