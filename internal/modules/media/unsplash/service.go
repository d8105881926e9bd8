package unsplash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/upstream"
)

const (
	defaultPerPage = 12
	maxPerPage     = 30
)

// Service searches the Unsplash photo catalogue.
type Service struct {
	accessKey string
	baseURL   string
	http      *http.Client
}

func NewService(accessKey, baseURL string, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{
		accessKey: strings.TrimSpace(accessKey),
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
	}
}

// Search runs one search page.
func (s *Service) Search(ctx context.Context, in SearchRequest) (*SearchResponse, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, apierr.Validation("Query is required")
	}
	if s.accessKey == "" {
		return nil, apierr.Configuration("Unsplash API key not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(clampPerPage(in.PerPage)))
	params.Set("page", strconv.Itoa(max(in.Page, 1)))

	req, err := upstream.NewJSONRequest(ctx, http.MethodGet, s.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)
	req.Header.Set("Accept-Version", "v1")

	body, _, err := upstream.Do(s.http, req, "Unsplash")
	if err != nil {
		e := apierr.From(err)
		switch e.Kind {
		case apierr.KindAuthentication:
			return nil, e.WithMessage("Invalid Unsplash API key")
		case apierr.KindInternal:
			return nil, e
		default:
			return nil, e.WithMessage("Failed to search images").WithStatus(http.StatusInternalServerError)
		}
	}

	var raw searchResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apierr.Internal("Invalid response from Unsplash", err)
	}
	out := &SearchResponse{
		Results:    make([]Photo, 0, len(raw.Results)),
		Total:      raw.Total,
		TotalPages: raw.TotalPages,
	}
	for _, p := range raw.Results {
		out.Results = append(out.Results, p.slim())
	}
	return out, nil
}

func clampPerPage(n int) int {
	if n <= 0 {
		return defaultPerPage
	}
	return min(n, maxPerPage)
}
