// Package supabase is the handle to the backend-as-a-service. It is built once
// at startup by New and injected into the modules that need it.
package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/docwell/editor-server/internal/pkg/upstream"
)

// ErrNotConfigured is returned by New when the URL or key is missing.
var ErrNotConfigured = errors.New("supabase url or key is not configured")

// Backend is the subset of the service used by this server.
type Backend interface {
	// Ping checks the REST endpoint with the configured key and returns its status.
	Ping(ctx context.Context) (int, error)
	// Upload stores an object in a storage bucket and returns its public URL.
	Upload(ctx context.Context, bucket, path string, payload []byte, contentType string) (string, error)
	// BaseURL returns the project URL.
	BaseURL() string
}

// Client talks to the REST and Storage APIs.
type Client struct {
	baseURL *url.URL
	key     string
	http    *http.Client
}

var _ Backend = (*Client)(nil)

// New validates the configuration and returns a ready client.
func New(rawURL, key string, httpClient *http.Client) (*Client, error) {
	rawURL = strings.TrimRight(strings.TrimSpace(rawURL), "/")
	key = strings.TrimSpace(key)
	if rawURL == "" || key == "" {
		return nil, ErrNotConfigured
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid supabase url %q", rawURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: parsed, key: key, http: httpClient}, nil
}

func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("rest", "v1", ""), nil)
	if err != nil {
		return 0, err
	}
	c.authorize(req)

	_, status, err := upstream.Do(c.http, req, "Supabase")
	return status, err
}

func (c *Client) Upload(ctx context.Context, bucket, path string, payload []byte, contentType string) (string, error) {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if bucket == "" || path == "" {
		return "", fmt.Errorf("bucket and path are required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("storage", "v1", "object/"+bucket+"/"+path), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	if _, _, err := upstream.Do(c.http, req, "Supabase"); err != nil {
		return "", err
	}
	return c.endpoint("storage", "v1", "object/public/"+bucket+"/"+path), nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
}

func (c *Client) endpoint(service, version, rest string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + service + "/" + version + "/" + rest
	return u.String()
}
