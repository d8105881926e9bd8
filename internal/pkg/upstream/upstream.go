// Package upstream executes requests against third-party providers.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/metrics"
)

// MaxBody bounds how much of a provider response is read.
const MaxBody = 16 << 20

// Do sends req and returns the body of a 2xx response. Transport failures and
// non-2xx answers come back as *apierr.Error.
func Do(client *http.Client, req *http.Request, provider string) ([]byte, int, error) {
	started := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		metrics.ObserveProvider(provider, "error", started)
		return nil, 0, apierr.Transport(provider, err)
	}
	defer resp.Body.Close()
	metrics.ObserveProvider(provider, strconv.Itoa(resp.StatusCode), started)

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBody))
	if err != nil {
		return nil, resp.StatusCode, apierr.Transport(provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, apierr.FromProviderResponse(resp.StatusCode, body)
	}
	return body, resp.StatusCode, nil
}

// Open sends req and hands back a 2xx response with its body unread. The
// caller closes the body. Non-2xx answers are read and classified like Do.
func Open(client *http.Client, req *http.Request, provider string) (*http.Response, error) {
	started := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		metrics.ObserveProvider(provider, "error", started)
		return nil, apierr.Transport(provider, err)
	}
	metrics.ObserveProvider(provider, strconv.Itoa(resp.StatusCode), started)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxBody))
	return nil, apierr.FromProviderResponse(resp.StatusCode, body)
}

// NewJSONRequest encodes payload as the request body.
func NewJSONRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, apierr.Internal("Failed to encode request", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, apierr.Internal("Failed to build request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
