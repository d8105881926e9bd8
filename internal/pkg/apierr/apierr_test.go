package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyByStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		message    string
		wantKind   Kind
		wantStatus int
	}{
		{"unauthorized", http.StatusUnauthorized, "bad key", KindAuthentication, http.StatusUnauthorized},
		{"forbidden keeps its status", http.StatusForbidden, "", KindAuthentication, http.StatusForbidden},
		{"gemini invalid key is a 400", http.StatusBadRequest, "API key not valid. Please pass a valid API key.", KindAuthentication, http.StatusBadRequest},
		{"not found", http.StatusNotFound, "models/gemini-x is not found for API version v1beta", KindNotFound, http.StatusNotFound},
		{"unsupported model", http.StatusBadRequest, "model gemini-x is not supported for generateContent", KindNotFound, http.StatusBadRequest},
		{"model text on a 5xx is not a missing model", http.StatusInternalServerError, "model backend not found in region", KindUpstream, http.StatusInternalServerError},
		{"bad key text on a 5xx", http.StatusBadGateway, "invalid api key cache", KindUpstream, http.StatusBadGateway},
		{"rate limited", http.StatusTooManyRequests, "quota exceeded", KindUpstream, http.StatusTooManyRequests},
		{"server error", http.StatusServiceUnavailable, "overloaded", KindUpstream, http.StatusServiceUnavailable},
		{"no status", 0, "boom", KindUpstream, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Classify(tt.status, tt.message)
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantStatus, e.Status)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestFromProviderResponseParsesEnvelopes(t *testing.T) {
	gemini := []byte(`{"error":{"code":404,"message":"models/gemini-pro is not found","status":"NOT_FOUND"}}`)
	e := FromProviderResponse(http.StatusNotFound, gemini)
	assert.Equal(t, KindNotFound, e.Kind)
	assert.Equal(t, "NOT_FOUND: models/gemini-pro is not found", e.Details)

	openai := []byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	e = FromProviderResponse(http.StatusUnauthorized, openai)
	assert.Equal(t, KindAuthentication, e.Kind)
	assert.Contains(t, e.Details, "Incorrect API key provided")

	stability := []byte(`{"id":"x","name":"bad_request","message":"prompt is required"}`)
	e = FromProviderResponse(http.StatusBadRequest, stability)
	assert.Equal(t, KindUpstream, e.Kind)
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, "bad_request: prompt is required", e.Details)

	unsplash := []byte(`{"errors":["OAuth error: The access token is invalid"]}`)
	e = FromProviderResponse(http.StatusUnauthorized, unsplash)
	assert.Equal(t, KindAuthentication, e.Kind)
	assert.Equal(t, "OAuth error: The access token is invalid", e.Details)

	e = FromProviderResponse(http.StatusServiceUnavailable, []byte(`{"error":{"code":503,"message":"model backend not found in region","status":"NOT_FOUND"}}`))
	assert.Equal(t, KindUpstream, e.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, e.Status)

	e = FromProviderResponse(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.Equal(t, KindUpstream, e.Kind)
	assert.Equal(t, "<html>bad gateway</html>", e.Details)
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	assert.Nil(t, From(nil))

	e := From(errors.New("disk full"))
	assert.Equal(t, KindInternal, e.Kind)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, "disk full", e.Details)

	wrapped := fmt.Errorf("writer: %w", Validation("Prompt is required"))
	e = From(wrapped)
	require.Equal(t, KindValidation, e.Kind)
	assert.True(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(wrapped, KindInternal))
}

func TestWithHelpersCopy(t *testing.T) {
	base := Configuration("missing")
	custom := base.WithMessage("Gemini API key not configured").WithStatus(http.StatusServiceUnavailable)

	assert.Equal(t, "missing", base.Message)
	assert.Equal(t, http.StatusInternalServerError, base.Status)
	assert.Equal(t, "Gemini API key not configured", custom.Message)
	assert.Equal(t, http.StatusServiceUnavailable, custom.Status)
}
