package image

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	appcfg "github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/modules/storage/file"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, cfg appcfg.StabilityConfig, dir string) *gin.Engine {
	t.Helper()
	store, err := file.NewLocalStore(dir, file.LocalURLPrefix)
	require.NoError(t, err)
	svc := NewService(cfg, http.DefaultClient, store)
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }
	r := gin.New()
	NewHandler(svc, nil).RegisterRoutes(r.Group("/api"))
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate-image", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	var got stabilityRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/generation/sdxl/text-to-image", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"artifacts": []map[string]any{{"base64": base64.StdEncoding.EncodeToString(png), "seed": 42, "finishReason": "SUCCESS"}},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	r := newRouter(t, appcfg.StabilityConfig{APIKey: "sk-test", BaseURL: srv.URL, Engine: "sdxl"}, dir)
	w := post(r, `{"prompt":" a red fox ","width":700,"stylePreset":"photographic"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, "generated-1700000000123-42.png", out.Filename)
	assert.Equal(t, "/uploads/generated-1700000000123-42.png", out.URL)
	assert.Equal(t, int64(42), out.Seed)
	assert.Equal(t, "a red fox", out.Prompt)
	assert.Equal(t, source, out.Source)

	assert.Equal(t, 640, got.Width)
	assert.Equal(t, 1024, got.Height)
	assert.Equal(t, "photographic", got.StylePreset)
	require.Len(t, got.TextPrompts, 1)

	saved, err := os.ReadFile(filepath.Join(dir, out.Filename))
	require.NoError(t, err)
	assert.Equal(t, png, saved)
}

func TestGenerateImageErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"id":"x","name":"unauthorized","message":"Incorrect API key"}`))
	}))
	defer srv.Close()

	r := newRouter(t, appcfg.StabilityConfig{APIKey: "sk-bad", BaseURL: srv.URL, Engine: "sdxl"}, t.TempDir())
	assert.Equal(t, http.StatusBadRequest, post(r, `{"prompt":"  "}`).Code)

	w := post(r, `{"prompt":"fox"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect API key")

	r = newRouter(t, appcfg.StabilityConfig{BaseURL: srv.URL, Engine: "sdxl"}, t.TempDir())
	w = post(r, `{"prompt":"fox"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Stability API key not configured")
}

func TestGenerateImageEmptyArtifacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"artifacts":[]}`))
	}))
	defer srv.Close()

	r := newRouter(t, appcfg.StabilityConfig{APIKey: "k", BaseURL: srv.URL, Engine: "sdxl"}, t.TempDir())
	w := post(r, `{"prompt":"fox"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestClampSize(t *testing.T) {
	assert.Equal(t, 1024, clampSize(0))
	assert.Equal(t, 512, clampSize(100))
	assert.Equal(t, 1536, clampSize(5000))
	assert.Equal(t, 832, clampSize(850))
}
