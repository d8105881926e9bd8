package unsplash

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func search(svc *Service, body string) *httptest.ResponseRecorder {
	r := gin.New()
	NewHandler(svc, nil).RegisterRoutes(r.Group("/api"))
	req := httptest.NewRequest(http.MethodPost, "/api/unsplash-search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const samplePage = `{
  "total": 133,
  "total_pages": 12,
  "results": [{
    "id": "eOLpJytrbsQ",
    "description": null,
    "alt_description": "a cat on a sofa",
    "width": 4000, "height": 3000, "color": "#A7A2A1",
    "urls": {"raw": "r", "full": "f", "regular": "g", "small": "s", "thumb": "t"},
    "user": {"name": "Jane", "username": "jane", "links": {"html": "https://unsplash.com/@jane"}},
    "links": {"html": "https://unsplash.com/photos/eOLpJytrbsQ", "download_location": "https://api.unsplash.com/photos/eOLpJytrbsQ/download"}
  }]
}`

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "cats", r.URL.Query().Get("query"))
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "Client-ID access", r.Header.Get("Authorization"))
		assert.Equal(t, "v1", r.Header.Get("Accept-Version"))
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	w := search(NewService("access", srv.URL, srv.Client()), `{"query":"cats","per_page":100}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 133, out.Total)
	assert.Equal(t, 12, out.TotalPages)
	require.Len(t, out.Results, 1)
	p := out.Results[0]
	assert.Equal(t, "eOLpJytrbsQ", p.ID)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, "a cat on a sofa", p.AltDescription)
	assert.Equal(t, "g", p.URLs.Regular)
	assert.Equal(t, "https://unsplash.com/@jane", p.User.Link)
}

func TestSearchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Client-ID bad" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":["OAuth error: The access token is invalid"]}`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"errors":["Internal"]}`))
	}))
	defer srv.Close()

	assert.Equal(t, http.StatusBadRequest, search(NewService("k", srv.URL, nil), `{"query":" "}`).Code)
	assert.Equal(t, http.StatusInternalServerError, search(NewService("", srv.URL, nil), `{"query":"cats"}`).Code)

	w := search(NewService("bad", srv.URL, nil), `{"query":"cats"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Unsplash API key")

	w = search(NewService("ok", srv.URL, nil), `{"query":"cats"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestClampPerPage(t *testing.T) {
	assert.Equal(t, defaultPerPage, clampPerPage(0))
	assert.Equal(t, 5, clampPerPage(5))
	assert.Equal(t, maxPerPage, clampPerPage(99))
}
