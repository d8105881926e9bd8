package supabase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresURLAndKey(t *testing.T) {
	_, err := New("", "key", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = New("https://x.supabase.co", " ", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = New("not a url", "key", nil)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", "anon", srv.Client())
	require.NoError(t, err)
	status, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, srv.URL, c.BaseURL())
}

func TestPingInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "bad", srv.Client())
	require.NoError(t, err)
	status, err := c.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.True(t, apierr.IsKind(err, apierr.KindAuthentication))
}

func TestUpload(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/documents/covers/a.png", r.URL.Path)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"Key":"documents/covers/a.png"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "service", srv.Client())
	require.NoError(t, err)
	u, err := c.Upload(context.Background(), "documents", "/covers/a.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/documents/covers/a.png", u)
	assert.Equal(t, []byte("png"), gotBody)

	_, err = c.Upload(context.Background(), "", "a.png", nil, "")
	assert.Error(t, err)
}
