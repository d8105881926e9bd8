// Package file stores user visible objects: generated images and document
// cover images.
package file

import (
	"context"
	"errors"
	"fmt"

	appcfg "github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/pkg/supabase"
)

// ErrInvalidKey is returned for empty or unsafe object keys.
var ErrInvalidKey = errors.New("invalid object key")

// Object describes a stored payload.
type Object struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// Store writes objects and returns where they can be fetched.
type Store interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) (*Object, error)
	Driver() string
}

// New builds the store selected by storage.driver. The supabase backend may be
// nil unless that driver is selected.
func New(ctx context.Context, cfg *appcfg.AppConfig, backend supabase.Backend) (Store, error) {
	switch cfg.Storage.Driver {
	case appcfg.StorageS3:
		return NewS3Store(ctx, cfg.Storage.S3)
	case appcfg.StorageSupabase:
		if backend == nil {
			return nil, fmt.Errorf("storage driver supabase: %w", supabase.ErrNotConfigured)
		}
		return NewSupabaseStore(backend, cfg.Supabase.Bucket), nil
	default:
		return NewLocalStore(cfg.Paths.Uploads, LocalURLPrefix)
	}
}
