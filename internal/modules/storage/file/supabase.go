package file

import (
	"context"
	"path"

	"github.com/docwell/editor-server/internal/pkg/supabase"
)

// SupabaseStore writes into a Supabase Storage bucket.
type SupabaseStore struct {
	backend supabase.Backend
	bucket  string
}

func NewSupabaseStore(backend supabase.Backend, bucket string) *SupabaseStore {
	return &SupabaseStore{backend: backend, bucket: bucket}
}

func (s *SupabaseStore) Driver() string { return "supabase" }

func (s *SupabaseStore) Put(ctx context.Context, key string, payload []byte, contentType string) (*Object, error) {
	key = normalizeObjectKey(key)
	if key == "" {
		return nil, ErrInvalidKey
	}
	contentType = DetectContentType(key, payload, contentType)
	publicURL, err := s.backend.Upload(ctx, s.bucket, key, payload, contentType)
	if err != nil {
		return nil, err
	}
	return &Object{Name: path.Base(key), URL: publicURL, ContentType: contentType, Size: len(payload)}, nil
}
