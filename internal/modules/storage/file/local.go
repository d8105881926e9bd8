package file

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalURLPrefix is the route the local upload directory is served under.
const LocalURLPrefix = "/uploads"

// LocalStore writes into a directory served as static files.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("local store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

func (s *LocalStore) Driver() string { return "local" }

// Dir returns the directory backing the store.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Put(ctx context.Context, key string, payload []byte, contentType string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key = normalizeObjectKey(key)
	if key == "" {
		return nil, ErrInvalidKey
	}

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("create object dir: %w", err)
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return nil, fmt.Errorf("write object: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("write object: %w", err)
	}

	return &Object{
		Name:        path.Base(key),
		URL:         path.Join(s.urlPrefix, key),
		ContentType: DetectContentType(key, payload, contentType),
		Size:        len(payload),
	}, nil
}
