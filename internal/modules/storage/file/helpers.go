package file

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrRejectedImage wraps every ImagePolicy violation.
var ErrRejectedImage = errors.New("image rejected")

var safeSegment = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ImagePolicy limits which uploads are accepted as images.
type ImagePolicy struct {
	Extensions []string // lower case, without the dot
	MaxBytes   int64    // 0 means unlimited
}

// CoverPolicy applies to document cover images.
var CoverPolicy = ImagePolicy{
	Extensions: []string{"png", "jpg", "jpeg", "gif", "webp"},
	MaxBytes:   10 << 20,
}

// Check validates filename and size against the policy.
func (p ImagePolicy) Check(filename string, size int64) error {
	ext := extension(filename)
	if ext == "" {
		return fmt.Errorf("%w: %q has no extension", ErrRejectedImage, filename)
	}
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrRejectedImage, size, p.MaxBytes)
	}
	if len(p.Extensions) == 0 {
		return nil
	}
	for _, allowed := range p.Extensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: .%s is not allowed", ErrRejectedImage, ext)
}

// ObjectKey returns prefix followed by a random name that keeps the
// extension of original. Unknown extensions become .bin.
func ObjectKey(prefix, original string) string {
	ext := extension(original)
	if ext == "" || len(ext) > 8 || !safeSegment.MatchString(ext) {
		ext = "bin"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		return prefix + "/" + name + "." + ext
	}
	return name + "." + ext
}

// DetectContentType prefers the declared type, then the extension, then the
// payload bytes. A generic declared type does not win over a better guess.
func DetectContentType(filename string, payload []byte, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if ext := extension(filename); ext != "" {
		if guessed := mime.TypeByExtension("." + ext); guessed != "" {
			return guessed
		}
	}
	if len(payload) > 0 {
		return http.DetectContentType(payload)
	}
	return "application/octet-stream"
}

func extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(strings.TrimSpace(filename))), ".")
}

// normalizeObjectKey cleans a slash separated key. It returns "" for keys
// that are empty, escape the root or contain unsafe characters.
func normalizeObjectKey(key string) string {
	key = strings.Trim(strings.ReplaceAll(strings.TrimSpace(key), "\\", "/"), "/")
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "/")
	out := parts[:0]
	for _, seg := range parts {
		switch {
		case seg == "":
			continue
		case seg == "." || seg == ".." || !safeSegment.MatchString(seg):
			return ""
		}
		out = append(out, seg)
	}
	return strings.Join(out, "/")
}
