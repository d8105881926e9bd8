package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveRuntimePath makes raw absolute relative to the working directory.
// An empty raw falls back to fallbackSubdir.
func ResolveRuntimePath(raw, fallbackSubdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallbackSubdir)
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	base, err := os.Getwd()
	if err != nil || base == "" {
		base = "."
	}
	return filepath.Join(base, target)
}
