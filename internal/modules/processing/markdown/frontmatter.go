package markdown

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta is the optional YAML header of an imported markdown file.
type Meta struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

// SplitFrontMatter separates a leading "---" YAML block from the body. A
// malformed header is treated as part of the body.
func SplitFrontMatter(text string) (Meta, string) {
	var meta Meta
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return meta, text
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, text
	}
	header := rest[:end]
	body := strings.TrimPrefix(rest[end+len("\n---"):], "\n")

	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return Meta{}, text
	}
	meta.Title = strings.TrimSpace(meta.Title)
	return meta, body
}
