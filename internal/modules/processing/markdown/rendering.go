// Package markdown converts imported markdown into the editor's HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var (
	tagPattern        = regexp.MustCompile(`(?s)<[^>]*>`)
	blockClosePattern = regexp.MustCompile(`(?i)</(p|h[1-6]|li|div|tr|blockquote|pre)>|<br\s*/?>`)
	spacePattern      = regexp.MustCompile(`[ \t]+`)
)

// Render converts markdown to HTML. Raw HTML in the source is not passed through.
func Render(markdownText string) (string, error) {
	text := strings.TrimSpace(markdownText)
	if text == "" {
		return "", nil
	}
	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out.String(), nil
}

// PlainText strips tags from an HTML fragment, keeping block boundaries as
// newlines.
func PlainText(fragment string) string {
	text := blockClosePattern.ReplaceAllString(fragment, "\n")
	text = tagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// WordCount counts words in an HTML fragment. Each CJK character counts as a
// word.
func WordCount(fragment string) int {
	count := 0
	inWord := false
	for _, r := range PlainText(fragment) {
		switch {
		case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
			count++
			inWord = false
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-':
			if !inWord {
				count++
				inWord = true
			}
		default:
			inWord = false
		}
	}
	return count
}
