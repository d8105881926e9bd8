package ai

import (
	"fmt"
	"strings"

	"github.com/docwell/editor-server/internal/pkg/apierr"
)

var languageCodeToName = map[string]string{
	"ar": "Arabic",
	"bg": "Bulgarian",
	"cs": "Czech",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"fa": "Persian",
	"fi": "Finnish",
	"fr": "French",
	"he": "Hebrew",
	"hi": "Hindi",
	"hu": "Hungarian",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"ms": "Malay",
	"nl": "Dutch",
	"no": "Norwegian",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sv": "Swedish",
	"th": "Thai",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"vi": "Vietnamese",
	"zh": "Chinese",
}

// LanguageName resolves an ISO code (or a region tagged one like "pt-BR") to
// an English name. Unknown values are returned as given.
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	lower := strings.ToLower(code)
	if name, ok := languageCodeToName[lower]; ok {
		return name
	}
	if i := strings.IndexAny(lower, "-_"); i > 0 {
		if name, ok := languageCodeToName[lower[:i]]; ok {
			return name
		}
	}
	return code
}

// ValidateTranslateRequest requires the text and the target language.
func ValidateTranslateRequest(text, targetLanguage string) error {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(targetLanguage) == "" {
		return apierr.Validation("Text and targetLanguage are required")
	}
	return nil
}

// BuildTranslatePrompt builds the translation prompt. An empty source asks the
// model to detect the language.
func BuildTranslatePrompt(text, sourceLanguage, targetLanguage string) Prompt {
	source := "the detected source language"
	if name := LanguageName(sourceLanguage); name != "" && !strings.EqualFold(sourceLanguage, "auto") {
		source = name
	}
	system := fmt.Sprintf(
		"Translate the following text from %s to %s. Preserve the original formatting, line breaks and any HTML tags. Return only the translated text, without explanations or quotes.",
		source, LanguageName(targetLanguage))
	return Prompt{System: system, User: text}
}
