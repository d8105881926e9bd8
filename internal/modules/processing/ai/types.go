package ai

// WriterRequest is the body of POST /api/ai-writer.
type WriterRequest struct {
	Action       string `json:"action"`
	Prompt       string `json:"prompt"`
	SelectedText string `json:"selectedText"`
}

type writerResponse struct {
	Text string `json:"text"`
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}
