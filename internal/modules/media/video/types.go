package video

// GenerateRequest is the body of POST /api/generate-video. Duration is in
// seconds.
type GenerateRequest struct {
	Prompt   string `json:"prompt"`
	Duration int    `json:"duration"`
}

// GenerateResponse carries a URL relative to this server; the provider's own
// content endpoint needs the server key and is never handed to clients.
type GenerateResponse struct {
	URL    string `json:"url"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

// errorResponse tells the client to fall back to a placeholder.
type errorResponse struct {
	Error    string `json:"error"`
	Details  string `json:"details,omitempty"`
	Fallback bool   `json:"fallback"`
}

// ContentPath is where the clip of job id is served.
func ContentPath(id string) string {
	return "/api/videos/" + id + "/content"
}
