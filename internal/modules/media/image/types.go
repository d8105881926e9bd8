package image

// GenerateRequest is the body of POST /api/generate-image. Duration is
// accepted for parity with the video route and ignored.
type GenerateRequest struct {
	Prompt      string `json:"prompt"`
	Duration    int    `json:"duration"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	StylePreset string `json:"stylePreset"`
}

type GenerateResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Seed     int64  `json:"seed"`
	Source   string `json:"source"`
	Prompt   string `json:"prompt"`
	Filename string `json:"filename"`
}
