package diagnostics

type OpenAIReport struct {
	Configured bool   `json:"configured"`
	Valid      bool   `json:"valid"`
	KeyLength  int    `json:"keyLength"`
	KeyPrefix  string `json:"keyPrefix"`
	ModelCount *int   `json:"modelCount,omitempty"`
	Error      string `json:"error,omitempty"`
}

type SupabaseReport struct {
	Configured bool   `json:"configured"`
	Valid      bool   `json:"valid"`
	URL        string `json:"url"`
	KeyLength  int    `json:"keyLength"`
	KeyPrefix  string `json:"keyPrefix"`
	Status     int    `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
}

type HealthReport struct {
	Status    string          `json:"status"`
	Uptime    int64           `json:"uptime"`
	Providers map[string]bool `json:"providers"`
	Database  *bool           `json:"database,omitempty"`
	Redis     *bool           `json:"redis,omitempty"`
}
