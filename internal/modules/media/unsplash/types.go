package unsplash

// SearchRequest is the body of POST /api/unsplash-search.
type SearchRequest struct {
	Query   string `json:"query"`
	PerPage int    `json:"per_page"`
	Page    int    `json:"page"`
}

type SearchResponse struct {
	Results    []Photo `json:"results"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
}

// Photo is the subset of an Unsplash photo the editor needs, including the
// attribution links required by the API guidelines.
type Photo struct {
	ID               string    `json:"id"`
	Description      string    `json:"description"`
	AltDescription   string    `json:"alt_description"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	Color            string    `json:"color"`
	URLs             PhotoURLs `json:"urls"`
	User             PhotoUser `json:"user"`
	HTMLLink         string    `json:"html_link"`
	DownloadLocation string    `json:"download_location"`
}

type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type PhotoUser struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Link     string `json:"link"`
}

type searchResult struct {
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
	Results    []rawPhoto `json:"results"`
}

type rawPhoto struct {
	ID             string    `json:"id"`
	Description    *string   `json:"description"`
	AltDescription *string   `json:"alt_description"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Color          string    `json:"color"`
	URLs           PhotoURLs `json:"urls"`
	User           struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Links    struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
	Links struct {
		HTML             string `json:"html"`
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
}

func (p rawPhoto) slim() Photo {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return Photo{
		ID:               p.ID,
		Description:      deref(p.Description),
		AltDescription:   deref(p.AltDescription),
		Width:            p.Width,
		Height:           p.Height,
		Color:            p.Color,
		URLs:             p.URLs,
		User:             PhotoUser{Name: p.User.Name, Username: p.User.Username, Link: p.User.Links.HTML},
		HTMLLink:         p.Links.HTML,
		DownloadLocation: p.Links.DownloadLocation,
	}
}
