package document

// FormatMarkdown marks content that must be rendered to HTML before saving.
const FormatMarkdown = "markdown"

// CreateInput is a new document. Cover is optional.
type CreateInput struct {
	Title   string  `json:"title" form:"title"`
	Content string  `json:"content" form:"content"`
	Format  string  `json:"format" form:"format"`
	Cover   *Upload `json:"-" form:"-"`
}

// UpdateInput patches a document. Nil fields are left unchanged.
type UpdateInput struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Format     string  `json:"format"`
	CoverImage *string `json:"coverImage"`
}

// Upload is an attached file read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
