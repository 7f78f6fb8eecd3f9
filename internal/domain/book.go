package domain

// ImageLinks carries cover image URLs for a book, normalized to https.
type ImageLinks struct {
	SmallThumbnail string `json:"small_thumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

// Book is a catalog entry as returned by the remote book catalog.
type Book struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle,omitempty"`
	Authors       []string   `json:"authors"`
	Publisher     string     `json:"publisher,omitempty"`
	PublishedDate string     `json:"published_date,omitempty"`
	Description   string     `json:"description,omitempty"`
	ISBN          string     `json:"isbn,omitempty"`
	PageCount     int        `json:"page_count,omitempty"`
	Categories    []string   `json:"categories,omitempty"`
	Language      string     `json:"language,omitempty"`
	ImageLinks    ImageLinks `json:"image_links"`
}
