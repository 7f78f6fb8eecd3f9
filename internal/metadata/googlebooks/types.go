package googlebooks

// searchResponse is the top-level volumes API search payload.
type searchResponse struct {
	Items      []volume `json:"items"`
	TotalItems int      `json:"totalItems"`
}

// volume is a single Google Books volume.
type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	Language            string               `json:"language"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	ImageLinks          volumeImageLinks     `json:"imageLinks"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type volumeImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}
