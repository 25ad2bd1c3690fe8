package pixabay

import "strconv"

// ImageRecord is one image as returned by the Pixabay API, identified by
// the string form of its numeric id.
type ImageRecord struct {
	ID            string `json:"id"`
	PreviewURL    string `json:"previewURL"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	FullHDURL     string `json:"fullHDURL,omitempty"`
	ImageWidth    int    `json:"imageWidth"`
	ImageHeight   int    `json:"imageHeight"`
	ImageSize     int64  `json:"imageSize"`
	User          string `json:"user"`
	Tags          string `json:"tags,omitempty"`
	PageURL       string `json:"pageURL,omitempty"`
}

// searchHit shadows the record id with the numeric wire form so a hit
// without an id can be told apart from id 0.
type searchHit struct {
	ID *int64 `json:"id"`
	ImageRecord
}

func (h searchHit) record() ImageRecord {
	rec := h.ImageRecord
	rec.ID = ""
	if h.ID != nil {
		rec.ID = strconv.FormatInt(*h.ID, 10)
	}
	return rec
}

type searchResponse struct {
	Total     int         `json:"total"`
	TotalHits int         `json:"totalHits"`
	Hits      []searchHit `json:"hits"`
}
