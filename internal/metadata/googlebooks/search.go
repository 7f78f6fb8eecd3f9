package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/readnestapp/readnest-server/internal/domain"
)

const (
	defaultMaxResults = 10
	maxMaxResults     = 40 // API hard limit

	// OrderRelevance and OrderNewest are the orderings the API supports.
	OrderRelevance = "relevance"
	OrderNewest    = "newest"
)

// SearchParams narrows a volume search.
type SearchParams struct {
	Query      string
	MaxResults int
	StartIndex int
	OrderBy    string
}

// Search queries the volumes API. Volumes without a title are dropped.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]domain.Book, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxMaxResults {
		maxResults = maxMaxResults
	}
	orderBy := params.OrderBy
	if orderBy == "" {
		orderBy = OrderRelevance
	}

	values := url.Values{}
	values.Set("q", params.Query)
	values.Set("maxResults", strconv.Itoa(maxResults))
	values.Set("startIndex", strconv.Itoa(params.StartIndex))
	values.Set("orderBy", orderBy)
	if c.language != "" {
		values.Set("langRestrict", c.language)
	}

	searchURL := c.baseURL + "?" + values.Encode()

	c.logger.Debug("searching google books",
		"query", params.Query,
		"url", searchURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("google books search results",
		"query", params.Query,
		"count", len(searchResp.Items),
		"total", searchResp.TotalItems,
	)

	books := make([]domain.Book, 0, len(searchResp.Items))
	for i := range searchResp.Items {
		if book, ok := toBook(&searchResp.Items[i]); ok {
			books = append(books, book)
		}
	}
	return books, nil
}

// GetVolume loads a single volume by its Google Books ID.
func (c *Client) GetVolume(ctx context.Context, id string) (*domain.Book, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	volumeURL := c.baseURL + "/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, volumeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("volume request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrVolumeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("volume request failed: status %d", resp.StatusCode)
	}

	var v volume
	if err := json.UnmarshalRead(resp.Body, &v); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	book, ok := toBook(&v)
	if !ok {
		return nil, ErrVolumeNotFound
	}
	return &book, nil
}

// toBook converts an API volume into a catalog book. Volumes without a
// title are rejected. ISBN-13 is preferred over ISBN-10, and image links
// are forced to https.
func toBook(v *volume) (domain.Book, bool) {
	info := &v.VolumeInfo
	if info.Title == "" {
		return domain.Book{}, false
	}

	var isbn10, isbn13 string
	for _, id := range info.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			isbn13 = id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	isbn := isbn13
	if isbn == "" {
		isbn = isbn10
	}

	authors := info.Authors
	if len(authors) == 0 {
		authors = []string{"Unbekannter Autor"}
	}

	return domain.Book{
		ID:            v.ID,
		Title:         info.Title,
		Subtitle:      info.Subtitle,
		Authors:       authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		ISBN:          isbn,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		Language:      info.Language,
		ImageLinks: domain.ImageLinks{
			SmallThumbnail: secureURL(info.ImageLinks.SmallThumbnail),
			Thumbnail:      secureURL(info.ImageLinks.Thumbnail),
		},
	}, true
}

// secureURL upgrades a plain http image link to https. Google Books still
// hands out http URLs for covers.
func secureURL(raw string) string {
	if strings.HasPrefix(raw, "http:") {
		return "https:" + raw[len("http:"):]
	}
	return raw
}
