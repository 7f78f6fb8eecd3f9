package googlebooks

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
	"totalItems": 2,
	"items": [
		{
			"id": "vol-1",
			"volumeInfo": {
				"title": "Die Verwandlung",
				"authors": ["Franz Kafka"],
				"publisher": "Reclam",
				"publishedDate": "1915",
				"language": "de",
				"industryIdentifiers": [
					{"type": "ISBN_10", "identifier": "3150096006"},
					{"type": "ISBN_13", "identifier": "9783150096000"}
				],
				"imageLinks": {
					"smallThumbnail": "http://books.google.com/small.jpg",
					"thumbnail": "http://books.google.com/thumb.jpg"
				}
			}
		},
		{
			"id": "vol-2",
			"volumeInfo": {}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(slog.New(slog.DiscardHandler),
		WithBaseURL(srv.URL),
		WithRateLimit(1000, 1000),
	)
}

func TestSearch(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	})

	books, err := client.Search(context.Background(), SearchParams{Query: "kafka", MaxResults: 5})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "q=kafka")
	assert.Contains(t, gotQuery, "maxResults=5")
	assert.Contains(t, gotQuery, "orderBy=relevance")
	assert.Contains(t, gotQuery, "langRestrict=de")

	require.Len(t, books, 1, "the titleless volume is dropped")
	book := books[0]
	assert.Equal(t, "vol-1", book.ID)
	assert.Equal(t, []string{"Franz Kafka"}, book.Authors)
	assert.Equal(t, "9783150096000", book.ISBN, "ISBN-13 wins over ISBN-10")
	assert.Equal(t, "https://books.google.com/thumb.jpg", book.ImageLinks.Thumbnail)
	assert.Equal(t, "https://books.google.com/small.jpg", book.ImageLinks.SmallThumbnail)
}

func TestSearchDefaultsAuthor(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"id":"vol-1","volumeInfo":{"title":"Anonym"}}]}`))
	})

	books, err := client.Search(context.Background(), SearchParams{Query: "x"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, []string{"Unbekannter Autor"}, books[0].Authors)
}

func TestSearchUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), SearchParams{Query: "x"})
	assert.ErrorContains(t, err, "status 429")
}

func TestGetVolume(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vol-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"vol-1","volumeInfo":{"title":"Die Verwandlung","pageCount":104}}`))
	})

	book, err := client.GetVolume(context.Background(), "vol-1")
	require.NoError(t, err)
	assert.Equal(t, "Die Verwandlung", book.Title)
	assert.Equal(t, 104, book.PageCount)

	_, err = client.GetVolume(context.Background(), "vol-missing")
	assert.ErrorIs(t, err, ErrVolumeNotFound)
}

func TestCollectionDeduplicates(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		// Every query returns the same volume; the collection must
		// deduplicate across queries.
		_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"id":"vol-1","volumeInfo":{"title":"Faust"}}]}`))
	})

	books, err := client.Collection(context.Background(), CollectionClassics, 8)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "vol-1", books[0].ID)
	assert.Equal(t, 4, calls, "all queries ran because the cap was never reached")
}

func TestCollectionUnknown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems":0}`))
	})

	_, err := client.Collection(context.Background(), "cooking", 5)
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestCollectionTrendingAliasesRecommended(t *testing.T) {
	var queries []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"totalItems":0,"items":[]}`))
	})

	_, err := client.Collection(context.Background(), CollectionTrending, 4)
	require.NoError(t, err)
	assert.Equal(t, collectionQueries[CollectionRecommended], queries)
}
