package googlebooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/readnestapp/readnest-server/internal/domain"
)

// ErrVolumeNotFound is returned when a volume ID resolves to nothing.
var ErrVolumeNotFound = errors.New("volume not found")

// ErrUnknownCollection is returned for a collection name outside the
// curated set.
var ErrUnknownCollection = errors.New("unknown collection")

// Curated collection names for the discovery surface.
const (
	CollectionRecommended = "recommended"
	CollectionTrending    = "trending"
	CollectionFantasy     = "fantasy"
	CollectionSciFi       = "scifi"
	CollectionMystery     = "mystery"
	CollectionRomance     = "romance"
	CollectionClassics    = "classics"
	CollectionPhilosophy  = "philosophy"
)

// collectionQueries maps each curated collection to the search queries that
// feed it. Queries run in order until enough unique volumes are collected.
var collectionQueries = map[string][]string{
	CollectionRecommended: {
		"bestseller",
		"award winning books",
		"classic literature",
		"popular fiction",
	},
	CollectionFantasy: {
		"subject:fantasy dragons magic",
		"subject:fantasy tolkien",
		"subject:fantasy witches wizards",
		"subject:fantasy adventure",
	},
	CollectionSciFi: {
		"subject:science fiction",
		"sci-fi space technology",
		"subject:fiction science",
		"future technology fiction",
	},
	CollectionMystery: {
		"subject:mystery crime thriller",
		"detective mystery novels",
		"subject:thriller suspense",
		"crime fiction mystery",
	},
	CollectionRomance: {
		"subject:romance love",
		"romantic novels fiction",
		"subject:romance contemporary",
		"love story romance",
	},
	CollectionClassics: {
		"subject:classics german literature",
		"author:Goethe OR author:Schiller OR author:Kafka",
		"subject:german classics",
		"classics literature deutsch",
	},
	CollectionPhilosophy: {
		"subject:philosophy",
		"philosophy wisdom self-help",
		"subject:philosophy ethics",
		"philosophical books",
	},
}

// Collections lists the curated collection names.
func Collections() []string {
	return []string{
		CollectionRecommended,
		CollectionTrending,
		CollectionFantasy,
		CollectionSciFi,
		CollectionMystery,
		CollectionRomance,
		CollectionClassics,
		CollectionPhilosophy,
	}
}

// Collection fetches a curated discovery collection, deduplicated by volume
// ID and capped at maxResults. Trending aliases the recommended set.
func (c *Client) Collection(ctx context.Context, name string, maxResults int) ([]domain.Book, error) {
	if name == CollectionTrending {
		name = CollectionRecommended
	}

	queries, ok := collectionQueries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}

	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	perQuery := (maxResults + len(queries) - 1) / len(queries)

	seen := make(map[string]bool)
	books := make([]domain.Book, 0, maxResults)

	for _, query := range queries {
		results, err := c.Search(ctx, SearchParams{Query: query, MaxResults: perQuery})
		if err != nil {
			return nil, fmt.Errorf("collection query %q: %w", query, err)
		}

		for _, book := range results {
			if seen[book.ID] {
				continue
			}
			seen[book.ID] = true
			books = append(books, book)
		}

		if len(books) >= maxResults {
			break
		}
	}

	if len(books) > maxResults {
		books = books[:maxResults]
	}
	return books, nil
}
