package domain

import (
	"math"
	"time"
)

// Review is one user's rating and text for a book. A user writes at most
// one review per book.
type Review struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	Likes     []string  `json:"likes"`
	IsPublic  bool      `json:"is_public"`
}

// LikedBy reports whether the user has liked this review.
func (r *Review) LikedBy(userID string) bool {
	for _, id := range r.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike adds the user's like when absent and removes it when present,
// returning the new liked state.
func (r *Review) ToggleLike(userID string) bool {
	for i, id := range r.Likes {
		if id == userID {
			r.Likes = append(r.Likes[:i:i], r.Likes[i+1:]...)
			return false
		}
	}
	r.Likes = append(r.Likes, userID)
	return true
}

// BookStats is the cached per-book review aggregate.
type BookStats struct {
	UpdatedAt     time.Time `json:"updated_at"`
	BookID        string    `json:"book_id"`
	ReviewCount   int       `json:"review_count"`
	AverageRating float64   `json:"average_rating"`
}

// ComputeBookStats aggregates the given reviews. The average is rounded to
// one decimal place.
func ComputeBookStats(bookID string, reviews []Review, now time.Time) BookStats {
	stats := BookStats{BookID: bookID, ReviewCount: len(reviews), UpdatedAt: now}
	if len(reviews) == 0 {
		return stats
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	stats.AverageRating = math.Round(avg*10) / 10
	return stats
}
