package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnestapp/readnest-server/internal/domain"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{bookId}/reviews",
		Summary:     "Create review",
		Description: "Creates the user's review for a book. Each user may review a book at most once.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{bookId}/reviews",
		Summary:     "List book reviews",
		Description: "Returns the reviews for a book, newest first",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBookReviews)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMyBookReview",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{bookId}/reviews/me",
		Summary:     "Get my review for a book",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMyBookReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{bookId}/stats",
		Summary:     "Get book rating stats",
		Tags:        []string{"Reviews"},
	}, s.handleGetBookStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReview",
		Method:      http.MethodPut,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Update review",
		Description: "Updates the user's own review",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReview",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Delete review",
		Description: "Deletes the user's own review",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleReviewLike",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/like",
		Summary:     "Toggle review like",
		Description: "Likes the review, or removes the like if the user already liked it",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleReviewLike)
}

// === DTOs ===

// CreateReviewRequest is the request body for creating a review.
type CreateReviewRequest struct {
	Rating int    `json:"rating" minimum:"1" maximum:"5" doc:"Star rating from 1 to 5"`
	Text   string `json:"text,omitempty" maxLength:"5000" doc:"Review text"`
}

// CreateReviewInput wraps the create review request for Huma.
type CreateReviewInput struct {
	Authorization string `header:"Authorization"`
	BookID        string `path:"bookId" doc:"Book ID"`
	Body          CreateReviewRequest
}

// ReviewResponse contains review data in API responses.
type ReviewResponse struct {
	ID        string    `json:"id" doc:"Review ID"`
	BookID    string    `json:"book_id" doc:"Book ID"`
	UserID    string    `json:"user_id" doc:"Author user ID"`
	Username  string    `json:"username" doc:"Author display name"`
	Rating    int       `json:"rating" doc:"Star rating from 1 to 5"`
	Text      string    `json:"text,omitempty" doc:"Review text"`
	LikeCount int       `json:"like_count" doc:"Number of likes"`
	Liked     bool      `json:"liked" doc:"Whether the requesting user liked this review"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// ReviewOutput wraps the review response for Huma.
type ReviewOutput struct {
	Body ReviewResponse
}

// ListBookReviewsInput contains parameters for listing a book's reviews.
type ListBookReviewsInput struct {
	Authorization string `header:"Authorization"`
	BookID        string `path:"bookId" doc:"Book ID"`
}

// ListReviewsResponse contains a list of reviews.
type ListReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews" doc:"Reviews, newest first"`
}

// ListReviewsOutput wraps the review list for Huma.
type ListReviewsOutput struct {
	Body ListReviewsResponse
}

// MyBookReviewInput contains parameters for fetching the user's own review.
type MyBookReviewInput struct {
	Authorization string `header:"Authorization"`
	BookID        string `path:"bookId" doc:"Book ID"`
}

// BookStatsInput contains parameters for fetching book rating stats.
type BookStatsInput struct {
	BookID string `path:"bookId" doc:"Book ID"`
}

// BookStatsResponse contains aggregate rating data for a book.
type BookStatsResponse struct {
	BookID        string  `json:"book_id" doc:"Book ID"`
	ReviewCount   int     `json:"review_count" doc:"Number of reviews"`
	AverageRating float64 `json:"average_rating" doc:"Average rating rounded to one decimal"`
}

// BookStatsOutput wraps the book stats response for Huma.
type BookStatsOutput struct {
	Body BookStatsResponse
}

// UpdateReviewRequest is the request body for updating a review.
type UpdateReviewRequest struct {
	Rating int    `json:"rating" minimum:"1" maximum:"5" doc:"Star rating from 1 to 5"`
	Text   string `json:"text,omitempty" maxLength:"5000" doc:"Review text"`
}

// UpdateReviewInput wraps the update review request for Huma.
type UpdateReviewInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Review ID"`
	Body          UpdateReviewRequest
}

// DeleteReviewInput contains parameters for deleting a review.
type DeleteReviewInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Review ID"`
}

// ToggleLikeInput contains parameters for toggling a review like.
type ToggleLikeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Review ID"`
}

// === Handlers ===

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.CreateReview(ctx, userID, input.BookID, input.Body.Rating, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: mapReviewResponse(review, userID)}, nil
}

func (s *Server) handleListBookReviews(ctx context.Context, input *ListBookReviewsInput) (*ListReviewsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	reviews, err := s.services.Review.GetBookReviews(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	resp := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		resp[i] = mapReviewResponse(&reviews[i], userID)
	}

	return &ListReviewsOutput{Body: ListReviewsResponse{Reviews: resp}}, nil
}

func (s *Server) handleGetMyBookReview(ctx context.Context, input *MyBookReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.GetUserBookReview(ctx, userID, input.BookID)
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: mapReviewResponse(review, userID)}, nil
}

func (s *Server) handleGetBookStats(ctx context.Context, input *BookStatsInput) (*BookStatsOutput, error) {
	stats, err := s.services.Review.GetBookStats(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	return &BookStatsOutput{Body: BookStatsResponse{
		BookID:        stats.BookID,
		ReviewCount:   stats.ReviewCount,
		AverageRating: stats.AverageRating,
	}}, nil
}

func (s *Server) handleUpdateReview(ctx context.Context, input *UpdateReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.UpdateReview(ctx, userID, input.ID, input.Body.Rating, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: mapReviewResponse(review, userID)}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *DeleteReviewInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.DeleteReview(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Review deleted"}}, nil
}

func (s *Server) handleToggleReviewLike(ctx context.Context, input *ToggleLikeInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, _, err := s.services.Review.ToggleLike(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: mapReviewResponse(review, userID)}, nil
}

// === Mappers ===

// mapReviewResponse converts a domain review to an API response. Liked is
// evaluated for the requesting user.
func mapReviewResponse(review *domain.Review, userID string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		BookID:    review.BookID,
		UserID:    review.UserID,
		Username:  review.Username,
		Rating:    review.Rating,
		Text:      review.Text,
		LikeCount: len(review.Likes),
		Liked:     review.LikedBy(userID),
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
