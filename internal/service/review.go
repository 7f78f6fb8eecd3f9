package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/readnestapp/readnest-server/internal/domain"
	domainerrors "github.com/readnestapp/readnest-server/internal/errors"
	"github.com/readnestapp/readnest-server/internal/id"
	"github.com/readnestapp/readnest-server/internal/store"
)

// ReviewService manages book reviews and the per-book review aggregate.
// A user writes at most one review per book.
type ReviewService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store *store.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:  store,
		logger: logger,
	}
}

// CreateReview creates a review for a book. The rating must be 1-5. A
// second review by the same user for the same book is rejected.
func (s *ReviewService) CreateReview(ctx context.Context, userID, bookID string, rating int, text string) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if bookID == "" {
		return nil, domainerrors.Validation("book ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, domainerrors.Validation("rating must be between 1 and 5")
	}

	profile, err := s.store.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	reviewID, err := id.Generate("rev")
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:        reviewID,
		BookID:    bookID,
		UserID:    userID,
		Username:  profile.Username,
		Rating:    rating,
		Text:      text,
		Likes:     []string{},
		IsPublic:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		if domainerrors.Is(err, store.ErrDuplicateReview) {
			return nil, domainerrors.Conflict("you have already reviewed this book")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.refreshBookStats(ctx, bookID); err != nil {
		s.logger.Warn("failed to refresh book stats", "book_id", bookID, "error", err)
	}

	s.logger.Info("review created",
		"review_id", reviewID,
		"book_id", bookID,
		"user_id", userID,
		"rating", rating,
	)

	return review, nil
}

// UpdateReview edits the caller's own review.
func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID string, rating int, text string) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if rating < 1 || rating > 5 {
		return nil, domainerrors.Validation("rating must be between 1 and 5")
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("review %q not found", reviewID)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review.UserID != userID {
		return nil, domainerrors.Forbidden("you can only edit your own review")
	}

	review.Rating = rating
	review.Text = text
	review.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	if err := s.refreshBookStats(ctx, review.BookID); err != nil {
		s.logger.Warn("failed to refresh book stats", "book_id", review.BookID, "error", err)
	}

	s.logger.Info("review updated", "review_id", reviewID, "user_id", userID)
	return review, nil
}

// DeleteReview deletes the caller's own review.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("review %q not found", reviewID)
		}
		return fmt.Errorf("get review: %w", err)
	}
	if review.UserID != userID {
		return domainerrors.Forbidden("you can only delete your own review")
	}

	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if err := s.refreshBookStats(ctx, review.BookID); err != nil {
		s.logger.Warn("failed to refresh book stats", "book_id", review.BookID, "error", err)
	}

	s.logger.Info("review deleted", "review_id", reviewID, "user_id", userID)
	return nil
}

// ToggleLike flips the caller's like on a review, returning the updated
// review and the new liked state.
func (s *ReviewService) ToggleLike(ctx context.Context, userID, reviewID string) (*domain.Review, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, false, domainerrors.NotFoundf("review %q not found", reviewID)
		}
		return nil, false, fmt.Errorf("get review: %w", err)
	}

	liked := review.ToggleLike(userID)
	review.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, false, fmt.Errorf("update review: %w", err)
	}

	return review, liked, nil
}

// GetBookReviews returns a book's reviews, newest first, enriched with the
// reviewers' current usernames and profile images.
func (s *ReviewService) GetBookReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	reviews, err := s.store.ListBookReviews(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	for i := range reviews {
		profile, err := s.store.GetProfile(ctx, reviews[i].UserID)
		if err != nil {
			continue
		}
		if profile.Username != "" {
			reviews[i].Username = profile.Username
		}
	}

	return reviews, nil
}

// GetUserBookReview returns the caller's review for a book, or a not-found
// error.
func (s *ReviewService) GetUserBookReview(ctx context.Context, userID, bookID string) (*domain.Review, error) {
	review, err := s.store.GetUserBookReview(ctx, userID, bookID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("no review for this book")
		}
		return nil, fmt.Errorf("get user review: %w", err)
	}
	return review, nil
}

// GetBookStats returns the cached review aggregate for a book.
func (s *ReviewService) GetBookStats(ctx context.Context, bookID string) (*domain.BookStats, error) {
	stats, err := s.store.GetBookStats(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book stats: %w", err)
	}
	return stats, nil
}

// refreshBookStats recomputes and stores the per-book aggregate.
func (s *ReviewService) refreshBookStats(ctx context.Context, bookID string) error {
	reviews, err := s.store.ListBookReviews(ctx, bookID)
	if err != nil {
		return err
	}
	stats := domain.ComputeBookStats(bookID, reviews, time.Now().UTC())
	return s.store.PutBookStats(ctx, &stats)
}
