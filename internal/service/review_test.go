package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/readnestapp/readnest-server/internal/errors"
)

func newReviewService(t *testing.T) *ReviewService {
	t.Helper()
	return NewReviewService(newTestStore(t), slog.New(slog.DiscardHandler))
}

func TestCreateReview(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, "usr-1", "bk-1", 4, "Stark.")
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.NotEmpty(t, review.Username, "username is taken from the profile")
	assert.True(t, review.IsPublic)

	stats, err := svc.GetBookStats(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ReviewCount)
	assert.Equal(t, 4.0, stats.AverageRating)
}

func TestCreateReviewValidation(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, "usr-1", "", 4, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.CreateReview(ctx, "usr-1", "bk-1", 0, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.CreateReview(ctx, "usr-1", "bk-1", 6, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCreateReviewOncePerBook(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, "usr-1", "bk-1", 4, "")
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, "usr-1", "bk-1", 5, "")
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	_, err = svc.CreateReview(ctx, "usr-2", "bk-1", 5, "")
	assert.NoError(t, err)
}

func TestUpdateReviewRefreshesStats(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, "usr-1", "bk-1", 2, "")
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, "usr-2", "bk-1", 5, "")
	require.NoError(t, err)

	_, err = svc.UpdateReview(ctx, "usr-1", review.ID, 4, "Besser beim zweiten Lesen.")
	require.NoError(t, err)

	stats, err := svc.GetBookStats(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ReviewCount)
	assert.Equal(t, 4.5, stats.AverageRating)
}

func TestUpdateReviewOwnership(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, "usr-1", "bk-1", 3, "")
	require.NoError(t, err)

	_, err = svc.UpdateReview(ctx, "usr-2", review.ID, 5, "")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = svc.DeleteReview(ctx, "usr-2", review.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestDeleteReview(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, "usr-1", "bk-1", 3, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(ctx, "usr-1", review.ID))

	err = svc.DeleteReview(ctx, "usr-1", review.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	stats, err := svc.GetBookStats(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ReviewCount)
	assert.Equal(t, 0.0, stats.AverageRating)
}

func TestToggleLike(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, "usr-1", "bk-1", 4, "")
	require.NoError(t, err)

	updated, liked, err := svc.ToggleLike(ctx, "usr-2", review.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []string{"usr-2"}, updated.Likes)

	updated, liked, err = svc.ToggleLike(ctx, "usr-2", review.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, updated.Likes)
}

func TestGetBookReviews(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, "usr-1", "bk-1", 4, "")
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, "usr-2", "bk-1", 2, "")
	require.NoError(t, err)

	reviews, err := svc.GetBookReviews(ctx, "bk-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = svc.GetUserBookReview(ctx, "usr-1", "bk-1")
	assert.NoError(t, err)

	_, err = svc.GetUserBookReview(ctx, "usr-1", "bk-2")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
