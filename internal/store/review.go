package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/readnestapp/readnest-server/internal/domain"
)

// Key prefixes for review storage.
const (
	reviewPrefix       = "review:"          // review:{reviewID}
	reviewByBookPrefix = "idx:review:book:" // idx:review:book:{bookID}:{reviewID}
	reviewByUserPrefix = "idx:review:user:" // idx:review:user:{userID}:{bookID} -> reviewID
	bookStatsPrefix    = "bookstats:"       // bookstats:{bookID}
)

// CreateReview creates a new review. Fails with ErrDuplicateReview when the
// user already reviewed the book; the user/book index enforces this inside
// the transaction.
func (s *Store) CreateReview(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	userBookKey := fmt.Appendf(nil, "%s%s:%s", reviewByUserPrefix, review.UserID, review.BookID)

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userBookKey)
		if err == nil {
			return ErrDuplicateReview
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check review index: %w", err)
		}

		if err := txSet(txn, []byte(reviewPrefix+review.ID), review); err != nil {
			return err
		}

		bookIndexKey := fmt.Appendf(nil, "%s%s:%s", reviewByBookPrefix, review.BookID, review.ID)
		if err := txn.Set(bookIndexKey, []byte{}); err != nil {
			return fmt.Errorf("set book index: %w", err)
		}

		return txn.Set(userBookKey, []byte(review.ID))
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("review created",
			"id", review.ID,
			"book_id", review.BookID,
			"user_id", review.UserID,
			"rating", review.Rating,
		)
	}
	return nil
}

// GetReview retrieves a review by ID.
func (s *Store) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var review domain.Review
	if err := s.get([]byte(reviewPrefix+id), &review); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &review, nil
}

// UpdateReview rewrites an existing review. The book and user indexes are
// keyed by IDs that never change, so only the document is touched.
func (s *Store) UpdateReview(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	exists, err := s.exists([]byte(reviewPrefix + review.ID))
	if err != nil {
		return fmt.Errorf("check review exists: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	if err := s.set([]byte(reviewPrefix+review.ID), review); err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// DeleteReview deletes a review and its indexes.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(reviewPrefix + id)); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}

		bookIndexKey := fmt.Appendf(nil, "%s%s:%s", reviewByBookPrefix, review.BookID, id)
		if err := txn.Delete(bookIndexKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete book index: %w", err)
		}

		userBookKey := fmt.Appendf(nil, "%s%s:%s", reviewByUserPrefix, review.UserID, review.BookID)
		if err := txn.Delete(userBookKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete user index: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("review deleted", "id", id, "book_id", review.BookID)
	}
	return nil
}

// ListBookReviews returns all reviews for a book, newest first.
func (s *Store) ListBookReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reviewIDs []string
	prefix := fmt.Appendf(nil, "%s%s:", reviewByBookPrefix, bookID)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // We only need keys.
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			reviewIDs = append(reviewIDs, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan book review index: %w", err)
	}

	reviews := make([]domain.Review, 0, len(reviewIDs))
	for _, id := range reviewIDs {
		review, err := s.GetReview(ctx, id)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to get review from index", "review_id", id, "error", err)
			}
			continue
		}
		reviews = append(reviews, *review)
	}

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	return reviews, nil
}

// GetUserBookReview returns the user's review for a book, or ErrNotFound.
func (s *Store) GetUserBookReview(ctx context.Context, userID, bookID string) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reviewID string
	key := fmt.Appendf(nil, "%s%s:%s", reviewByUserPrefix, userID, bookID)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			reviewID = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user review index: %w", err)
	}

	return s.GetReview(ctx, reviewID)
}

// PutBookStats writes the cached review aggregate for a book.
func (s *Store) PutBookStats(ctx context.Context, stats *domain.BookStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.set([]byte(bookStatsPrefix+stats.BookID), stats); err != nil {
		return fmt.Errorf("put book stats: %w", err)
	}
	return nil
}

// GetBookStats reads the cached review aggregate for a book. A book with no
// reviews yet gets zero-valued stats.
func (s *Store) GetBookStats(ctx context.Context, bookID string) (*domain.BookStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stats domain.BookStats
	if err := s.get([]byte(bookStatsPrefix+bookID), &stats); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.BookStats{BookID: bookID}, nil
		}
		return nil, fmt.Errorf("get book stats: %w", err)
	}
	return &stats, nil
}
