package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/readnestapp/readnest-server/internal/domain"
)

// Key prefix for per-user library records.
const libraryPrefix = "library:"

// Number of attempts for a library mutation when commits collide. Each
// conflict round commits at least one writer, so contention on a single
// user's record drains fast.
const libraryUpdateRetries = 10

func libraryKey(userID string) []byte {
	return []byte(libraryPrefix + userID)
}

// GetUserRecord retrieves the user's library record. A user with no record
// yet gets a fresh empty one.
func (s *Store) GetUserRecord(ctx context.Context, userID string) (*domain.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec domain.UserRecord
	if err := s.get(libraryKey(userID), &rec); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.NewUserRecord(), nil
		}
		return nil, fmt.Errorf("get library record: %w", err)
	}

	if rec.ShelfBooks == nil {
		rec.ShelfBooks = map[string][]domain.ShelfBook{}
	}
	if rec.CustomShelves == nil {
		rec.CustomShelves = []domain.Shelf{}
	}
	return &rec, nil
}

// UpdateUserRecord applies fn to the user's library record inside a single
// transaction. The record is read, mutated, and written back atomically, so
// concurrent mutations of the same record serialize. A commit that loses a
// conflict is retried a bounded number of times.
//
// fn may return an error to abort the mutation; that error is returned
// unchanged and nothing is written.
func (s *Store) UpdateUserRecord(ctx context.Context, userID string, fn func(rec *domain.UserRecord) error) error {
	key := libraryKey(userID)

	var lastErr error
	for attempt := 0; attempt < libraryUpdateRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.db.Update(func(txn *badger.Txn) error {
			rec := domain.NewUserRecord()
			if err := txGet(txn, key, rec); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("get library record: %w", err)
			}
			if rec.ShelfBooks == nil {
				rec.ShelfBooks = map[string][]domain.ShelfBook{}
			}

			if err := fn(rec); err != nil {
				return err
			}

			return txSet(txn, key, rec)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("update library record: %w", lastErr)
}

// DeleteUserRecord removes the user's entire library record.
func (s *Store) DeleteUserRecord(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.delete(libraryKey(userID)); err != nil {
		return fmt.Errorf("delete library record: %w", err)
	}
	return nil
}
