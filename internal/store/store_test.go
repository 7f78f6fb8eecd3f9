package store

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readnestapp/readnest-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestGetUserRecordEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.GetUserRecord(ctx, "usr-1")
	require.NoError(t, err)
	assert.Empty(t, rec.CustomShelves)
	assert.NotNil(t, rec.ShelfBooks)
}

func TestUpdateUserRecordPersists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.UpdateUserRecord(ctx, "usr-1", func(rec *domain.UserRecord) error {
		rec.CustomShelves = append(rec.CustomShelves, domain.Shelf{ID: "shf-1", Title: "Sci-Fi"})
		rec.AppendBook("shf-1", domain.ShelfBook{BookID: "bk-1", AddedAt: time.Now()})
		rec.UpdatedAt = time.Now()
		return nil
	})
	require.NoError(t, err)

	rec, err := s.GetUserRecord(ctx, "usr-1")
	require.NoError(t, err)
	require.Len(t, rec.CustomShelves, 1)
	assert.Equal(t, "Sci-Fi", rec.CustomShelves[0].Title)
	assert.True(t, rec.ContainsBook("shf-1", "bk-1"))
}

func TestUpdateUserRecordAborts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	wantErr := assert.AnError
	err := s.UpdateUserRecord(ctx, "usr-1", func(rec *domain.UserRecord) error {
		rec.CustomShelves = append(rec.CustomShelves, domain.Shelf{ID: "shf-1"})
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	rec, err := s.GetUserRecord(ctx, "usr-1")
	require.NoError(t, err)
	assert.Empty(t, rec.CustomShelves, "aborted mutation must not be written")
}

func TestUpdateUserRecordConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.UpdateUserRecord(ctx, "usr-1", func(rec *domain.UserRecord) error {
				rec.AppendBook(domain.ShelfReading, domain.ShelfBook{BookID: string(rune('a' + n))})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rec, err := s.GetUserRecord(ctx, "usr-1")
	require.NoError(t, err)
	assert.Len(t, rec.Books(domain.ShelfReading), workers, "every concurrent add must survive")
}

func TestDeleteUserRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.UpdateUserRecord(ctx, "usr-1", func(rec *domain.UserRecord) error {
		rec.AppendBook(domain.ShelfWishlist, domain.ShelfBook{BookID: "bk-1"})
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUserRecord(ctx, "usr-1"))

	rec, err := s.GetUserRecord(ctx, "usr-1")
	require.NoError(t, err)
	assert.Empty(t, rec.Books(domain.ShelfWishlist))
}
