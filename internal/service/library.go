package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/readnestapp/readnest-server/internal/domain"
	domainerrors "github.com/readnestapp/readnest-server/internal/errors"
	"github.com/readnestapp/readnest-server/internal/store"
	"github.com/readnestapp/readnest-server/internal/validation"
)

// LibraryService manages book memberships across a user's shelves. The
// standard shelves are mutually exclusive: adding a book to one of them
// pulls it out of whichever other standard shelf held it. Custom shelves
// carry no such restriction.
type LibraryService struct {
	store    *store.Store
	logger   *slog.Logger
	validate *validation.Validator
}

// NewLibraryService creates a new library service.
func NewLibraryService(store *store.Store, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:    store,
		logger:   logger,
		validate: validation.New(),
	}
}

// BookInput carries the catalog fields copied into a membership entry.
type BookInput struct {
	BookID  string            `json:"book_id" validate:"required"`
	Title   string            `json:"title" validate:"required,max=500"`
	Authors []string          `json:"authors"`
	Images  domain.ImageLinks `json:"images"`
}

// AddBookToShelf adds a book to a shelf. Adding to a standard shelf that
// already holds the book is rejected with an already-in-shelf error; adding
// to a standard shelf while another standard shelf holds the book moves it
// there in the same transaction and reports the displaced shelf.
func (s *LibraryService) AddBookToShelf(ctx context.Context, userID, shelfID string, book BookInput) (*domain.MoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validate.Validate(book); err != nil {
		return nil, err
	}

	result := &domain.MoveResult{}
	now := time.Now().UTC()

	err := s.store.UpdateUserRecord(ctx, userID, func(rec *domain.UserRecord) error {
		shelf, ok := rec.ShelfByID(shelfID)
		if !ok {
			return domainerrors.NotFoundf("shelf %q not found", shelfID)
		}

		if rec.ContainsBook(shelfID, book.BookID) {
			return domainerrors.AlreadyInShelf(fmt.Sprintf("book is already in %q", shelf.Title))
		}

		if domain.IsStandardShelf(shelfID) {
			if fromID := rec.StandardShelfContaining(book.BookID); fromID != "" {
				rec.RemoveBook(fromID, book.BookID)
				from, _ := domain.StandardShelfByID(fromID)
				result.MovedFrom = &domain.MovedFromShelf{
					ShelfID:    from.ID,
					ShelfTitle: from.Title,
				}
			}
		}

		rec.AppendBook(shelfID, domain.ShelfBook{
			BookID:     book.BookID,
			Title:      book.Title,
			Authors:    book.Authors,
			ImageLinks: book.Images,
			IsPrivate:  shelf.IsPrivate,
			AddedAt:    now,
		})
		rec.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.MovedFrom != nil {
		s.logger.Info("book moved between standard shelves",
			"user_id", userID,
			"book_id", book.BookID,
			"from", result.MovedFrom.ShelfID,
			"to", shelfID,
		)
	} else {
		s.logger.Info("book added to shelf",
			"user_id", userID,
			"book_id", book.BookID,
			"shelf_id", shelfID,
		)
	}

	return result, nil
}

// RemoveBookFromShelf removes a book from a shelf. Removing a book that is
// not in the shelf, or from a shelf that does not exist, succeeds silently.
func (s *LibraryService) RemoveBookFromShelf(ctx context.Context, userID, shelfID, bookID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var removed bool
	err := s.store.UpdateUserRecord(ctx, userID, func(rec *domain.UserRecord) error {
		removed = rec.RemoveBook(shelfID, bookID)
		if removed {
			rec.UpdatedAt = time.Now().UTC()
		}
		return nil
	})
	if err != nil {
		return err
	}

	if removed {
		s.logger.Info("book removed from shelf",
			"user_id", userID,
			"book_id", bookID,
			"shelf_id", shelfID,
		)
	}

	return nil
}

// GetShelfBooks returns a shelf's books in the order they were added,
// oldest first. A shelf id with no members, including one that was never
// created, yields an empty list.
func (s *LibraryService) GetShelfBooks(ctx context.Context, userID, shelfID string) ([]domain.ShelfBook, error) {
	rec, err := s.store.GetUserRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get library record: %w", err)
	}

	books := rec.Books(shelfID)
	if books == nil {
		books = []domain.ShelfBook{}
	}
	return books, nil
}

// GetShelvesForBook returns every shelf of the user that contains the book.
func (s *LibraryService) GetShelvesForBook(ctx context.Context, userID, bookID string) ([]domain.Shelf, error) {
	rec, err := s.store.GetUserRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get library record: %w", err)
	}

	shelves := []domain.Shelf{}
	for _, shelf := range rec.Shelves() {
		if rec.ContainsBook(shelf.ID, bookID) {
			shelves = append(shelves, shelf)
		}
	}
	return shelves, nil
}

// FindStandardShelfContaining returns the standard shelf currently holding
// the book, or nil when no standard shelf does. Custom shelves are never
// consulted.
func (s *LibraryService) FindStandardShelfContaining(ctx context.Context, userID, bookID string) (*domain.MovedFromShelf, error) {
	rec, err := s.store.GetUserRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get library record: %w", err)
	}

	shelfID := rec.StandardShelfContaining(bookID)
	if shelfID == "" {
		return nil, nil
	}
	shelf, _ := domain.StandardShelfByID(shelfID)
	return &domain.MovedFromShelf{ShelfID: shelf.ID, ShelfTitle: shelf.Title}, nil
}

// IsBookInShelf reports whether the shelf contains the book.
func (s *LibraryService) IsBookInShelf(ctx context.Context, userID, shelfID, bookID string) (bool, error) {
	rec, err := s.store.GetUserRecord(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get library record: %w", err)
	}
	return rec.ContainsBook(shelfID, bookID), nil
}
