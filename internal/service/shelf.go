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

// ShelfService manages a user's shelf set: the three fixed standard shelves
// plus any number of custom shelves.
type ShelfService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewShelfService creates a new shelf service.
func NewShelfService(store *store.Store, logger *slog.Logger) *ShelfService {
	return &ShelfService{
		store:  store,
		logger: logger,
	}
}

// ListShelves returns the user's shelves: standard shelves in display order,
// then custom shelves in creation order.
func (s *ShelfService) ListShelves(ctx context.Context, userID string) ([]domain.Shelf, error) {
	rec, err := s.store.GetUserRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get library record: %w", err)
	}
	return rec.Shelves(), nil
}

// GetShelf returns a single shelf, standard or custom.
func (s *ShelfService) GetShelf(ctx context.Context, userID, shelfID string) (*domain.Shelf, error) {
	rec, err := s.store.GetUserRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get library record: %w", err)
	}

	shelf, ok := rec.ShelfByID(shelfID)
	if !ok {
		return nil, domainerrors.NotFoundf("shelf %q not found", shelfID)
	}
	return &shelf, nil
}

// CreateShelf creates a custom shelf. Titles are validated against the
// standard shelf names and against the user's existing custom shelves,
// case-insensitively.
func (s *ShelfService) CreateShelf(ctx context.Context, userID, title, icon, color string, isPrivate bool) (*domain.Shelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if domain.NormalizeTitle(title) == "" {
		return nil, domainerrors.Validation("shelf title cannot be empty")
	}
	if domain.TitleReserved(title) {
		return nil, domainerrors.ReservedName(fmt.Sprintf("%q is a standard shelf name", title))
	}

	shelfID, err := id.Generate("shf")
	if err != nil {
		return nil, fmt.Errorf("generate shelf ID: %w", err)
	}

	now := time.Now().UTC()
	shelf := domain.Shelf{
		ID:        shelfID,
		Title:     title,
		Icon:      icon,
		Color:     color,
		IsPrivate: isPrivate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.UpdateUserRecord(ctx, userID, func(rec *domain.UserRecord) error {
		if rec.HasCustomTitle(title, "") {
			return domainerrors.DuplicateName(fmt.Sprintf("a shelf named %q already exists", title))
		}
		rec.CustomShelves = append(rec.CustomShelves, shelf)
		rec.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shelf created",
		"shelf_id", shelfID,
		"user_id", userID,
		"title", title,
	)

	return &shelf, nil
}

// UpdateShelf edits a custom shelf's metadata. Standard shelves are
// protected and cannot be edited.
func (s *ShelfService) UpdateShelf(ctx context.Context, userID, shelfID string, title, icon, color *string, isPrivate *bool) (*domain.Shelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if domain.IsStandardShelf(shelfID) {
		return nil, domainerrors.ProtectedShelf("standard shelves cannot be edited")
	}
	if title != nil {
		if domain.NormalizeTitle(*title) == "" {
			return nil, domainerrors.Validation("shelf title cannot be empty")
		}
		if domain.TitleReserved(*title) {
			return nil, domainerrors.ReservedName(fmt.Sprintf("%q is a standard shelf name", *title))
		}
	}

	var updated domain.Shelf
	err := s.store.UpdateUserRecord(ctx, userID, func(rec *domain.UserRecord) error {
		idx := rec.CustomShelfIndex(shelfID)
		if idx < 0 {
			return domainerrors.NotFoundf("shelf %q not found", shelfID)
		}

		shelf := &rec.CustomShelves[idx]
		if title != nil {
			if rec.HasCustomTitle(*title, shelfID) {
				return domainerrors.DuplicateName(fmt.Sprintf("a shelf named %q already exists", *title))
			}
			shelf.Title = *title
		}
		if icon != nil {
			shelf.Icon = *icon
		}
		if color != nil {
			shelf.Color = *color
		}
		if isPrivate != nil {
			shelf.IsPrivate = *isPrivate
		}
		shelf.UpdatedAt = time.Now().UTC()
		rec.UpdatedAt = shelf.UpdatedAt

		updated = *shelf
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shelf updated",
		"shelf_id", shelfID,
		"user_id", userID,
	)

	return &updated, nil
}

// DeleteShelf removes a custom shelf and all its book memberships in one
// transaction. Standard shelves are protected.
func (s *ShelfService) DeleteShelf(ctx context.Context, userID, shelfID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if domain.IsStandardShelf(shelfID) {
		return domainerrors.ProtectedShelf("standard shelves cannot be deleted")
	}

	err := s.store.UpdateUserRecord(ctx, userID, func(rec *domain.UserRecord) error {
		if !rec.RemoveCustomShelf(shelfID) {
			return domainerrors.NotFoundf("shelf %q not found", shelfID)
		}
		rec.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("shelf deleted",
		"shelf_id", shelfID,
		"user_id", userID,
	)

	return nil
}
