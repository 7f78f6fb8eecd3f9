package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/readnestapp/readnest-server/internal/domain"
	domainerrors "github.com/readnestapp/readnest-server/internal/errors"
	"github.com/readnestapp/readnest-server/internal/store"
)

// ProfileService manages user profiles.
type ProfileService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store *store.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:  store,
		logger: logger,
	}
}

// GetProfile returns the user's profile, creating one with a random
// username on first access.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.store.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}
	return profile, nil
}

// UpdateUsername changes the user's display name.
func (s *ProfileService) UpdateUsername(ctx context.Context, userID, username string) (*domain.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domainerrors.Validation("username cannot be empty")
	}

	profile, err := s.store.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	profile.Username = username
	profile.UpdatedAt = time.Now().UTC()
	if err := s.store.PutProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("username updated", "user_id", userID, "username", username)
	return profile, nil
}

// UpdateStatus changes the user's status line.
func (s *ProfileService) UpdateStatus(ctx context.Context, userID, status string) (*domain.UserProfile, error) {
	profile, err := s.store.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	profile.Status = status
	profile.UpdatedAt = time.Now().UTC()
	if err := s.store.PutProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("status updated", "user_id", userID)
	return profile, nil
}

// UpdateGenres replaces the user's genre preferences. Every genre must come
// from the fixed catalog.
func (s *ProfileService) UpdateGenres(ctx context.Context, userID string, genres []string) (*domain.UserProfile, error) {
	for _, g := range genres {
		if !domain.IsKnownGenre(g) {
			return nil, domainerrors.Validationf("unknown genre %q", g)
		}
	}

	profile, err := s.store.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	if genres == nil {
		genres = []string{}
	}
	profile.Genres = genres
	profile.UpdatedAt = time.Now().UTC()
	if err := s.store.PutProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("genres updated", "user_id", userID, "count", len(genres))
	return profile, nil
}

// UpdateProfileImage sets or clears the user's profile image URL.
func (s *ProfileService) UpdateProfileImage(ctx context.Context, userID, imageURL string) (*domain.UserProfile, error) {
	profile, err := s.store.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	profile.ProfileImage = imageURL
	profile.UpdatedAt = time.Now().UTC()
	if err := s.store.PutProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile image updated", "user_id", userID)
	return profile, nil
}

// ListGenres returns the fixed genre catalog.
func (s *ProfileService) ListGenres(_ context.Context) []string {
	return domain.BookGenres
}
