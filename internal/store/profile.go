package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/readnestapp/readnest-server/internal/domain"
)

// Key prefix for user profiles.
const profilePrefix = "profile:"

func profileKey(userID string) []byte {
	return []byte(profilePrefix + userID)
}

// GetProfile retrieves a user's profile.
func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var profile domain.UserProfile
	if err := s.get(profileKey(userID), &profile); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// PutProfile writes a user's profile.
func (s *Store) PutProfile(ctx context.Context, profile *domain.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.set(profileKey(profile.UserID), profile); err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// EnsureProfile returns the user's profile, creating it with a random
// username on first access.
func (s *Store) EnsureProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	profile = &domain.UserProfile{
		UserID:    userID,
		Username:  domain.RandomUsername(),
		Genres:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.PutProfile(ctx, profile); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("profile created", "user_id", userID, "username", profile.Username)
	}
	return profile, nil
}
