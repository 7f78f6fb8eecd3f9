package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readnestapp/readnest-server/internal/domain"
	domainerrors "github.com/readnestapp/readnest-server/internal/errors"
)

func newProfileService(t *testing.T) *ProfileService {
	t.Helper()
	return NewProfileService(newTestStore(t), slog.New(slog.DiscardHandler))
}

func TestGetProfileCreatesOnFirstAccess(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.GetProfile(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", profile.UserID)
	assert.NotEmpty(t, profile.Username)
	assert.Empty(t, profile.Genres)

	again, err := svc.GetProfile(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, profile.Username, again.Username)
}

func TestUpdateUsername(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.UpdateUsername(ctx, "usr-1", "  Bücherwurm  ")
	require.NoError(t, err)
	assert.Equal(t, "Bücherwurm", profile.Username)

	_, err = svc.UpdateUsername(ctx, "usr-1", "   ")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUpdateGenres(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.UpdateGenres(ctx, "usr-1", []string{"Fantasy", "Krimi/Thriller"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "Krimi/Thriller"}, profile.Genres)

	_, err = svc.UpdateGenres(ctx, "usr-1", []string{"Kochbücher"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Clearing preferences is allowed.
	profile, err = svc.UpdateGenres(ctx, "usr-1", nil)
	require.NoError(t, err)
	assert.Empty(t, profile.Genres)
}

func TestUpdateStatusAndImage(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.UpdateStatus(ctx, "usr-1", "Lese gerade Kafka")
	require.NoError(t, err)
	assert.Equal(t, "Lese gerade Kafka", profile.Status)

	profile, err = svc.UpdateProfileImage(ctx, "usr-1", "https://example.com/me.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.jpg", profile.ProfileImage)
}

func TestListGenres(t *testing.T) {
	svc := newProfileService(t)

	genres := svc.ListGenres(context.Background())
	assert.Equal(t, domain.BookGenres, genres)
	assert.Contains(t, genres, "Young Adult")
}
