package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnestapp/readnest-server/internal/color"
	"github.com/readnestapp/readnest-server/internal/domain"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get my profile",
		Description: "Returns the user's profile, creating it with a generated username on first access",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUsername",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile/username",
		Summary:     "Update username",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateUsername)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateStatus",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile/status",
		Summary:     "Update status message",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateGenres",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile/genres",
		Summary:     "Update favorite genres",
		Description: "Replaces the user's favorite genres. Every genre must come from the known genre catalog.",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfileImage",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile/image",
		Summary:     "Update profile image",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProfileImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List known genres",
		Tags:        []string{"Profile"},
	}, s.handleListGenres)
}

// === DTOs ===

// GetProfileInput contains parameters for fetching the profile.
type GetProfileInput struct {
	Authorization string `header:"Authorization"`
}

// ProfileResponse contains profile data in API responses.
type ProfileResponse struct {
	UserID       string    `json:"user_id" doc:"User ID"`
	Username     string    `json:"username" doc:"Display name"`
	Status       string    `json:"status,omitempty" doc:"Status message"`
	ProfileImage string    `json:"profile_image,omitempty" doc:"Profile image URL"`
	AvatarColor  string    `json:"avatar_color" doc:"Fallback avatar color derived from the user ID"`
	Genres       []string  `json:"genres" doc:"Favorite genres"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// UpdateUsernameRequest is the request body for changing the username.
type UpdateUsernameRequest struct {
	Username string `json:"username" minLength:"1" maxLength:"50" doc:"New display name"`
}

// UpdateUsernameInput wraps the username update request for Huma.
type UpdateUsernameInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateUsernameRequest
}

// UpdateStatusRequest is the request body for changing the status message.
type UpdateStatusRequest struct {
	Status string `json:"status" maxLength:"200" doc:"New status message, may be empty"`
}

// UpdateStatusInput wraps the status update request for Huma.
type UpdateStatusInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateStatusRequest
}

// UpdateGenresRequest is the request body for replacing the favorite genres.
type UpdateGenresRequest struct {
	Genres []string `json:"genres" doc:"Favorite genres from the known catalog"`
}

// UpdateGenresInput wraps the genres update request for Huma.
type UpdateGenresInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateGenresRequest
}

// UpdateProfileImageRequest is the request body for changing the profile image.
type UpdateProfileImageRequest struct {
	ProfileImage string `json:"profile_image" maxLength:"2000" doc:"Profile image URL, may be empty to clear"`
}

// UpdateProfileImageInput wraps the profile image update request for Huma.
type UpdateProfileImageInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateProfileImageRequest
}

// ListGenresResponse contains the known genre catalog.
type ListGenresResponse struct {
	Genres []string `json:"genres" doc:"Known genres"`
}

// ListGenresOutput wraps the genre catalog for Huma.
type ListGenresOutput struct {
	Body ListGenresResponse
}

// === Handlers ===

func (s *Server) handleGetProfile(ctx context.Context, _ *GetProfileInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

func (s *Server) handleUpdateUsername(ctx context.Context, input *UpdateUsernameInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.UpdateUsername(ctx, userID, input.Body.Username)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

func (s *Server) handleUpdateStatus(ctx context.Context, input *UpdateStatusInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.UpdateStatus(ctx, userID, input.Body.Status)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

func (s *Server) handleUpdateGenres(ctx context.Context, input *UpdateGenresInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.UpdateGenres(ctx, userID, input.Body.Genres)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

func (s *Server) handleUpdateProfileImage(ctx context.Context, input *UpdateProfileImageInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.UpdateProfileImage(ctx, userID, input.Body.ProfileImage)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

func (s *Server) handleListGenres(ctx context.Context, _ *struct{}) (*ListGenresOutput, error) {
	return &ListGenresOutput{Body: ListGenresResponse{Genres: s.services.Profile.ListGenres(ctx)}}, nil
}

// === Mappers ===

func mapProfileResponse(profile *domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		UserID:       profile.UserID,
		Username:     profile.Username,
		Status:       profile.Status,
		ProfileImage: profile.ProfileImage,
		AvatarColor:  color.ForUser(profile.UserID),
		Genres:       profile.Genres,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}
