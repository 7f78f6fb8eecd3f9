package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnestapp/readnest-server/internal/domain"
)

func (s *Server) registerShelfRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves",
		Summary:     "List my shelves",
		Description: "Returns the standard shelves followed by the user's custom shelves",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListShelves)

	huma.Register(s.api, huma.Operation{
		OperationID: "createShelf",
		Method:      http.MethodPost,
		Path:        "/api/v1/shelves",
		Summary:     "Create shelf",
		Description: "Creates a new custom shelf",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShelf",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Get shelf",
		Description: "Returns a shelf by ID",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateShelf",
		Method:      http.MethodPatch,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Update shelf",
		Description: "Updates custom shelf metadata; standard shelves are protected",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteShelf",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Delete shelf",
		Description: "Deletes a custom shelf and its book memberships; standard shelves are protected",
		Tags:        []string{"Shelves"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteShelf)
}

// === DTOs ===

// ListShelvesInput contains parameters for listing shelves.
type ListShelvesInput struct {
	Authorization string `header:"Authorization"`
}

// ShelfResponse contains shelf data in API responses.
type ShelfResponse struct {
	ID        string    `json:"id" doc:"Shelf ID"`
	Title     string    `json:"title" doc:"Shelf title"`
	Icon      string    `json:"icon" doc:"Icon name"`
	Color     string    `json:"color" doc:"Display color"`
	Kind      string    `json:"kind" doc:"Shelf kind: standard or custom"`
	IsPrivate bool      `json:"is_private" doc:"Whether the shelf is private"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// ListShelvesResponse contains a list of shelves.
type ListShelvesResponse struct {
	Shelves []ShelfResponse `json:"shelves" doc:"Standard shelves first, then custom shelves"`
}

// ListShelvesOutput wraps the list shelves response for Huma.
type ListShelvesOutput struct {
	Body ListShelvesResponse
}

// CreateShelfRequest is the request body for creating a shelf.
type CreateShelfRequest struct {
	Title     string `json:"title" minLength:"1" maxLength:"100" doc:"Shelf title"`
	Icon      string `json:"icon,omitempty" maxLength:"64" doc:"Icon name"`
	Color     string `json:"color,omitempty" maxLength:"16" doc:"Display color"`
	IsPrivate bool   `json:"is_private,omitempty" doc:"Whether the shelf is private"`
}

// CreateShelfInput wraps the create shelf request for Huma.
type CreateShelfInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateShelfRequest
}

// ShelfOutput wraps the shelf response for Huma.
type ShelfOutput struct {
	Body ShelfResponse
}

// GetShelfInput contains parameters for getting a shelf.
type GetShelfInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Shelf ID"`
}

// UpdateShelfRequest is the request body for updating a shelf.
// Absent fields are left unchanged.
type UpdateShelfRequest struct {
	Title     *string `json:"title,omitempty" maxLength:"100" doc:"New shelf title"`
	Icon      *string `json:"icon,omitempty" maxLength:"64" doc:"New icon name"`
	Color     *string `json:"color,omitempty" maxLength:"16" doc:"New display color"`
	IsPrivate *bool   `json:"is_private,omitempty" doc:"New privacy setting"`
}

// UpdateShelfInput wraps the update shelf request for Huma.
type UpdateShelfInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Shelf ID"`
	Body          UpdateShelfRequest
}

// DeleteShelfInput contains parameters for deleting a shelf.
type DeleteShelfInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Shelf ID"`
}

// MessageResponse contains a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleListShelves(ctx context.Context, _ *ListShelvesInput) (*ListShelvesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelves, err := s.services.Shelf.ListShelves(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]ShelfResponse, len(shelves))
	for i := range shelves {
		resp[i] = mapShelfResponse(&shelves[i])
	}

	return &ListShelvesOutput{Body: ListShelvesResponse{Shelves: resp}}, nil
}

func (s *Server) handleCreateShelf(ctx context.Context, input *CreateShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.CreateShelf(ctx, userID, input.Body.Title, input.Body.Icon, input.Body.Color, input.Body.IsPrivate)
	if err != nil {
		return nil, err
	}

	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleGetShelf(ctx context.Context, input *GetShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.GetShelf(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleUpdateShelf(ctx context.Context, input *UpdateShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.UpdateShelf(ctx, userID, input.ID,
		input.Body.Title, input.Body.Icon, input.Body.Color, input.Body.IsPrivate)
	if err != nil {
		return nil, err
	}

	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleDeleteShelf(ctx context.Context, input *DeleteShelfInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Shelf.DeleteShelf(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Shelf deleted"}}, nil
}

// === Mappers ===

// mapShelfResponse converts a domain shelf to an API response.
func mapShelfResponse(shelf *domain.Shelf) ShelfResponse {
	return ShelfResponse{
		ID:        shelf.ID,
		Title:     shelf.Title,
		Icon:      shelf.Icon,
		Color:     shelf.Color,
		Kind:      string(shelf.Kind()),
		IsPrivate: shelf.IsPrivate,
		CreatedAt: shelf.CreatedAt,
		UpdatedAt: shelf.UpdatedAt,
	}
}
