package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnestapp/readnest-server/internal/domain"
	"github.com/readnestapp/readnest-server/internal/service"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addBookToShelf",
		Method:      http.MethodPost,
		Path:        "/api/v1/shelves/{id}/books",
		Summary:     "Add book to shelf",
		Description: "Adds a book to a shelf. Standard shelves are exclusive: the book is moved out of any other standard shelf holding it and the displaced shelf is reported.",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddBookToShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeBookFromShelf",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shelves/{id}/books/{bookId}",
		Summary:     "Remove book from shelf",
		Description: "Removes a book from a shelf. Removing a book the shelf does not hold is a no-op.",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveBookFromShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "listShelfBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves/{id}/books",
		Summary:     "List shelf books",
		Description: "Returns the books on a shelf in addition order",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListShelfBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listShelvesForBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{bookId}/shelves",
		Summary:     "List shelves holding a book",
		Description: "Returns every shelf of the user that currently holds the book",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListShelvesForBook)
}

// === DTOs ===

// AddBookRequest is the request body for adding a book to a shelf.
type AddBookRequest struct {
	BookID         string   `json:"book_id" minLength:"1" doc:"Catalog book ID"`
	Title          string   `json:"title" minLength:"1" maxLength:"500" doc:"Book title"`
	Authors        []string `json:"authors,omitempty" doc:"Book authors"`
	SmallThumbnail string   `json:"small_thumbnail,omitempty" doc:"Small cover image URL"`
	Thumbnail      string   `json:"thumbnail,omitempty" doc:"Cover image URL"`
}

// AddBookInput wraps the add book request for Huma.
type AddBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Shelf ID"`
	Body          AddBookRequest
}

// AddBookResponse reports the outcome of adding a book to a shelf.
type AddBookResponse struct {
	Message   string             `json:"message" doc:"Confirmation message"`
	MovedFrom *MovedFromResponse `json:"moved_from,omitempty" doc:"Standard shelf the book was moved out of, if any"`
}

// MovedFromResponse identifies the shelf a book was displaced from.
type MovedFromResponse struct {
	ShelfID    string `json:"shelf_id" doc:"Displaced shelf ID"`
	ShelfTitle string `json:"shelf_title" doc:"Displaced shelf title"`
}

// AddBookOutput wraps the add book response for Huma.
type AddBookOutput struct {
	Body AddBookResponse
}

// RemoveBookInput contains parameters for removing a book from a shelf.
type RemoveBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Shelf ID"`
	BookID        string `path:"bookId" doc:"Book ID"`
}

// ShelfBookResponse contains a shelf membership entry in API responses.
type ShelfBookResponse struct {
	BookID         string    `json:"book_id" doc:"Catalog book ID"`
	Title          string    `json:"title" doc:"Book title"`
	Authors        []string  `json:"authors" doc:"Book authors"`
	SmallThumbnail string    `json:"small_thumbnail,omitempty" doc:"Small cover image URL"`
	Thumbnail      string    `json:"thumbnail,omitempty" doc:"Cover image URL"`
	IsPrivate      bool      `json:"is_private" doc:"Whether the entry is private"`
	AddedAt        time.Time `json:"added_at" doc:"When the book was added to the shelf"`
}

// ListShelfBooksInput contains parameters for listing shelf books.
type ListShelfBooksInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Shelf ID"`
}

// ListShelfBooksResponse contains the books on a shelf.
type ListShelfBooksResponse struct {
	Books []ShelfBookResponse `json:"books" doc:"Books in addition order"`
}

// ListShelfBooksOutput wraps the shelf books response for Huma.
type ListShelfBooksOutput struct {
	Body ListShelfBooksResponse
}

// ListShelvesForBookInput contains parameters for listing shelves holding a book.
type ListShelvesForBookInput struct {
	Authorization string `header:"Authorization"`
	BookID        string `path:"bookId" doc:"Book ID"`
}

// === Handlers ===

func (s *Server) handleAddBookToShelf(ctx context.Context, input *AddBookInput) (*AddBookOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Library.AddBookToShelf(ctx, userID, input.ID, service.BookInput{
		BookID:  input.Body.BookID,
		Title:   input.Body.Title,
		Authors: input.Body.Authors,
		Images: domain.ImageLinks{
			SmallThumbnail: input.Body.SmallThumbnail,
			Thumbnail:      input.Body.Thumbnail,
		},
	})
	if err != nil {
		return nil, err
	}

	resp := AddBookResponse{Message: "Book added"}
	if result.MovedFrom != nil {
		resp.Message = "Book moved"
		resp.MovedFrom = &MovedFromResponse{
			ShelfID:    result.MovedFrom.ShelfID,
			ShelfTitle: result.MovedFrom.ShelfTitle,
		}
	}

	return &AddBookOutput{Body: resp}, nil
}

func (s *Server) handleRemoveBookFromShelf(ctx context.Context, input *RemoveBookInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Library.RemoveBookFromShelf(ctx, userID, input.ID, input.BookID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book removed"}}, nil
}

func (s *Server) handleListShelfBooks(ctx context.Context, input *ListShelfBooksInput) (*ListShelfBooksOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Library.GetShelfBooks(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]ShelfBookResponse, len(books))
	for i := range books {
		resp[i] = mapShelfBookResponse(&books[i])
	}

	return &ListShelfBooksOutput{Body: ListShelfBooksResponse{Books: resp}}, nil
}

func (s *Server) handleListShelvesForBook(ctx context.Context, input *ListShelvesForBookInput) (*ListShelvesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelves, err := s.services.Library.GetShelvesForBook(ctx, userID, input.BookID)
	if err != nil {
		return nil, err
	}

	resp := make([]ShelfResponse, len(shelves))
	for i := range shelves {
		resp[i] = mapShelfResponse(&shelves[i])
	}

	return &ListShelvesOutput{Body: ListShelvesResponse{Shelves: resp}}, nil
}

// === Mappers ===

func mapShelfBookResponse(book *domain.ShelfBook) ShelfBookResponse {
	return ShelfBookResponse{
		BookID:         book.BookID,
		Title:          book.Title,
		Authors:        book.Authors,
		SmallThumbnail: book.ImageLinks.SmallThumbnail,
		Thumbnail:      book.ImageLinks.Thumbnail,
		IsPrivate:      book.IsPrivate,
		AddedAt:        book.AddedAt,
	}
}
