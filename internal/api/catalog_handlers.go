package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnestapp/readnest-server/internal/domain"
	domainerrors "github.com/readnestapp/readnest-server/internal/errors"
	"github.com/readnestapp/readnest-server/internal/genre"
	"github.com/readnestapp/readnest-server/internal/metadata/googlebooks"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search the book catalog",
		Description: "Searches the remote book catalog. Results are limited to 40 per page.",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogVolume",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/volumes/{id}",
		Summary:     "Get catalog volume",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalogVolume)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCatalogCollections",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/collections",
		Summary:     "List curated collections",
		Tags:        []string{"Catalog"},
	}, s.handleListCatalogCollections)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/collections/{name}",
		Summary:     "Get curated collection",
		Description: "Returns the books of a curated collection such as recommended or fantasy",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalogCollection)
}

// === DTOs ===

// SearchCatalogInput contains catalog search parameters.
type SearchCatalogInput struct {
	Query      string `query:"q" minLength:"1" doc:"Search query"`
	MaxResults int    `query:"max_results" minimum:"1" maximum:"40" required:"false" doc:"Page size, up to 40"`
	StartIndex int    `query:"start_index" minimum:"0" required:"false" doc:"Result offset for paging"`
	OrderBy    string `query:"order_by" enum:"relevance,newest" required:"false" doc:"Result ordering"`
}

// BookResponse contains a catalog entry in API responses.
type BookResponse struct {
	ID             string   `json:"id" doc:"Volume ID"`
	Title          string   `json:"title" doc:"Title"`
	Subtitle       string   `json:"subtitle,omitempty" doc:"Subtitle"`
	Authors        []string `json:"authors" doc:"Authors"`
	Publisher      string   `json:"publisher,omitempty" doc:"Publisher"`
	PublishedDate  string   `json:"published_date,omitempty" doc:"Publication date"`
	Description    string   `json:"description,omitempty" doc:"Description"`
	ISBN           string   `json:"isbn,omitempty" doc:"ISBN, 13 digit when available"`
	PageCount      int      `json:"page_count,omitempty" doc:"Page count"`
	Categories     []string `json:"categories,omitempty" doc:"Raw catalog categories"`
	Genres         []string `json:"genres,omitempty" doc:"Matching genres from the genre catalog"`
	Language       string   `json:"language,omitempty" doc:"Language code"`
	SmallThumbnail string   `json:"small_thumbnail,omitempty" doc:"Small cover image URL"`
	Thumbnail      string   `json:"thumbnail,omitempty" doc:"Cover image URL"`
}

// BookListResponse contains a list of catalog entries.
type BookListResponse struct {
	Books []BookResponse `json:"books" doc:"Catalog entries"`
}

// BookListOutput wraps a catalog entry list for Huma.
type BookListOutput struct {
	Body BookListResponse
}

// GetVolumeInput contains parameters for fetching a single volume.
type GetVolumeInput struct {
	ID string `path:"id" doc:"Volume ID"`
}

// BookOutput wraps a single catalog entry for Huma.
type BookOutput struct {
	Body BookResponse
}

// CollectionsResponse contains the curated collection names.
type CollectionsResponse struct {
	Collections []string `json:"collections" doc:"Curated collection names"`
}

// CollectionsOutput wraps the collection names for Huma.
type CollectionsOutput struct {
	Body CollectionsResponse
}

// GetCollectionInput contains parameters for fetching a curated collection.
type GetCollectionInput struct {
	Name       string `path:"name" doc:"Collection name"`
	MaxResults int    `query:"max_results" minimum:"1" maximum:"40" required:"false" doc:"Number of books, up to 40"`
}

// === Handlers ===

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchCatalogInput) (*BookListOutput, error) {
	books, err := s.services.Catalog.Search(ctx, googlebooks.SearchParams{
		Query:      input.Query,
		MaxResults: input.MaxResults,
		StartIndex: input.StartIndex,
		OrderBy:    input.OrderBy,
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "catalog search failed")
	}

	return &BookListOutput{Body: BookListResponse{Books: mapBookResponses(books)}}, nil
}

func (s *Server) handleGetCatalogVolume(ctx context.Context, input *GetVolumeInput) (*BookOutput, error) {
	book, err := s.services.Catalog.GetVolume(ctx, input.ID)
	if err != nil {
		if errors.Is(err, googlebooks.ErrVolumeNotFound) {
			return nil, domainerrors.NotFoundf("volume %q not found", input.ID)
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "catalog lookup failed")
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleListCatalogCollections(_ context.Context, _ *struct{}) (*CollectionsOutput, error) {
	return &CollectionsOutput{Body: CollectionsResponse{Collections: googlebooks.Collections()}}, nil
}

func (s *Server) handleGetCatalogCollection(ctx context.Context, input *GetCollectionInput) (*BookListOutput, error) {
	books, err := s.services.Catalog.Collection(ctx, input.Name, input.MaxResults)
	if err != nil {
		if errors.Is(err, googlebooks.ErrUnknownCollection) {
			return nil, domainerrors.NotFoundf("collection %q not found", input.Name)
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "collection fetch failed")
	}

	return &BookListOutput{Body: BookListResponse{Books: mapBookResponses(books)}}, nil
}

// === Mappers ===

func mapBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:             book.ID,
		Title:          book.Title,
		Subtitle:       book.Subtitle,
		Authors:        book.Authors,
		Publisher:      book.Publisher,
		PublishedDate:  book.PublishedDate,
		Description:    book.Description,
		ISBN:           book.ISBN,
		PageCount:      book.PageCount,
		Categories:     book.Categories,
		Genres:         genre.Match(book.Categories),
		Language:       book.Language,
		SmallThumbnail: book.ImageLinks.SmallThumbnail,
		Thumbnail:      book.ImageLinks.Thumbnail,
	}
}

func mapBookResponses(books []domain.Book) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i := range books {
		resp[i] = mapBookResponse(&books[i])
	}
	return resp
}
