package api

import (
	"github.com/readnestapp/readnest-server/internal/metadata/googlebooks"
	"github.com/readnestapp/readnest-server/internal/service"
)

// Services holds all service dependencies for the API server.
type Services struct {
	Shelf   *service.ShelfService
	Library *service.LibraryService
	Profile *service.ProfileService
	Review  *service.ReviewService
	Catalog *googlebooks.Client
}
