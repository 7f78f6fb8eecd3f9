// Package di provides dependency injection configuration for the ReadNest server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/readnestapp/readnest-server/internal/auth"
	"github.com/readnestapp/readnest-server/internal/config"
	"github.com/readnestapp/readnest-server/internal/di/providers"
	"github.com/readnestapp/readnest-server/internal/logger"
	"github.com/readnestapp/readnest-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// External collaborators
	do.Provide(injector, providers.ProvideTokenVerifier)
	do.Provide(injector, providers.ProvideCatalogClient)

	// Business services
	do.Provide(injector, providers.ProvideShelfService)
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideReviewService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[auth.TokenVerifier](injector)
	_ = do.MustInvoke[*providers.CatalogClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.ShelfService](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.ReviewService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
