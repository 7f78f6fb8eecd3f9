package providers

import (
	"github.com/samber/do/v2"

	"github.com/readnestapp/readnest-server/internal/logger"
	"github.com/readnestapp/readnest-server/internal/service"
)

// ProvideShelfService provides the shelf service.
func ProvideShelfService(i do.Injector) (*service.ShelfService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewShelfService(storeHandle.Store, log.Logger), nil
}

// ProvideLibraryService provides the library service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewLibraryService(storeHandle.Store, log.Logger), nil
}

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewProfileService(storeHandle.Store, log.Logger), nil
}

// ProvideReviewService provides the review service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewReviewService(storeHandle.Store, log.Logger), nil
}
