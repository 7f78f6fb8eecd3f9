package providers

import (
	"github.com/samber/do/v2"

	"github.com/readnestapp/readnest-server/internal/config"
	"github.com/readnestapp/readnest-server/internal/logger"
	"github.com/readnestapp/readnest-server/internal/metadata/googlebooks"
)

// CatalogClientHandle wraps the catalog client with shutdown capability.
type CatalogClientHandle struct {
	*googlebooks.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCatalogClient provides the Google Books catalog client.
func ProvideCatalogClient(i do.Injector) (*CatalogClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	opts := []googlebooks.Option{
		googlebooks.WithLanguage(cfg.Catalog.Language),
	}
	if cfg.Catalog.BaseURL != "" {
		opts = append(opts, googlebooks.WithBaseURL(cfg.Catalog.BaseURL))
	}
	if cfg.Catalog.RequestsPerSecond > 0 {
		opts = append(opts, googlebooks.WithRateLimit(cfg.Catalog.RequestsPerSecond, 5))
	}

	client := googlebooks.NewClient(log.Logger, opts...)

	log.Info("Catalog client initialized",
		"language", cfg.Catalog.Language,
		"requests_per_second", cfg.Catalog.RequestsPerSecond,
	)

	return &CatalogClientHandle{Client: client}, nil
}
