package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/readnestapp/readnest-server/internal/api"
	"github.com/readnestapp/readnest-server/internal/auth"
	"github.com/readnestapp/readnest-server/internal/config"
	"github.com/readnestapp/readnest-server/internal/logger"
	"github.com/readnestapp/readnest-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	verifier := do.MustInvoke[auth.TokenVerifier](i)
	catalogHandle := do.MustInvoke[*CatalogClientHandle](i)

	services := &api.Services{
		Shelf:   do.MustInvoke[*service.ShelfService](i),
		Library: do.MustInvoke[*service.LibraryService](i),
		Profile: do.MustInvoke[*service.ProfileService](i),
		Review:  do.MustInvoke[*service.ReviewService](i),
		Catalog: catalogHandle.Client,
	}

	handler := api.NewServer(services, verifier, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
