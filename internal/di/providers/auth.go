package providers

import (
	"errors"

	"github.com/samber/do/v2"

	"github.com/readnestapp/readnest-server/internal/auth"
	"github.com/readnestapp/readnest-server/internal/config"
	"github.com/readnestapp/readnest-server/internal/logger"
)

// ProvideTokenVerifier provides the identity service token verifier.
func ProvideTokenVerifier(i do.Injector) (auth.TokenVerifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Identity.VerifyURL == "" {
		return nil, errors.New("IDENTITY_VERIFY_URL must be configured")
	}

	log.Info("Identity verifier configured", "verify_url", cfg.Identity.VerifyURL)

	return auth.NewIdentityClient(cfg.Identity.VerifyURL, cfg.Identity.Timeout, log.Logger), nil
}
