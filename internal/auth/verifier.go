// Package auth verifies bearer tokens against the external identity
// service. The server holds no credentials itself; a token is valid when
// the identity service says so.
package auth

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	domainerrors "github.com/readnestapp/readnest-server/internal/errors"
)

// Identity is the verified subject of a bearer token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// TokenVerifier resolves a bearer token to an identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// IdentityClient verifies tokens by calling the identity service's verify
// endpoint.
type IdentityClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	verifyURL  string
}

// NewIdentityClient creates a verifier backed by the identity service.
func NewIdentityClient(verifyURL string, timeout time.Duration, logger *slog.Logger) *IdentityClient {
	return &IdentityClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		verifyURL:  verifyURL,
	}
}

// Verify calls the identity service with the token as a bearer credential.
// A 401 from the service maps to an unauthorized error; transport failures
// surface as internal errors so callers can distinguish a bad token from a
// broken identity service.
func (c *IdentityClient) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, domainerrors.Unauthorized("missing bearer token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.verifyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.Internal("identity service unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domainerrors.Unauthorized("invalid or expired token")
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("unexpected identity service response", "status", resp.StatusCode)
		return nil, domainerrors.Internalf("identity service returned status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.UnmarshalRead(resp.Body, &identity); err != nil {
		return nil, fmt.Errorf("parse identity response: %w", err)
	}
	if identity.UserID == "" {
		return nil, domainerrors.Unauthorized("identity service returned no subject")
	}

	return &identity, nil
}

// StaticVerifier maps fixed tokens to identities. Used in tests.
type StaticVerifier map[string]Identity

// Verify implements TokenVerifier.
func (v StaticVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	identity, ok := v[token]
	if !ok {
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}
	return &identity, nil
}
