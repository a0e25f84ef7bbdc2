package googleauth

import (
	"sync"
	"time"

	pkghttp "widget-srv/pkg/http"
)

// Config holds configuration for the service-account token provider.
type Config struct {
	// Credentials is the service-account key material, either raw JSON or
	// base64-encoded JSON.
	Credentials string
	// Scope is the OAuth scope requested for issued tokens.
	Scope string
	// TokenURL overrides the token endpoint. Empty means the endpoint from
	// the credential file (or the Google default).
	TokenURL string
	// HTTPClient overrides the HTTP client used for the exchange.
	HTTPClient pkghttp.IClient
}

// serviceAccount is the subset of the credential file the exchange needs.
type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	TokenURI    string `json:"token_uri"`
}

// tokenResponse is the token endpoint response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// providerImpl implements IProvider. The cached token is shared across all
// callers; the lock is never held across the network exchange, so concurrent
// callers racing an expired cache may each perform a redundant exchange,
// which is harmless.
type providerImpl struct {
	account    *serviceAccount
	scope      string
	tokenURL   string
	httpClient pkghttp.IClient

	mu          sync.RWMutex
	cachedToken string
	expiry      time.Time

	now func() time.Time
}
