package googleauth

import (
	"context"
	"time"

	pkghttp "widget-srv/pkg/http"
)

// IProvider issues short-lived bearer tokens for the Google Ads APIs.
// Implementations are safe for concurrent use.
type IProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// New creates a new token provider from service-account credentials.
// Returns the interface.
func New(cfg Config) (IProvider, error) {
	account, err := parseServiceAccount(cfg.Credentials)
	if err != nil {
		return nil, err
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = account.TokenURI
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = pkghttp.NewClient(pkghttp.ClientConfig{
			Timeout:   DefaultTimeout,
			Retries:   0,
			RetryWait: time.Second,
		})
	}

	return &providerImpl{
		account:    account,
		scope:      cfg.Scope,
		tokenURL:   tokenURL,
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}
