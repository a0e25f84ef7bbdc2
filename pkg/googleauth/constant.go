package googleauth

import "time"

const (
	// DefaultTokenURL is the Google OAuth2 token endpoint.
	DefaultTokenURL = "https://oauth2.googleapis.com/token"
	// GrantType is the JWT-bearer grant used for service accounts.
	GrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	// AssertionLifetime is the validity window claimed by the signed assertion.
	AssertionLifetime = time.Hour
	// EarlyRefresh is how long before expiry a cached token is discarded.
	EarlyRefresh = 5 * time.Minute
	// DefaultTimeout is the token exchange request timeout.
	DefaultTimeout = 30 * time.Second
	// credentialLogPrefixLen bounds how much credential material may appear
	// in diagnostics.
	credentialLogPrefixLen = 12
)
