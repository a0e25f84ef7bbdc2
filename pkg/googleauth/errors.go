package googleauth

import "errors"

var (
	// ErrBadCredentials means the credential material could not be parsed.
	ErrBadCredentials = errors.New("googleauth: credentials are not valid service-account JSON")
	// ErrExchangeFailed means the token endpoint rejected the assertion or
	// was unreachable.
	ErrExchangeFailed = errors.New("googleauth: token exchange failed")
)
