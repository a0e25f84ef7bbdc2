package googleauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// parseServiceAccount accepts raw JSON or base64-encoded JSON. Diagnostics
// carry only a short prefix of the input so key material never reaches logs.
func parseServiceAccount(raw string) (*serviceAccount, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrBadCredentials)
	}

	var account serviceAccount
	if err := json.Unmarshal([]byte(raw), &account); err == nil {
		return validateAccount(&account)
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: not JSON and not base64 (input starts with %q)", ErrBadCredentials, prefix(raw))
	}
	if err := json.Unmarshal(decoded, &account); err != nil {
		return nil, fmt.Errorf("%w: base64 payload is not JSON (input starts with %q)", ErrBadCredentials, prefix(raw))
	}
	return validateAccount(&account)
}

func validateAccount(account *serviceAccount) (*serviceAccount, error) {
	if account.ClientEmail == "" || account.PrivateKey == "" {
		return nil, fmt.Errorf("%w: client_email and private_key are required", ErrBadCredentials)
	}
	return account, nil
}

func prefix(s string) string {
	if len(s) <= credentialLogPrefixLen {
		return s
	}
	return s[:credentialLogPrefixLen]
}

// AccessToken returns a cached token while it has more than EarlyRefresh of
// life left, otherwise performs a fresh JWT-bearer exchange.
func (p *providerImpl) AccessToken(ctx context.Context) (string, error) {
	now := p.now()

	p.mu.RLock()
	if p.cachedToken != "" && now.Add(EarlyRefresh).Before(p.expiry) {
		token := p.cachedToken
		p.mu.RUnlock()
		return token, nil
	}
	p.mu.RUnlock()

	assertion, err := p.signAssertion(now)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", GrantType)
	form.Set("assertion", assertion)

	body, statusCode, err := p.httpClient.PostForm(ctx, p.tokenURL, form, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: status %d: %s", ErrExchangeFailed, statusCode, body)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("%w: malformed token response: %v", ErrExchangeFailed, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: response contained no access_token", ErrExchangeFailed)
	}

	p.mu.Lock()
	p.cachedToken = tr.AccessToken
	p.expiry = now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	p.mu.Unlock()

	return tr.AccessToken, nil
}

// signAssertion builds the RS256-signed JWT-bearer assertion.
func (p *providerImpl) signAssertion(now time.Time) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(p.account.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("%w: private key is not valid PEM RSA: %v", ErrBadCredentials, err)
	}

	claims := jwt.MapClaims{
		"iss":   p.account.ClientEmail,
		"scope": p.scope,
		"aud":   p.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(AssertionLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign assertion: %v", ErrExchangeFailed, err)
	}
	return signed, nil
}
