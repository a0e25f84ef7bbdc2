package admanager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// send posts one SOAP request and returns the raw response body.
func (c *implClient) send(ctx context.Context, op, body string) (string, error) {
	token, err := c.cfg.Auth.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("admanager: %s: token: %w", op, err)
	}

	envelope := c.wrapEnvelope(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(envelope))
	if err != nil {
		return "", fmt.Errorf("admanager: %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", op)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("admanager: %s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("admanager: %s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProtocolError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    "request rejected",
			Body:       excerpt(raw),
		}
	}
	return string(raw), nil
}

var (
	fieldPatternMu sync.Mutex
	fieldPatterns  = map[string]*regexp.Regexp{}
)

// extractField pulls the text content of the first element with the
// given local name, ignoring any namespace prefix.
func extractField(body, name string) string {
	fieldPatternMu.Lock()
	re, ok := fieldPatterns[name]
	if !ok {
		re = regexp.MustCompile(fmt.Sprintf(`<(?:[A-Za-z0-9_.-]+:)?%s(?:\s[^>]*)?>([\s\S]*?)</(?:[A-Za-z0-9_.-]+:)?%s>`,
			regexp.QuoteMeta(name), regexp.QuoteMeta(name)))
		fieldPatterns[name] = re
	}
	fieldPatternMu.Unlock()

	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// unescapeXML reverses the entity escaping applied to text content.
var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
)

func unescapeXML(s string) string {
	return xmlUnescaper.Replace(s)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
