package googleauth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"
)

func testKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return string(pem.EncodeToMemory(block))
}

func testCredentials(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   "widget-test",
		"private_key":  testKeyPEM(t),
		"client_email": "reports@widget-test.iam.gserviceaccount.com",
	})
	if err != nil {
		t.Fatalf("marshal credentials: %v", err)
	}
	return string(raw)
}

// fakeExchange records PostForm calls and plays back scripted responses.
type fakeExchange struct {
	calls     int
	lastForm  url.Values
	token     string
	expiresIn int64
	status    int
	err       error
}

func (f *fakeExchange) Get(ctx context.Context, u string, h map[string]string) ([]byte, int, error) {
	return nil, 0, errors.New("unexpected Get")
}

func (f *fakeExchange) Post(ctx context.Context, u string, body interface{}, h map[string]string) ([]byte, int, error) {
	return nil, 0, errors.New("unexpected Post")
}

func (f *fakeExchange) PostForm(ctx context.Context, u string, form url.Values, h map[string]string) ([]byte, int, error) {
	f.calls++
	f.lastForm = form
	if f.err != nil {
		return nil, 0, f.err
	}
	status := f.status
	if status == 0 {
		status = 200
	}
	body := fmt.Sprintf(`{"access_token":%q,"token_type":"Bearer","expires_in":%d}`, f.token, f.expiresIn)
	return []byte(body), status, nil
}

func TestParseServiceAccount(t *testing.T) {
	creds := testCredentials(t)

	t.Run("raw json", func(t *testing.T) {
		account, err := parseServiceAccount(creds)
		if err != nil {
			t.Fatalf("parseServiceAccount: %v", err)
		}
		if account.ClientEmail != "reports@widget-test.iam.gserviceaccount.com" {
			t.Errorf("ClientEmail = %q", account.ClientEmail)
		}
	})

	t.Run("base64 json", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte(creds))
		account, err := parseServiceAccount(encoded)
		if err != nil {
			t.Fatalf("parseServiceAccount: %v", err)
		}
		if account.PrivateKey == "" {
			t.Error("PrivateKey empty after base64 round trip")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseServiceAccount("this-is-a-long-secret-value-that-must-not-leak")
		if !errors.Is(err, ErrBadCredentials) {
			t.Fatalf("expected ErrBadCredentials, got %v", err)
		}
		if strings.Contains(err.Error(), "must-not-leak") {
			t.Errorf("error echoes credential material: %v", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := parseServiceAccount(`{"type":"service_account"}`)
		if !errors.Is(err, ErrBadCredentials) {
			t.Fatalf("expected ErrBadCredentials, got %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := parseServiceAccount("   "); !errors.Is(err, ErrBadCredentials) {
			t.Fatalf("expected ErrBadCredentials, got %v", err)
		}
	})
}

func newTestProvider(t *testing.T, fake *fakeExchange) *providerImpl {
	t.Helper()
	p, err := New(Config{
		Credentials: testCredentials(t),
		Scope:       "https://www.googleapis.com/auth/dfp",
		TokenURL:    "https://token.test/exchange",
		HTTPClient:  fake,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p.(*providerImpl)
}

func TestAccessToken(t *testing.T) {
	t.Run("exchange sends jwt bearer grant", func(t *testing.T) {
		fake := &fakeExchange{token: "tok-1", expiresIn: 3600}
		p := newTestProvider(t, fake)

		token, err := p.AccessToken(context.Background())
		if err != nil {
			t.Fatalf("AccessToken: %v", err)
		}
		if token != "tok-1" {
			t.Errorf("token = %q, want tok-1", token)
		}
		if got := fake.lastForm.Get("grant_type"); got != GrantType {
			t.Errorf("grant_type = %q, want %q", got, GrantType)
		}
		if fake.lastForm.Get("assertion") == "" {
			t.Error("assertion missing from exchange form")
		}
	})

	t.Run("cached while fresh", func(t *testing.T) {
		fake := &fakeExchange{token: "tok-1", expiresIn: 3600}
		p := newTestProvider(t, fake)

		base := time.Now()
		p.now = func() time.Time { return base }
		first, err := p.AccessToken(context.Background())
		if err != nil {
			t.Fatalf("AccessToken: %v", err)
		}

		// Second call well inside the TTL-minus-5-minute window.
		p.now = func() time.Time { return base.Add(10 * time.Minute) }
		second, err := p.AccessToken(context.Background())
		if err != nil {
			t.Fatalf("AccessToken: %v", err)
		}
		if first != second {
			t.Errorf("cached token changed: %q -> %q", first, second)
		}
		if fake.calls != 1 {
			t.Errorf("exchange calls = %d, want 1", fake.calls)
		}
	})

	t.Run("refreshes inside early window", func(t *testing.T) {
		fake := &fakeExchange{token: "tok-1", expiresIn: 3600}
		p := newTestProvider(t, fake)

		base := time.Now()
		p.now = func() time.Time { return base }
		if _, err := p.AccessToken(context.Background()); err != nil {
			t.Fatalf("AccessToken: %v", err)
		}

		// 56 minutes in: less than EarlyRefresh of life left.
		fake.token = "tok-2"
		p.now = func() time.Time { return base.Add(56 * time.Minute) }
		token, err := p.AccessToken(context.Background())
		if err != nil {
			t.Fatalf("AccessToken: %v", err)
		}
		if token != "tok-2" {
			t.Errorf("token = %q, want tok-2", token)
		}
		if fake.calls != 2 {
			t.Errorf("exchange calls = %d, want 2", fake.calls)
		}
	})

	t.Run("refreshes after expiry exactly once", func(t *testing.T) {
		fake := &fakeExchange{token: "tok-1", expiresIn: 3600}
		p := newTestProvider(t, fake)

		base := time.Now()
		p.now = func() time.Time { return base }
		if _, err := p.AccessToken(context.Background()); err != nil {
			t.Fatalf("AccessToken: %v", err)
		}

		fake.token = "tok-2"
		p.now = func() time.Time { return base.Add(2 * time.Hour) }
		for i := 0; i < 3; i++ {
			token, err := p.AccessToken(context.Background())
			if err != nil {
				t.Fatalf("AccessToken: %v", err)
			}
			if token != "tok-2" {
				t.Errorf("token = %q, want tok-2", token)
			}
		}
		if fake.calls != 2 {
			t.Errorf("exchange calls = %d, want 2", fake.calls)
		}
	})

	t.Run("non-2xx surfaces exchange failure", func(t *testing.T) {
		fake := &fakeExchange{token: "ignored", expiresIn: 3600, status: 401}
		p := newTestProvider(t, fake)
		if _, err := p.AccessToken(context.Background()); !errors.Is(err, ErrExchangeFailed) {
			t.Fatalf("expected ErrExchangeFailed, got %v", err)
		}
	})

	t.Run("network failure surfaces exchange failure", func(t *testing.T) {
		fake := &fakeExchange{err: errors.New("connection refused")}
		p := newTestProvider(t, fake)
		if _, err := p.AccessToken(context.Background()); !errors.Is(err, ErrExchangeFailed) {
			t.Fatalf("expected ErrExchangeFailed, got %v", err)
		}
	})
}

func TestNewBadCredentials(t *testing.T) {
	if _, err := New(Config{Credentials: "nope"}); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}
