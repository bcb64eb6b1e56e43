package httputil

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	composeerr "github.com/matzehuels/composecheck/pkg/errors"
	"github.com/matzehuels/composecheck/pkg/observability"
)

// DefaultTimeout bounds a single request attempt.
const DefaultTimeout = 30 * time.Second

// DefaultMaxBodySize caps downloaded artifacts. Dependency reports for
// large multiplatform builds run to a few megabytes.
const DefaultMaxBodySize = 64 << 20

// Fetcher downloads remote resolution artifacts with retry and caching.
type Fetcher struct {
	Client  *http.Client
	Cache   *Cache  // optional
	Backoff Backoff // zero value uses DefaultBackoff
	Refresh bool    // bypass cached entries

	// MaxBodySize rejects larger bodies; zero uses DefaultMaxBodySize.
	MaxBodySize int64
}

// NewFetcher returns a Fetcher with a default client and the given cache,
// which may be nil.
func NewFetcher(cache *Cache) *Fetcher {
	return &Fetcher{
		Client:  &http.Client{Timeout: DefaultTimeout},
		Cache:   cache,
		Backoff: DefaultBackoff,
	}
}

// Fetch returns the body at rawURL. A fresh cache entry is returned without
// contacting the server. When the download fails and an expired entry
// exists, the stale body is returned instead of the error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := composeerr.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	var stale []byte
	if f.Cache != nil && !f.Refresh {
		data, ok, err := f.Cache.Get(rawURL)
		switch {
		case ok:
			return data, nil
		case errors.Is(err, ErrExpired):
			stale = data
		}
	}

	b := f.Backoff
	if b.Attempts == 0 {
		b = DefaultBackoff
	}

	var body []byte
	err := Retry(ctx, b, func() error {
		var err error
		body, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		if stale != nil {
			return stale, nil
		}
		return nil, err
	}

	if f.Cache != nil {
		_ = f.Cache.Set(rawURL, body)
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	host, path := splitURL(rawURL)
	hooks := observability.HTTP()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, composeerr.Wrap(composeerr.ErrCodeInvalidInput, err, "build request")
	}
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		code := composeerr.ErrCodeNetwork
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			code = composeerr.ErrCodeTimeout
		}
		return nil, &RetryableError{Err: composeerr.Wrap(code, err, "fetch %s", rawURL)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(rawURL, resp.StatusCode); err != nil {
		return nil, err
	}

	limit := f.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &RetryableError{Err: composeerr.Wrap(composeerr.ErrCodeNetwork, err, "read %s", rawURL)}
	}
	if int64(len(data)) > limit {
		return nil, composeerr.New(composeerr.ErrCodeInvalidInput, "%s: body exceeds %d bytes", rawURL, limit)
	}
	return data, nil
}

func checkStatus(rawURL string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return composeerr.New(composeerr.ErrCodeFileNotFound, "not found: %s", rawURL)
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: composeerr.New(composeerr.ErrCodeNetwork, "%s: HTTP %d", rawURL, code)}
	default:
		return composeerr.New(composeerr.ErrCodeNetwork, "%s: HTTP %d", rawURL, code)
	}
}

func splitURL(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown", ""
	}
	return u.Host, u.Path
}
