package docs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent    = "rsdoc/0.1.0"
	DefaultFetchTimeout = 30 * time.Second
)

// Fetcher retrieves the body of a page with a single GET.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher is the net/http Fetcher. It is safe for concurrent use.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithRateLimit spaces requests to at most rps per second. Zero disables it.
func WithRateLimit(rps float64) FetcherOption {
	return func(f *HTTPFetcher) {
		if rps > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient replaces the underlying client. Options apply in order,
// so pass it before WithTimeout.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch issues one GET. Non-2xx responses return a *StatusError; failures to
// reach the server wrap ErrTransport together with the cause.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: waiting to fetch %s: %w", ErrTransport, url, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	// Setting Accept-Encoding turns off the transport's transparent gzip, so
	// every encoding offered here must be handled in decodeBody.
	req.Header.Set("Accept-Encoding", "zstd, gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %w", ErrTransport, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrTransport, url, err)
	}
	return body, nil
}

func decodeBody(resp *http.Response) (string, error) {
	var r io.Reader = resp.Body
	switch enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))); enc {
	case "", "identity":
	case "zstd":
		decoder, err := zstd.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer decoder.Close()
		r = decoder
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	default:
		return "", fmt.Errorf("unsupported content encoding %q", enc)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
