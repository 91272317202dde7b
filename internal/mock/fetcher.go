package mock

import (
	"context"
	"sync"

	"github.com/jcdickinson/rsdoc/internal/docs"
)

var _ docs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docs.Fetcher that records the URLs it
// was asked for.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)

	mu   sync.Mutex
	urls []string
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	return f.FetchFn(ctx, url)
}

// URLs returns the fetched URLs in call order.
func (f *Fetcher) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// Pages returns a Fetcher serving fixed bodies by URL. Unknown URLs fail with
// a 404 StatusError.
func Pages(pages map[string]string) *Fetcher {
	return &Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			body, ok := pages[url]
			if !ok {
				return "", &docs.StatusError{StatusCode: 404, URL: url}
			}
			return body, nil
		},
	}
}
