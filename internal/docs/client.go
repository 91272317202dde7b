package docs

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// Converter renders extracted page markup as Markdown. pageURL is used to
// resolve relative links.
type Converter interface {
	Convert(html, pageURL string) (string, error)
}

// Client runs the resolve, fetch, extract, convert pipeline. It holds no
// per-request state and may be shared between goroutines.
type Client struct {
	fetcher     Fetcher
	converter   Converter
	baseURL     string
	cratesIOURL string
	logger      *slog.Logger

	inflight singleflight.Group
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a docs.rs mirror.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithCratesIOURL overrides the crates.io API host used by SearchCratesIO.
func WithCratesIOURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.cratesIOURL = u
		}
	}
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(fetcher Fetcher, converter Converter, opts ...ClientOption) *Client {
	c := &Client{
		fetcher:     fetcher,
		converter:   converter,
		baseURL:     DefaultBaseURL,
		cratesIOURL: DefaultCratesIOURL,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch renders the documentation page for id. When id has no kind, it is
// inferred from the containing module first.
func (c *Client) Fetch(ctx context.Context, id Identifier) (*Page, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	kind := id.Kind
	if !kind.Valid() {
		var err error
		kind, err = c.InferKind(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	url, err := ResolveURL(c.baseURL, id, kind)
	if err != nil {
		return nil, err
	}

	page, err := c.render(ctx, url)
	if err != nil {
		return nil, err
	}
	page.Kind = kind
	return page, nil
}

// FetchCrateDocs renders a page addressed by crate, module and a raw item
// path ("struct.Foo") without any kind inference.
func (c *Client) FetchCrateDocs(ctx context.Context, crate, module, itemPath string) (*Page, error) {
	url, err := CrateDocsURL(c.baseURL, crate, module, itemPath)
	if err != nil {
		return nil, err
	}
	return c.render(ctx, url)
}

func (c *Client) render(ctx context.Context, url string) (*Page, error) {
	c.logger.Debug("fetching documentation", "url", url)

	html, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documentation: %w", err)
	}

	content, err := ExtractContent(html)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	md, err := c.converter.Convert(content, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	return &Page{URL: url, Markdown: md}, nil
}

// fetch shares one request between concurrent callers asking for the same
// URL. The shared request ignores any single caller's cancellation; each
// caller stops waiting when its own context is done. Nothing is kept once it
// completes.
func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: fetching %s: %w", ErrTransport, url, err)
	}

	ch := c.inflight.DoChan(url, func() (interface{}, error) {
		return c.fetcher.Fetch(context.WithoutCancel(ctx), url)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: fetching %s: %w", ErrTransport, url, ctx.Err())
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("shared in-flight fetch", "url", url)
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}
