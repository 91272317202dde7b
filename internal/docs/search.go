package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultCratesIOURL is the crates.io API host.
const DefaultCratesIOURL = "https://crates.io"

type CratesIOResult struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxVersion  string `json:"max_version"`
	Downloads   int    `json:"downloads"`
}

// SearchCratesIO searches crates.io for crates matching the query.
func (c *Client) SearchCratesIO(ctx context.Context, query string, limit int) ([]CratesIOResult, error) {
	if limit <= 0 {
		limit = 20
	}

	u := fmt.Sprintf("%s/api/v1/crates?q=%s&per_page=%s",
		strings.TrimSuffix(c.cratesIOURL, "/"), url.QueryEscape(query), strconv.Itoa(limit))

	body, err := c.fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("searching crates.io: %w", err)
	}

	var payload struct {
		Crates []CratesIOResult `json:"crates"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("decoding crates.io response: %w", err)
	}
	return payload.Crates, nil
}

// SearchDocsRs runs a docs.rs release search and renders the result list as
// Markdown.
func (c *Client) SearchDocsRs(ctx context.Context, query string) (string, error) {
	u := fmt.Sprintf("%s/releases/search?query=%s",
		strings.TrimSuffix(c.baseURL, "/"), url.QueryEscape(query))

	html, err := c.fetcher.Fetch(ctx, u)
	if err != nil {
		return "", fmt.Errorf("failed to fetch search results: %w", err)
	}

	list, err := extractUnique(html, searchResultsSelector)
	if err != nil {
		return "", fmt.Errorf("search results: %w", err)
	}

	return c.converter.Convert(list, u)
}
