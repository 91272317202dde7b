package docs

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// InferKind works out the kind of id's final segment. A bare crate name is
// a module. Otherwise the containing module's page is fetched and its item
// listing scanned; listing links carry the item's qualified name in their
// title and its kind token as their class.
func (c *Client) InferKind(ctx context.Context, id Identifier) (ItemKind, error) {
	if len(id.Segments) == 1 {
		return KindModule, nil
	}

	containerURL, err := ResolveURL(c.baseURL, id.Container(), KindModule)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("inferring item kind", "path", id.Path(), "container", containerURL)

	page, err := c.fetch(ctx, containerURL)
	if err != nil {
		return 0, fmt.Errorf("fetching container of %s: %w", id.Path(), err)
	}
	content, err := ExtractContent(page)
	if err != nil {
		return 0, fmt.Errorf("container of %s: %w", id.Path(), err)
	}

	kind, err := FindKind(content, id)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("inferred item kind", "path", id.Path(), "kind", kind)
	return kind, nil
}

// FindKind scans listing markup for the first element whose title names id
// and whose class is a kind token.
func FindKind(content string, id Identifier) (ItemKind, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return 0, fmt.Errorf("parsing container listing: %w", err)
	}

	var kind ItemKind
	doc.Find("[title]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title, _ := sel.Attr("title")
		if !MatchesTitle(title, id) {
			return true
		}
		class, _ := sel.Attr("class")
		k, err := ParseItemKind(strings.TrimSpace(class))
		if err != nil {
			return true
		}
		kind = k
		return false
	})

	if !kind.Valid() {
		return 0, fmt.Errorf("%w: no listing entry for %s", ErrResourceNotFound, id.Path())
	}
	return kind, nil
}

// MatchesTitle reports whether a listing title such as "struct serde::Foo"
// refers to id. The comparison is a case-sensitive suffix match on either
// " Name" or " crate::path::Name".
func MatchesTitle(title string, id Identifier) bool {
	name := id.Name()
	if name == "" {
		return false
	}
	return strings.HasSuffix(title, " "+name) || strings.HasSuffix(title, " "+id.Path())
}
