package docs

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// mainContentSelector is the rustdoc element holding the item docs.
	mainContentSelector = "#main-content"
	// searchResultsSelector is the result list on docs.rs release search.
	searchResultsSelector = ".recent-releases-container > ul"
)

// ExtractContent returns the inner HTML of the page's #main-content element.
// Exactly one such element must exist.
func ExtractContent(html string) (string, error) {
	return extractUnique(html, mainContentSelector)
}

func extractUnique(html, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	sel := doc.Find(selector)
	switch n := sel.Length(); n {
	case 1:
	case 0:
		return "", fmt.Errorf("%w: no %s element", ErrContentNotFound, selector)
	default:
		return "", fmt.Errorf("%w: %d %s elements", ErrContentNotFound, n, selector)
	}

	inner, err := sel.Html()
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", selector, err)
	}
	return inner, nil
}
