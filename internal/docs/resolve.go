package docs

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the documentation host.
const DefaultBaseURL = "https://docs.rs"

// ResolveURL builds the page URL for id as an item of the given kind.
// Modules map to .../index.html, everything else to
// .../{container}/{kind}.{name}.html.
func ResolveURL(baseURL string, id Identifier, kind ItemKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownKind, uint8(kind))
	}
	if len(id.Segments) == 0 {
		return "", fmt.Errorf("%w: empty path", ErrInvalidIdentifier)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	version := versionOrLatest(id.Version)

	if kind == KindModule {
		return fmt.Sprintf("%s/%s/%s/%s/index.html",
			baseURL, id.Crate(), version, strings.Join(id.Segments, "/")), nil
	}

	if len(id.Segments) < 2 {
		return "", fmt.Errorf("%w: the top level resource is always a module, got %s %q",
			ErrInvalidIdentifier, kind, id.Path())
	}
	container := id.Segments[:len(id.Segments)-1]
	return fmt.Sprintf("%s/%s/%s/%s/%s.%s.html",
		baseURL, id.Crate(), version, strings.Join(container, "/"), kind, id.Name()), nil
}

// CrateDocsURL builds a page URL from a crate name, an optional module and an
// optional item path such as "struct.Foo" or "de::value::struct.Error".
func CrateDocsURL(baseURL, crate, module, itemPath string) (string, error) {
	if crate == "" {
		return "", fmt.Errorf("%w: crate name is required", ErrInvalidIdentifier)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u := fmt.Sprintf("%s/%s/latest/%s", strings.TrimSuffix(baseURL, "/"), crate, crate)
	if module != "" {
		u += "/" + strings.ReplaceAll(strings.Trim(module, "/"), "::", "/")
	}
	if itemPath == "" {
		return u + "/index.html", nil
	}
	return u + "/" + strings.ReplaceAll(itemPath, "::", "/") + ".html", nil
}
