package docs

import (
	"fmt"
	"strings"
	"unicode"
)

// Identifier names a documentable item by its Rust path, e.g.
// ["serde", "de", "Deserialize"]. Kind and Version are optional; an unset
// Version means "latest" when a URL is built.
type Identifier struct {
	Segments []string
	Kind     ItemKind
	Version  string
}

// ParseIdentifier splits a "::"-separated path and applies the optional kind
// token and version.
func ParseIdentifier(path, kindToken, version string) (Identifier, error) {
	id := Identifier{
		Segments: strings.Split(strings.TrimSpace(path), "::"),
		Version:  version,
	}
	if kindToken != "" {
		kind, err := ParseItemKind(kindToken)
		if err != nil {
			return Identifier{}, err
		}
		id.Kind = kind
	}
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// Validate checks that the path is non-empty and that any kind other than
// Module has a container to live in.
func (id Identifier) Validate() error {
	if len(id.Segments) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidIdentifier)
	}
	for _, seg := range id.Segments {
		if seg == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidIdentifier, id.Path())
		}
		if seg == "." || seg == ".." || strings.ContainsFunc(seg, unsafeInPath) {
			return fmt.Errorf("%w: segment %q in %q", ErrInvalidIdentifier, seg, id.Path())
		}
	}
	if id.Kind != 0 && !id.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(id.Kind))
	}
	if id.Kind.Valid() && id.Kind != KindModule && len(id.Segments) < 2 {
		return fmt.Errorf("%w: %s %q has no containing module", ErrInvalidIdentifier, id.Kind, id.Path())
	}
	return nil
}

// unsafeInPath reports runes that would change the page URL built from a
// segment.
func unsafeInPath(r rune) bool {
	return r == '/' || r == '?' || r == '#' || r == '\\' || unicode.IsSpace(r)
}

// Crate returns the library name.
func (id Identifier) Crate() string {
	if len(id.Segments) == 0 {
		return ""
	}
	return id.Segments[0]
}

// Name returns the final path segment.
func (id Identifier) Name() string {
	if len(id.Segments) == 0 {
		return ""
	}
	return id.Segments[len(id.Segments)-1]
}

// Path returns the "::"-joined Rust path.
func (id Identifier) Path() string {
	return strings.Join(id.Segments, "::")
}

// Container returns the enclosing module of id. It is only meaningful for
// identifiers with at least two segments.
func (id Identifier) Container() Identifier {
	n := len(id.Segments) - 1
	if n < 1 {
		n = len(id.Segments)
	}
	return Identifier{
		Segments: append([]string(nil), id.Segments[:n]...),
		Kind:     KindModule,
		Version:  id.Version,
	}
}

// URI renders id as rsdoc://crate/version/path.
func (id Identifier) URI() string {
	return fmt.Sprintf("rsdoc://%s/%s/%s", id.Crate(), versionOrLatest(id.Version), id.Path())
}

func versionOrLatest(version string) string {
	if version == "" {
		return "latest"
	}
	return version
}

// Page is a rendered documentation page.
type Page struct {
	URL      string
	Kind     ItemKind
	Markdown string
}
