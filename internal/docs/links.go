package docs

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseURI turns a reference to a documentation page into an Identifier.
// Accepted forms:
//
//	rsdoc://serde/latest/serde::ser::Serialize
//	serde/1.0.210/serde::ser::Serialize
//	https://docs.rs/serde/latest/serde/ser/trait.Serialize.html
//
// docs.rs URLs carry their kind in the file name, so the returned identifier
// has Kind set; rsdoc URIs leave it unset for inference. The crate part of an
// rsdoc URI must name the path's first segment.
func ParseURI(raw string) (Identifier, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return parseDocsRsURL(raw)
	}

	trimmed := strings.TrimPrefix(raw, "rsdoc://")
	parts := strings.SplitN(trimmed, "/", 3)
	if len(parts) < 3 {
		return Identifier{}, fmt.Errorf("%w: need crate/version/path, got %q", ErrInvalidIdentifier, raw)
	}

	path := parts[2]
	if idx := strings.LastIndex(path, "#"); idx >= 0 {
		path = path[:idx]
	}

	version := parts[1]
	if version == "latest" {
		version = ""
	}
	id := Identifier{
		Segments: strings.Split(path, "::"),
		Version:  version,
	}
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	if !sameCrate(parts[0], id.Crate()) {
		return Identifier{}, fmt.Errorf("%w: %q names crate %s but path starts with %s",
			ErrInvalidIdentifier, raw, parts[0], id.Crate())
	}
	return id, nil
}

// sameCrate compares a package name with a library name. Cargo maps "-" in
// package names to "_" in the library name.
func sameCrate(pkg, lib string) bool {
	return strings.ReplaceAll(pkg, "-", "_") == lib
}

// parseDocsRsURL converts a docs.rs page URL. The crate info pages under
// /crate/ are not item pages and are rejected.
func parseDocsRsURL(rawURL string) (Identifier, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Identifier{}, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	path = strings.TrimSuffix(path, "/")

	if strings.HasPrefix(path, "crate/") {
		return Identifier{}, fmt.Errorf("%w: %s is a crate info page", ErrInvalidIdentifier, rawURL)
	}

	parts := strings.SplitN(path, "/", 3)
	if len(parts) < 3 {
		return Identifier{}, fmt.Errorf("%w: %s has no item path", ErrInvalidIdentifier, rawURL)
	}

	version := parts[1]
	if version == "latest" {
		version = ""
	}

	segments := strings.Split(parts[2], "/")
	for len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}

	if len(segments) == 0 {
		return Identifier{}, fmt.Errorf("%w: %s has no item path", ErrInvalidIdentifier, rawURL)
	}

	kind := KindModule
	last := segments[len(segments)-1]
	if strings.HasSuffix(last, ".html") {
		if last == "index.html" {
			segments = segments[:len(segments)-1]
		} else {
			base := strings.TrimSuffix(last, ".html")
			token, name, ok := strings.Cut(base, ".")
			if !ok {
				return Identifier{}, fmt.Errorf("%w: unrecognised page %q", ErrInvalidIdentifier, last)
			}
			kind, err = ParseItemKind(token)
			if err != nil {
				return Identifier{}, err
			}
			segments[len(segments)-1] = name
		}
	}

	id := Identifier{Segments: segments, Kind: kind, Version: version}
	if id.Crate() == "" {
		return Identifier{}, fmt.Errorf("%w: %s has no item path", ErrInvalidIdentifier, rawURL)
	}
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}
