package markdown

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

// destinations returns the unique link and image destinations in src, in
// document order.
func destinations(src string) []string {
	doc := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	seen := make(map[string]bool)
	var dests []string
	add := func(dest []byte) {
		d := string(dest)
		if d != "" && !seen[d] {
			seen[d] = true
			dests = append(dests, d)
		}
	}

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Link:
			add(n.Destination)
		case *ast.Image:
			add(n.Destination)
		}
		return ast.GoToNext
	})
	return dests
}

// ResolveLinks rewrites relative link destinations in src to absolute URLs
// against pageURL. Absolute URLs and in-page "#fragment" links are kept.
func ResolveLinks(src, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return src
	}

	linkMap := make(map[string]string)
	for _, dest := range destinations(src) {
		if strings.HasPrefix(dest, "#") {
			continue
		}
		ref, err := url.Parse(dest)
		if err != nil || ref.IsAbs() {
			continue
		}
		linkMap[dest] = base.ResolveReference(ref).String()
	}
	return RewriteLinks(src, linkMap)
}

// RewriteLinks rewrites markdown link destinations using the provided link map.
// Destinations are found through the markdown AST and then replaced textually
// so the original formatting is preserved.
func RewriteLinks(src string, linkMap map[string]string) string {
	if len(linkMap) == 0 {
		return src
	}

	var olds []string
	for _, dest := range destinations(src) {
		if _, ok := linkMap[dest]; ok {
			olds = append(olds, dest)
		}
	}
	if len(olds) == 0 {
		return src
	}

	// Inline links: [text](destination), optionally followed by a title.
	pairs := make([]string, 0, len(olds)*4)
	for _, old := range olds {
		pairs = append(pairs,
			"]("+old+")", "]("+linkMap[old]+")",
			"]("+old+" ", "]("+linkMap[old]+" ",
		)
	}
	result := strings.NewReplacer(pairs...).Replace(src)

	// Reference-style definitions: [ref]: destination
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, old := range olds {
			suffix := "]: " + old
			if strings.HasSuffix(trimmed, suffix) {
				lines[i] = strings.Replace(line, suffix, "]: "+linkMap[old], 1)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// AddFrontMatter prepends a YAML front-matter block with the given fields in
// key order.
func AddFrontMatter(src string, fields map[string]string) string {
	if len(fields) == 0 {
		return src
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("---\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s: %s\n", k, fields[k]))
	}
	b.WriteString("---\n\n")
	b.WriteString(src)
	return b.String()
}
