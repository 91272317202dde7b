package markdown

import "strings"

// Normalize keeps at most two consecutive newlines, so no more than one
// blank line ever separates blocks. Everything else is copied unchanged.
func Normalize(md string) string {
	var b strings.Builder
	b.Grow(len(md))

	newlines := 0
	for i := 0; i < len(md); i++ {
		c := md[i]
		if c == '\n' {
			newlines++
			if newlines > 2 {
				continue
			}
		} else {
			newlines = 0
		}
		b.WriteByte(c)
	}
	return b.String()
}
