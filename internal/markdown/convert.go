package markdown

import (
	"errors"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

var ErrConversionFailed = errors.New("HTML to Markdown conversion failed")

// skippedTags are dropped together with everything inside them.
var skippedTags = []string{"script", "style", "button"}

// Converter turns rustdoc page markup into Markdown.
type Converter struct {
	conv *converter.Converter
}

func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	for _, tag := range skippedTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityEarly)
	}
	conv.Register.RendererFor("dt", converter.TagTypeBlock, renderTerm, converter.PriorityEarly)
	conv.Register.RendererFor("dd", converter.TagTypeBlock, renderDescription, converter.PriorityEarly)

	return &Converter{conv: conv}
}

// renderTerm writes a definition term as "term:" on its own line.
func renderTerm(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	ctx.RenderChildNodes(ctx, w, n)
	w.WriteString(":\n")
	return converter.RenderSuccess
}

func renderDescription(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	ctx.RenderChildNodes(ctx, w, n)
	w.WriteString("\n")
	return converter.RenderSuccess
}

// Convert renders markup as Markdown. Relative links are resolved against
// pageURL when it is set, and runs of blank lines are collapsed.
func (c *Converter) Convert(markup, pageURL string) (string, error) {
	md, err := c.conv.ConvertString(markup)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	if pageURL != "" {
		md = ResolveLinks(md, pageURL)
	}
	return Normalize(md), nil
}
