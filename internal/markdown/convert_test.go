package markdown_test

import (
	"testing"

	"github.com/jcdickinson/rsdoc/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := markdown.NewConverter()
		md, err := conv.Convert(`<h1>Struct Foo</h1><p>A thing.</p>`, "")

		require.NoError(t, err)
		assert.Contains(t, md, "# Struct Foo")
		assert.Contains(t, md, "A thing.")
	})

	t.Run("drops script style and button subtrees", func(t *testing.T) {
		t.Parallel()

		html := `<p>Keep me</p><script>alert("x")</script><style>p { color: red }</style><button>Copy item path</button>`

		conv := markdown.NewConverter()
		md, err := conv.Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "Keep me")
		assert.NotContains(t, md, "alert")
		assert.NotContains(t, md, "color: red")
		assert.NotContains(t, md, "Copy item path")
	})

	t.Run("renders definition terms with a colon", func(t *testing.T) {
		t.Parallel()

		html := `<dl><dt>Term</dt><dd>Meaning of the term</dd></dl>`

		conv := markdown.NewConverter()
		md, err := conv.Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "Term:\n")
		assert.Contains(t, md, "Meaning of the term")
	})

	t.Run("keeps code blocks", func(t *testing.T) {
		t.Parallel()

		conv := markdown.NewConverter()
		md, err := conv.Convert(`<pre><code>let x = 1;</code></pre>`, "")

		require.NoError(t, err)
		assert.Contains(t, md, "```")
		assert.Contains(t, md, "let x = 1;")
	})

	t.Run("resolves relative links against the page", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="struct.Foo.html">Foo</a>.</p>`

		conv := markdown.NewConverter()
		md, err := conv.Convert(html, "https://docs.rs/serde/latest/serde/index.html")

		require.NoError(t, err)
		assert.Contains(t, md, "[Foo](https://docs.rs/serde/latest/serde/struct.Foo.html)")
	})

	t.Run("never emits more than one blank line", func(t *testing.T) {
		t.Parallel()

		html := `<p>one</p><div></div><div></div><p>two</p><br><br><br><br><p>three</p>`

		conv := markdown.NewConverter()
		md, err := conv.Convert(html, "")

		require.NoError(t, err)
		assert.NotContains(t, md, "\n\n\n")
	})
}
