package markdown

import (
	"strings"
	"testing"
)

func TestRewriteLinks_InlineLinks(t *testing.T) {
	t.Parallel()
	src := "See [Foo](old/path) for details."
	got := RewriteLinks(src, map[string]string{"old/path": "https://docs.rs/crate/1.0/crate/struct.Foo.html"})
	want := "See [Foo](https://docs.rs/crate/1.0/crate/struct.Foo.html) for details."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRewriteLinks_ReferenceStyleLinks(t *testing.T) {
	t.Parallel()
	src := "See [Foo][ref] for details.\n\n[ref]: old/path"
	got := RewriteLinks(src, map[string]string{"old/path": "https://docs.rs/new"})
	if !strings.Contains(got, "[ref]: https://docs.rs/new") {
		t.Errorf("reference link not rewritten: %q", got)
	}
}

func TestRewriteLinks_EmptyMap(t *testing.T) {
	t.Parallel()
	src := "Hello [world](url)."
	got := RewriteLinks(src, nil)
	if got != src {
		t.Errorf("expected unchanged, got %q", got)
	}
	got = RewriteLinks(src, map[string]string{})
	if got != src {
		t.Errorf("expected unchanged for empty map, got %q", got)
	}
}

func TestRewriteLinks_NoMatchingLinks(t *testing.T) {
	t.Parallel()
	src := "Check [this](keep-me) out."
	got := RewriteLinks(src, map[string]string{"other": "https://docs.rs/x"})
	if got != src {
		t.Errorf("expected unchanged, got %q", got)
	}
}

func TestRewriteLinks_MultipleLinks(t *testing.T) {
	t.Parallel()
	src := "[A](a-dest) and [B](b-dest) together."
	got := RewriteLinks(src, map[string]string{
		"a-dest": "https://docs.rs/a",
		"b-dest": "https://docs.rs/b",
	})
	if !strings.Contains(got, "(https://docs.rs/a)") {
		t.Error("link A not rewritten")
	}
	if !strings.Contains(got, "(https://docs.rs/b)") {
		t.Error("link B not rewritten")
	}
}

func TestRewriteLinks_LinkWithTitle(t *testing.T) {
	t.Parallel()
	src := `See [Foo](struct.Foo.html "struct serde::Foo").`
	got := RewriteLinks(src, map[string]string{"struct.Foo.html": "https://docs.rs/serde/latest/serde/struct.Foo.html"})
	want := `See [Foo](https://docs.rs/serde/latest/serde/struct.Foo.html "struct serde::Foo").`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveLinks(t *testing.T) {
	t.Parallel()

	page := "https://docs.rs/serde/latest/serde/de/index.html"
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "sibling item",
			src:  "[Error](trait.Error.html)",
			want: "[Error](https://docs.rs/serde/latest/serde/de/trait.Error.html)",
		},
		{
			name: "parent module",
			src:  "[serde](../index.html)",
			want: "[serde](https://docs.rs/serde/latest/serde/index.html)",
		},
		{
			name: "root relative",
			src:  "[std](/std/index.html)",
			want: "[std](https://docs.rs/std/index.html)",
		},
		{
			name: "absolute kept",
			src:  "[rust](https://www.rust-lang.org/)",
			want: "[rust](https://www.rust-lang.org/)",
		},
		{
			name: "fragment kept",
			src:  "[§](#examples)",
			want: "[§](#examples)",
		},
		{
			name: "no links",
			src:  "plain text",
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveLinks(tt.src, page); got != tt.want {
				t.Errorf("ResolveLinks(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestResolveLinks_RelativePageURL(t *testing.T) {
	t.Parallel()
	src := "[Error](trait.Error.html)"
	if got := ResolveLinks(src, "serde/de/index.html"); got != src {
		t.Errorf("expected unchanged for non-absolute page URL, got %q", got)
	}
}

func TestAddFrontMatter(t *testing.T) {
	t.Parallel()

	t.Run("basic", func(t *testing.T) {
		got := AddFrontMatter("# Doc", map[string]string{"uri": "rsdoc://serde/latest/serde::Serialize"})
		if !strings.HasPrefix(got, "---\n") {
			t.Error("missing opening ---")
		}
		if !strings.Contains(got, "uri: rsdoc://serde/latest/serde::Serialize") {
			t.Error("missing uri entry")
		}
		if !strings.HasSuffix(got, "# Doc") {
			t.Error("original content missing")
		}
	})

	t.Run("sorted_keys", func(t *testing.T) {
		got := AddFrontMatter("body", map[string]string{
			"z-frag": "rsdoc://z",
			"a-frag": "https://docs.rs/a",
		})
		aIdx := strings.Index(got, "a-frag")
		zIdx := strings.Index(got, "z-frag")
		if aIdx > zIdx {
			t.Error("keys not sorted alphabetically")
		}
	})

	t.Run("empty_map", func(t *testing.T) {
		got := AddFrontMatter("body", nil)
		if got != "body" {
			t.Errorf("expected unchanged for empty map, got %q", got)
		}
	})
}
