package html_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_Assemble(t *testing.T) {
	t.Parallel()

	fragments := []sitepdf.PageFragment{
		{SourceURL: "https://example.com/a", HTML: `<main><h1 id="intro">Intro</h1><p>First</p></main>`},
		{SourceURL: "https://example.com/b", HTML: `<main><h2 id="setup">Setup</h2><p>Second</p></main>`},
	}
	headers := []sitepdf.HeaderRecord{
		{Level: 1, ID: "intro", Text: "Intro"},
		{Level: 2, ID: "setup", Text: "Setup"},
	}

	t.Run("renders cover toc and fragments in order", func(t *testing.T) {
		t.Parallel()

		a := html.NewAssembler()

		out, err := a.Assemble(&sitepdf.Document{
			Title:     "Guide",
			Cover:     &sitepdf.Cover{Title: "Guide", Subtitle: "v2"},
			TOC:       &sitepdf.TOC{Title: "Contents"},
			Fragments: fragments,
			Headers:   headers,
		})

		require.NoError(t, err)
		assert.Contains(t, out, "<title>Guide</title>")
		assert.Contains(t, out, `<h1 class="sitepdf-cover-title">Guide</h1>`)
		assert.Contains(t, out, `<p class="sitepdf-cover-subtitle">v2</p>`)
		assert.Contains(t, out, `<h2 class="sitepdf-toc-title">Contents</h2>`)
		assert.Contains(t, out, `style="margin-left: 0px"><a href="#intro">Intro</a>`)
		assert.Contains(t, out, `style="margin-left: 20px"><a href="#setup">Setup</a>`)

		cover := strings.Index(out, "sitepdf-cover-title")
		toc := strings.Index(out, "sitepdf-toc-title")
		first := strings.Index(out, "<p>First</p>")
		second := strings.Index(out, "<p>Second</p>")
		assert.Less(t, cover, toc)
		assert.Less(t, toc, first)
		assert.Less(t, first, second)
	})

	t.Run("omits cover and toc when disabled", func(t *testing.T) {
		t.Parallel()

		a := html.NewAssembler()

		out, err := a.Assemble(&sitepdf.Document{Fragments: fragments, Headers: headers})

		require.NoError(t, err)
		assert.NotContains(t, out, `<section class="sitepdf-cover">`)
		assert.NotContains(t, out, `<nav class="sitepdf-toc">`)
		assert.Contains(t, out, "<p>First</p>")
	})

	t.Run("embeds cover image as data uri", func(t *testing.T) {
		t.Parallel()

		a := html.NewAssembler()

		out, err := a.Assemble(&sitepdf.Document{
			Cover: &sitepdf.Cover{
				Title: "Guide",
				Image: &sitepdf.Image{ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
			},
		})

		require.NoError(t, err)
		assert.Contains(t, out, `src="data:image/png;base64,iVBORw=="`)
	})

	t.Run("cover without image has no img tag", func(t *testing.T) {
		t.Parallel()

		a := html.NewAssembler()

		out, err := a.Assemble(&sitepdf.Document{Cover: &sitepdf.Cover{Title: "Guide"}})

		require.NoError(t, err)
		assert.NotContains(t, out, "<img")
	})

	t.Run("includes custom css verbatim", func(t *testing.T) {
		t.Parallel()

		a := html.NewAssembler()

		out, err := a.Assemble(&sitepdf.Document{CSS: "body { font-size: 11pt; }"})

		require.NoError(t, err)
		assert.Contains(t, out, "<style>body { font-size: 11pt; }</style>")
	})

	t.Run("escapes titles and heading text", func(t *testing.T) {
		t.Parallel()

		a := html.NewAssembler()

		out, err := a.Assemble(&sitepdf.Document{
			Cover:   &sitepdf.Cover{Title: "A <b> & C"},
			TOC:     &sitepdf.TOC{Title: "Contents"},
			Headers: []sitepdf.HeaderRecord{{Level: 1, ID: "x", Text: "<script>"}},
		})

		require.NoError(t, err)
		assert.Contains(t, out, "A &lt;b&gt; &amp; C")
		assert.Contains(t, out, "&lt;script&gt;")
	})
}
