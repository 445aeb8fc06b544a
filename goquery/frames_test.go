package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Extract_Frames(t *testing.T) {
	t.Parallel()

	frameOpts := sitepdf.ExtractOptions{ContentSelector: "article", ExtractFrames: true}

	t.Run("inlines captured frame body with label", func(t *testing.T) {
		t.Parallel()

		snap := &sitepdf.Snapshot{
			URL:  "https://example.com/docs/demo",
			HTML: `<html><body><article><p>Before</p><iframe title="Live demo" src="/embed/demo" data-sitepdf-frame="0"></iframe></article></body></html>`,
			Frames: map[string]*sitepdf.Snapshot{
				"0": {
					URL:  "https://example.com/embed/demo",
					HTML: `<html><body><h2>Demo</h2><img src="shot.png"></body></html>`,
				},
			},
		}

		frag, err := goquery.NewParser().Extract(snap, frameOpts, sitepdf.NewHeaderIDAllocator())

		require.NoError(t, err)
		assert.NotContains(t, frag.HTML, "<iframe")
		assert.Contains(t, frag.HTML, `<div class="sitepdf-embedded"><p class="sitepdf-embedded-label">Embedded content: Live demo</p>`)
		assert.Contains(t, frag.HTML, `src="https://example.com/embed/shot.png"`)
		assert.Empty(t, frag.FrameErrors)
		require.Len(t, frag.Headers, 1)
		assert.Equal(t, "demo", frag.Headers[0].ID)
	})

	t.Run("leaves frames alone when disabled", func(t *testing.T) {
		t.Parallel()

		snap := &sitepdf.Snapshot{
			URL:  "https://example.com/docs/demo",
			HTML: `<html><body><article><iframe data-sitepdf-frame="0" srcdoc="<p>inline</p>"></iframe></article></body></html>`,
		}

		frag, err := goquery.NewParser().Extract(snap, sitepdf.ExtractOptions{ContentSelector: "article"}, sitepdf.NewHeaderIDAllocator())

		require.NoError(t, err)
		assert.Contains(t, frag.HTML, "<iframe")
		assert.NotContains(t, frag.HTML, sitepdf.FrameAttr)
	})

	t.Run("falls back to srcdoc", func(t *testing.T) {
		t.Parallel()

		snap := &sitepdf.Snapshot{
			URL:  "https://example.com/docs/demo",
			HTML: `<html><body><article><iframe srcdoc="<p>Inline <a href='/x'>doc</a></p>"></iframe></article></body></html>`,
		}

		frag, err := goquery.NewParser().Extract(snap, frameOpts, sitepdf.NewHeaderIDAllocator())

		require.NoError(t, err)
		assert.Contains(t, frag.HTML, `<p class="sitepdf-embedded-label">Embedded content:</p><p>Inline <a href="https://example.com/x">doc</a></p>`)
	})

	t.Run("inlines nested frames", func(t *testing.T) {
		t.Parallel()

		snap := &sitepdf.Snapshot{
			URL:  "https://example.com/docs/demo",
			HTML: `<html><body><article><iframe title="outer" data-sitepdf-frame="0"></iframe></article></body></html>`,
			Frames: map[string]*sitepdf.Snapshot{
				"0": {
					URL:  "https://example.com/outer",
					HTML: `<html><body><p>Outer</p><iframe title="inner" data-sitepdf-frame="0"></iframe></body></html>`,
					Frames: map[string]*sitepdf.Snapshot{
						"0": {URL: "https://example.com/inner", HTML: `<html><body><p>Inner</p></body></html>`},
					},
				},
			},
		}

		frag, err := goquery.NewParser().Extract(snap, frameOpts, sitepdf.NewHeaderIDAllocator())

		require.NoError(t, err)
		assert.Contains(t, frag.HTML, "Embedded content: outer")
		assert.Contains(t, frag.HTML, "Embedded content: inner")
		assert.Contains(t, frag.HTML, "<p>Inner</p>")
		assert.NotContains(t, frag.HTML, "<iframe")
	})

	t.Run("keeps inaccessible frame and reports it", func(t *testing.T) {
		t.Parallel()

		snap := &sitepdf.Snapshot{
			URL:  "https://example.com/docs/demo",
			HTML: `<html><body><article><p>Text</p><iframe src="https://other.example/widget" data-sitepdf-frame="0"></iframe></article></body></html>`,
		}

		frag, err := goquery.NewParser().Extract(snap, frameOpts, sitepdf.NewHeaderIDAllocator())

		require.NoError(t, err)
		assert.Contains(t, frag.HTML, `<iframe src="https://other.example/widget"`)
		assert.Contains(t, frag.HTML, "<p>Text</p>")
		assert.NotContains(t, frag.HTML, sitepdf.FrameAttr)
		require.Len(t, frag.FrameErrors, 1)
		assert.Equal(t, sitepdf.EFRAME, sitepdf.ErrorCode(frag.FrameErrors[0]))
	})

	t.Run("stops at depth limit", func(t *testing.T) {
		t.Parallel()

		snap := &sitepdf.Snapshot{
			URL:  "https://example.com/docs/demo",
			HTML: `<html><body><article><iframe data-sitepdf-frame="0"></iframe></article></body></html>`,
			Frames: map[string]*sitepdf.Snapshot{
				"0": {
					URL:  "https://example.com/outer",
					HTML: `<html><body><p>Outer</p><iframe data-sitepdf-frame="0"></iframe></body></html>`,
					Frames: map[string]*sitepdf.Snapshot{
						"0": {URL: "https://example.com/inner", HTML: `<html><body><p>Inner</p></body></html>`},
					},
				},
			},
		}

		opts := frameOpts
		opts.MaxFrameDepth = 1
		frag, err := goquery.NewParser().Extract(snap, opts, sitepdf.NewHeaderIDAllocator())

		require.NoError(t, err)
		assert.Contains(t, frag.HTML, "<p>Outer</p>")
		assert.NotContains(t, frag.HTML, "<p>Inner</p>")
		assert.NotContains(t, frag.HTML, sitepdf.FrameAttr)
		require.Len(t, frag.FrameErrors, 1)
		assert.Contains(t, sitepdf.ErrorMessage(frag.FrameErrors[0]), "nested deeper than 1")
	})
}
