package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_CapturesNonHaltErrors(t *testing.T) {
	errBoom := errors.New("boom")

	calls := 0

	chain := NewChain(
		func(_ context.Context, pc *core.ProcessingContext) error {
			calls++
			return errBoom
		},
		func(_ context.Context, pc *core.ProcessingContext) error {
			calls++
			return nil
		},
	)

	pc := &core.ProcessingContext{}
	err := chain.Run(context.Background(), pc)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, pc.Errors, 1)
	assert.ErrorIs(t, pc.Errors[0], errBoom)
}

func TestChain_HaltsOnErrHalt(t *testing.T) {
	calls := 0

	chain := NewChain(
		func(_ context.Context, pc *core.ProcessingContext) error {
			calls++
			return errors.Join(ErrHalt, errors.New("stop now"))
		},
		func(_ context.Context, pc *core.ProcessingContext) error {
			calls++
			return nil
		},
	)

	pc := &core.ProcessingContext{}
	err := chain.Run(context.Background(), pc)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, pc.Errors)
}

func TestMetadataExtractMarkdownStep(t *testing.T) {
	pc := &core.ProcessingContext{Content: []byte("intro\n# Title Here\nbody")}
	require.NoError(t, MetadataExtractMarkdownStep()(context.Background(), pc))
	assert.Equal(t, "Title Here", pc.Metadata["title"])

	pc2 := &core.ProcessingContext{Content: []byte("no heading here")}
	require.NoError(t, MetadataExtractMarkdownStep()(context.Background(), pc2))
	assert.Equal(t, "Untitled", pc2.Metadata["title"])
}

func TestLinkExtractMarkdownStep(t *testing.T) {
	pc := &core.ProcessingContext{
		Source:  "https://example.com/docs/",
		Content: []byte("See [guide](./guide.md) and [home](https://example.com/)."),
	}

	require.NoError(t, LinkExtractMarkdownStep()(context.Background(), pc))
	assert.ElementsMatch(t, []string{
		"https://example.com/docs/guide.md",
		"https://example.com/",
	}, pc.Links)
}

func TestParseAndSanitizeSteps(t *testing.T) {
	pc := &core.ProcessingContext{
		Source:  "https://example.com/",
		Content: []byte(`<html><body><nav>skip</nav><h1>Title</h1><p onclick="x()">Hello</p></body></html>`),
	}

	require.NoError(t, ParseStep()(context.Background(), pc))
	require.NoError(t, SanitizeStep()(context.Background(), pc))

	html, err := pc.DOM.HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "<nav>")
	assert.NotContains(t, html, "onclick")
	assert.Contains(t, html, "Hello")
}

func TestLinkExtractHTMLStep(t *testing.T) {
	pc := &core.ProcessingContext{
		Source: "https://example.com/docs/",
		Content: []byte(`<html><body>
			<a href="/docs/sub">sub</a>
			<a href="ftp://example.com/x">ftp</a>
			<a href="https://example.com/docs/sub">dup</a>
		</body></html>`),
	}

	require.NoError(t, ParseStep()(context.Background(), pc))
	require.NoError(t, LinkExtractHTMLStep()(context.Background(), pc))

	assert.Equal(t, []string{"https://example.com/docs/sub"}, pc.Links)
}
