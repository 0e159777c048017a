package scraper

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStrategy_ProcessItem_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n\nbody"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B\n\nbody"), 0o644))

	l := NewLocalFileStrategy()

	res, err := l.processItem(context.Background(), core.QueueItem{URL: "file://" + dir}, core.CrawlOptions{})
	require.NoError(t, err)
	assert.Nil(t, res.Document)
	assert.Len(t, res.Links, 2)
}

func TestLocalFileStrategy_ProcessItem_MarkdownFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nSome body text."), 0o644))

	l := NewLocalFileStrategy()

	res, err := l.processItem(context.Background(), core.QueueItem{URL: "file://" + path}, core.CrawlOptions{})
	require.NoError(t, err)
	require.NotNil(t, res.Document)
	assert.Equal(t, "Title", res.Document.Title)
	assert.Empty(t, res.Links)
}

func TestLocalFileStrategy_ProcessItem_SkipsUnknownMIME(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0o644))

	l := NewLocalFileStrategy()

	res, err := l.processItem(context.Background(), core.QueueItem{URL: "file://" + path}, core.CrawlOptions{})
	require.NoError(t, err)
	assert.Nil(t, res.Document)
	assert.Nil(t, res.Links)
}

func TestLocalFileStrategy_CanHandle(t *testing.T) {
	l := &LocalFileStrategy{}
	assert.True(t, l.CanHandle("file:///tmp/docs"))
	assert.False(t, l.CanHandle("https://example.com"))
}
