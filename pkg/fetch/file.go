package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// mimeByExtension derives MIME type by file extension (§4.2).
var mimeByExtension = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".md":   "text/markdown",
	".txt":  "text/plain",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".json": "application/json",
}

// FileFetcher reads bytes from the local path portion of file:// URIs (§4.2).
type FileFetcher struct{}

// NewFileFetcher builds a FileFetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// CanFetch reports whether source uses the file scheme.
func (f *FileFetcher) CanFetch(source string) bool {
	return schemeOf(source) == "file"
}

// Fetch reads the local file (or directory listing marker) named by source.
func (f *FileFetcher) Fetch(_ context.Context, source string, _ core.FetchOptions) (core.RawContent, error) {
	u, err := url.Parse(source)
	if err != nil {
		return core.RawContent{}, fmt.Errorf("%w: %w", core.ErrInvalidURL, err)
	}

	path := u.Path

	info, err := os.Stat(path)
	if err != nil {
		return core.RawContent{}, fmt.Errorf("%w: %w", core.ErrFetchFatal, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return core.RawContent{}, fmt.Errorf("%w: %w", core.ErrFetchFatal, err)
		}

		links := make([]string, 0, len(entries))
		for _, e := range entries {
			links = append(links, "file://"+filepath.Join(path, e.Name()))
		}

		return core.RawContent{
			Bytes:    []byte(strings.Join(links, "\n")),
			MimeType: "application/x-directory",
			Source:   source,
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.RawContent{}, fmt.Errorf("%w: %w", core.ErrFetchFatal, err)
	}

	return core.RawContent{
		Bytes:    data,
		MimeType: mimeForExt(filepath.Ext(path)),
		Source:   source,
	}, nil
}

func mimeForExt(ext string) string {
	if mt, ok := mimeByExtension[strings.ToLower(ext)]; ok {
		return mt
	}

	return "application/octet-stream"
}

// IsDirectoryListing reports whether raw content represents the synthetic
// directory-listing payload FileFetcher emits for directory sources.
func IsDirectoryListing(rc core.RawContent) bool {
	return rc.MimeType == "application/x-directory"
}

// DirectoryEntries splits a directory-listing payload into its file:// links.
func DirectoryEntries(rc core.RawContent) []string {
	if len(rc.Bytes) == 0 {
		return nil
	}

	return strings.Split(string(rc.Bytes), "\n")
}
