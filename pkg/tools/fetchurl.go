package tools

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// FetchRegistry resolves a URL to the fetcher that can load it (§4.2).
type FetchRegistry interface {
	Fetch(ctx context.Context, source string, opts core.FetchOptions) (core.RawContent, error)
}

// Pipeline runs the content-processing middleware chain for one page (§4.3).
type Pipeline interface {
	Run(ctx context.Context, pc *core.ProcessingContext, extractLinks bool) error
}

// FetchURLRequest is the input to the fetch-url diagnostic command.
type FetchURLRequest struct {
	URL             string
	FollowRedirects bool
	ScrapeMode      core.ScrapeMode
}

// FetchURLResult is a single fetch-and-process pass with no crawling and no
// store writes, for ad-hoc inspection (SPEC_FULL "fetch-url CLI command").
type FetchURLResult struct {
	URL         string
	ContentType string
	Content     string
	Metadata    map[string]string
	Links       []string
	Errors      []error
}

// FetchURLTool runs a single fetch + middleware pass, independent of the job
// pipeline and the store — grounded in omnidex's cmd/health.go pattern of a
// single-shot diagnostic command (SPEC_FULL supplemented feature #1).
type FetchURLTool struct {
	fetch    FetchRegistry
	pipeline Pipeline
}

// NewFetchURLTool builds a FetchURLTool over the given fetch registry and
// middleware pipeline.
func NewFetchURLTool(fetch FetchRegistry, pipeline Pipeline) *FetchURLTool {
	return &FetchURLTool{fetch: fetch, pipeline: pipeline}
}

// FetchURL fetches a single URL and runs it through the content-processing
// middleware chain, without extracting links or writing to the store.
func (f *FetchURLTool) FetchURL(ctx context.Context, req FetchURLRequest) (FetchURLResult, error) {
	raw, err := f.fetch.Fetch(ctx, req.URL, core.FetchOptions{FollowRedirects: req.FollowRedirects})
	if err != nil {
		return FetchURLResult{}, fmt.Errorf("fetch %s: %w", req.URL, err)
	}

	pc := &core.ProcessingContext{
		Source:      req.URL,
		Content:     raw.Bytes,
		ContentType: raw.MimeType,
		Metadata:    map[string]string{},
		Options: core.CrawlOptions{
			FollowRedirects: req.FollowRedirects,
			ScrapeMode:      req.ScrapeMode,
		},
	}

	if err := f.pipeline.Run(ctx, pc, false); err != nil {
		return FetchURLResult{}, fmt.Errorf("process %s: %w", req.URL, err)
	}

	return FetchURLResult{
		URL:         req.URL,
		ContentType: pc.ContentType,
		Content:     string(pc.Content),
		Metadata:    pc.Metadata,
		Links:       pc.Links,
		Errors:      pc.Errors,
	}, nil
}
