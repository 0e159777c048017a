package cmd

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/embed"
	"github.com/ksysoev/docindex/pkg/fetch"
	"github.com/ksysoev/docindex/pkg/jobs"
	"github.com/ksysoev/docindex/pkg/middleware"
	"github.com/ksysoev/docindex/pkg/retriever"
	"github.com/ksysoev/docindex/pkg/scraper"
	"github.com/ksysoev/docindex/pkg/splitter"
	"github.com/ksysoev/docindex/pkg/store"
	"github.com/ksysoev/docindex/pkg/tools"
)

// app bundles the long-lived components a CLI invocation wires together: the
// hybrid store, the job manager, the tool surface, and the diagnostic
// fetch-url tool. It owns everything that needs an orderly shutdown.
type app struct {
	store     *store.Store
	manager   *jobs.Manager
	tools     *tools.Tools
	fetchURL  *tools.FetchURLTool
	pipelines *middleware.Pipelines
}

// buildApp wires the stack described in SPEC_FULL's PACKAGE LAYOUT: a
// fetch/scraper registry feeds the job manager, the job manager and store
// feed the retriever and tool surface, mirroring omnidex's core.New wiring
// of store + search engine + processors into one service.
func buildApp(ctx context.Context, cfg *appConfig) (*app, error) {
	embedder, err := embed.New(ctx, embed.Config{
		Spec:      cfg.Embed.Spec,
		Dimension: cfg.Embed.Dimension,
		APIKey:    cfg.Embed.APIKey,
		BaseURL:   cfg.Embed.BaseURL,
		Region:    cfg.Embed.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("build embedding client: %w", err)
	}

	docStore, err := store.Open(cfg.Storage.Path, embedder)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	scraperRegistry := scraper.NewRegistry(
		scraper.NewGitHubStrategy(),
		scraper.NewNPMStrategy(),
		scraper.NewPyPIStrategy(),
		scraper.NewLocalFileStrategy(),
		scraper.NewWebStrategy(),
	)

	callbacks := jobs.Callbacks{
		OnJobStatusChange: func(job *core.Job) {
			slogJobStatusChange(job)
		},
		OnJobProgress: func(job *core.Job, progress core.JobProgress) {
			slogJobProgress(job, progress)
		},
		OnJobError: func(job *core.Job, err error, page *core.CrawledPage) {
			slogJobError(job, err, page)
		},
	}

	manager := jobs.New(scraperRegistry, docStore, splitter.DefaultOptions, cfg.Jobs.Concurrency, callbacks)
	manager.Start()

	retr := retriever.New(docStore)
	toolSet := tools.New(docStore, retr, manager)

	fetchRegistry := fetch.NewRegistry(fetch.NewHTTPFetcher(), fetch.NewFileFetcher())
	pipelines := middleware.NewPipelines()
	fetchTool := tools.NewFetchURLTool(fetchRegistry, pipelines)

	return &app{
		store:     docStore,
		manager:   manager,
		tools:     toolSet,
		fetchURL:  fetchTool,
		pipelines: pipelines,
	}, nil
}

// Close releases every resource the app owns: the job manager stops
// accepting new work, the shared browser renderer is torn down, and the
// store's database handle is closed.
func (a *app) Close() error {
	a.manager.Stop()

	if err := a.pipelines.Close(); err != nil {
		return fmt.Errorf("close pipelines: %w", err)
	}

	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	return nil
}
