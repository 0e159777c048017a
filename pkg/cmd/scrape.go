package cmd

import (
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/tools"
	"github.com/spf13/cobra"
)

type scrapeFlags struct {
	version        string
	maxPages       int
	maxDepth       int
	maxConcurrency int
	scope          string
	noFollowRedirs bool
	scrapeMode     string
}

// newScrapeCmd builds the `scrape <library> <url>` command (§6 CLI table).
func newScrapeCmd(flags *cmdFlags) *cobra.Command {
	sf := &scrapeFlags{}

	cmd := &cobra.Command{
		Use:   "scrape <library> <url>",
		Short: "Crawl a documentation site and index it",
		Long:  "Crawl a documentation site starting from a seed URL, split it into chunks, embed them, and index them for a (library, version) pair.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, flags, sf, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&sf.version, "version", "v", "", "library version (empty for unversioned)")
	cmd.Flags().IntVarP(&sf.maxPages, "pages", "p", 0, "maximum pages to crawl (0 uses the configured default)")
	cmd.Flags().IntVarP(&sf.maxDepth, "depth", "d", 0, "maximum crawl depth (0 uses the configured default)")
	cmd.Flags().IntVarP(&sf.maxConcurrency, "concurrency", "c", 0, "maximum concurrent fetches per job (0 uses the configured default)")
	cmd.Flags().StringVar(&sf.scope, "scope", "", "link-following scope: subpages|hostname|domain")
	cmd.Flags().BoolVar(&sf.noFollowRedirs, "no-follow-redirects", false, "fail on redirects instead of following them")
	cmd.Flags().StringVar(&sf.scrapeMode, "scrape-mode", "", "render mode: fetch|playwright|auto")

	return cmd
}

func runScrape(cmd *cobra.Command, flags *cmdFlags, sf *scrapeFlags, library, url string) error {
	if err := initLogger(flags); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := buildApp(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}

	defer a.Close()

	opts := resolveCrawlOptions(cfg.Crawl, sf)

	resp, err := a.tools.Scrape(cmd.Context(), tools.ScrapeRequest{
		Library: library,
		Version: sf.version,
		SeedURL: url,
		Options: opts,
		Wait:    true,
	})
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "scraped %d pages (job %s)\n", resp.PagesScraped, resp.JobID) //nolint:forbidigo // CLI output is intentional

	return nil
}

func resolveCrawlOptions(defaults CrawlConfig, sf *scrapeFlags) core.CrawlOptions {
	maxPages := sf.maxPages
	if maxPages <= 0 {
		maxPages = defaults.MaxPages
	}

	maxDepth := sf.maxDepth
	if maxDepth <= 0 {
		maxDepth = defaults.MaxDepth
	}

	maxConcurrency := sf.maxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = defaults.MaxConcurrency
	}

	scope := sf.scope
	if scope == "" {
		scope = defaults.Scope
	}

	scrapeMode := sf.scrapeMode
	if scrapeMode == "" {
		scrapeMode = defaults.ScrapeMode
	}

	return core.CrawlOptions{
		MaxPages:        maxPages,
		MaxDepth:        maxDepth,
		MaxConcurrency:  maxConcurrency,
		Scope:           core.Scope(scope),
		FollowRedirects: !sf.noFollowRedirs,
		ScrapeMode:      core.ScrapeMode(scrapeMode),
	}
}
