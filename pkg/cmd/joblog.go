package cmd

import (
	"context"
	"log/slog"

	"github.com/ksysoev/docindex/pkg/core"
)

func slogJobStatusChange(job *core.Job) {
	slog.InfoContext(context.Background(), "job status changed",
		slog.String("job_id", job.ID),
		slog.String("library", job.Library.Name),
		slog.String("status", string(job.Status)),
	)
}

func slogJobProgress(job *core.Job, progress core.JobProgress) {
	slog.InfoContext(context.Background(), "job progress",
		slog.String("job_id", job.ID),
		slog.Int("pages_scraped", progress.PagesScraped),
		slog.String("current_url", progress.CurrentURL),
	)
}

func slogJobError(job *core.Job, err error, page *core.CrawledPage) {
	attrs := []any{slog.String("job_id", job.ID), slog.Any("error", err)}
	if page != nil {
		attrs = append(attrs, slog.String("url", page.URL))
	}

	slog.WarnContext(context.Background(), "job page error", attrs...)
}
