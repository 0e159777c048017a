package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ksysoev/docindex/pkg/core"
)

// GitHubStrategy wraps WebStrategy with an ecosystem-specific URL normalizer
// and a link predicate confining traversal to `/<owner>/<repo>`,
// `/<owner>/<repo>/wiki/...`, and `*.md` files under `/<owner>/<repo>/blob/`
// (§4.4 "GitHub, NPM, PyPI").
type GitHubStrategy struct {
	web *WebStrategy
}

// NewGitHubStrategy builds a GitHubStrategy.
func NewGitHubStrategy() *GitHubStrategy {
	return &GitHubStrategy{web: NewWebStrategy()}
}

// CanHandle reports whether seedURL points at github.com.
func (g *GitHubStrategy) CanHandle(seedURL string) bool {
	u, err := url.Parse(seedURL)
	if err != nil {
		return false
	}

	return strings.EqualFold(u.Hostname(), "github.com")
}

// Scrape delegates to the wrapped WebStrategy with a GitHub-confining link
// predicate composed onto any caller-supplied one.
func (g *GitHubStrategy) Scrape(ctx context.Context, seedURL string, opts core.CrawlOptions, progress ProgressFunc, cancelled Cancelled) error {
	owner, repo, ok := githubOwnerRepo(seedURL)

	callerPredicate := opts.LinkPredicate
	opts.LinkPredicate = func(link string) bool {
		if callerPredicate != nil && !callerPredicate(link) {
			return false
		}

		if !ok {
			return true
		}

		return githubLinkAllowed(link, owner, repo)
	}

	return g.web.Scrape(ctx, ecosystemNormalize(seedURL), opts, progress, cancelled)
}

func githubOwnerRepo(seedURL string) (owner, repo string, ok bool) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return "", "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return "", "", false
	}

	return segments[0], segments[1], true
}

func githubLinkAllowed(link, owner, repo string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	path := strings.Trim(u.Path, "/")
	repoRoot := owner + "/" + repo

	if path == repoRoot {
		return true
	}

	if matched, _ := doublestar.Match(repoRoot+"/wiki/**", path); matched {
		return true
	}

	if matched, _ := doublestar.Match(repoRoot+"/blob/**/*.md", path); matched {
		return true
	}

	return false
}

// ecosystemNormalize applies the shared NPM/PyPI/GitHub URL normalization:
// case-insensitive host+path, hash-stripped, trailing-slash-stripped,
// query-stripped (§4.4).
func ecosystemNormalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Fragment = ""
	u.RawQuery = ""
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.ToLower(strings.TrimSuffix(u.Path, "/"))

	return u.String()
}
