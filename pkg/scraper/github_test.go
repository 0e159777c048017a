package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitHubStrategy_CanHandle(t *testing.T) {
	g := &GitHubStrategy{}
	assert.True(t, g.CanHandle("https://github.com/ksysoev/docindex"))
	assert.True(t, g.CanHandle("https://GitHub.com/ksysoev/docindex"))
	assert.False(t, g.CanHandle("https://gitlab.com/ksysoev/docindex"))
}

func TestGithubOwnerRepo(t *testing.T) {
	owner, repo, ok := githubOwnerRepo("https://github.com/ksysoev/docindex/wiki/Home")
	assert.True(t, ok)
	assert.Equal(t, "ksysoev", owner)
	assert.Equal(t, "docindex", repo)

	_, _, ok = githubOwnerRepo("https://github.com/ksysoev")
	assert.False(t, ok)
}

func TestGithubLinkAllowed(t *testing.T) {
	tests := []struct {
		name  string
		link  string
		allow bool
	}{
		{"repo root", "https://github.com/ksysoev/docindex", true},
		{"wiki page", "https://github.com/ksysoev/docindex/wiki/Home", true},
		{"wiki nested", "https://github.com/ksysoev/docindex/wiki/Foo/Bar", true},
		{"markdown blob", "https://github.com/ksysoev/docindex/blob/main/README.md", true},
		{"non-markdown blob", "https://github.com/ksysoev/docindex/blob/main/main.go", false},
		{"issues page", "https://github.com/ksysoev/docindex/issues/1", false},
		{"other repo", "https://github.com/other/repo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := githubLinkAllowed(tt.link, "ksysoev", "docindex")
			assert.Equal(t, tt.allow, got)
		})
	}
}

func TestEcosystemNormalize(t *testing.T) {
	got := ecosystemNormalize("https://WWW.NPMJS.com/Package/Lodash/?tab=readme#intro")
	assert.Equal(t, "https://www.npmjs.com/package/lodash", got)
}
